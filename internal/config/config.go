// Package config loads asreview settings from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Batches BatchesConfig
	Audio   AudioConfig
	Export  ExportConfig
}

// BatchesConfig holds the batch directories per review pass.
type BatchesConfig struct {
	First    string // unreviewed batches (first pass)
	Verified string // previously accepted batches (recheck passes)
}

// AudioConfig holds audio reference settings.
type AudioConfig struct {
	Segments string // directory holding <filename>.wav segments
	Player   string // external player command; empty disables playback
}

// ExportConfig holds export settings.
type ExportConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use prefix
// ASREVIEW_, e.g. ASREVIEW_BATCHES_FIRST.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("batches.first", "batches")
	v.SetDefault("batches.verified", "verified_batches")
	v.SetDefault("audio.segments", "segments_16k")
	v.SetDefault("audio.player", "afplay")
	v.SetDefault("export.path", "tagged_data.csv")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ASREVIEW_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "asreview"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ASREVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// the config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// BatchDir returns the directory a pass reads its batches from: the first
// pass reviews fresh batches, the recheck passes review verified ones.
func (c Config) BatchDir(pass string) string {
	if pass == "first" {
		return c.Batches.First
	}
	return c.Batches.Verified
}
