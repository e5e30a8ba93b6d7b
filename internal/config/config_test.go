package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // no config file on disk
	t.Setenv("ASREVIEW_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Batches.First != "batches" {
		t.Errorf("batches.first = %q", cfg.Batches.First)
	}
	if cfg.Batches.Verified != "verified_batches" {
		t.Errorf("batches.verified = %q", cfg.Batches.Verified)
	}
	if cfg.Audio.Segments != "segments_16k" {
		t.Errorf("audio.segments = %q", cfg.Audio.Segments)
	}
	if cfg.Export.Path != "tagged_data.csv" {
		t.Errorf("export.path = %q", cfg.Export.Path)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ASREVIEW_CONFIG", "")
	t.Setenv("ASREVIEW_BATCHES_FIRST", filepath.Join("data", "fresh"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Batches.First != filepath.Join("data", "fresh") {
		t.Errorf("batches.first = %q, want env override", cfg.Batches.First)
	}
}

func TestBatchDirPerPass(t *testing.T) {
	cfg := Config{Batches: BatchesConfig{First: "fresh", Verified: "checked"}}

	if got := cfg.BatchDir("first"); got != "fresh" {
		t.Errorf("first pass dir = %q", got)
	}
	if got := cfg.BatchDir("recheck"); got != "checked" {
		t.Errorf("recheck pass dir = %q", got)
	}
	if got := cfg.BatchDir("confirm"); got != "checked" {
		t.Errorf("confirm pass dir = %q", got)
	}
}
