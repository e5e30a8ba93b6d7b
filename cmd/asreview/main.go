package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minhng/asreview/internal/app"
	"github.com/minhng/asreview/internal/batch"
	"github.com/minhng/asreview/internal/config"
)

func main() {
	pass := flag.String("pass", "first", "review pass: first, recheck, or confirm")
	dir := flag.String("dir", "", "override the batch directory for this pass")
	export := flag.String("export", "", "override the export output path")
	flag.Parse()

	variant, ok := batch.PassVariant(*pass)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown pass %q; valid passes are:", *pass)
		for _, v := range batch.Passes() {
			fmt.Fprintf(os.Stderr, " %s", v.Name)
		}
		fmt.Fprintln(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dir != "" {
		cfg.Batches.First = *dir
		cfg.Batches.Verified = *dir
	}
	if *export != "" {
		cfg.Export.Path = *export
	}

	p := tea.NewProgram(app.New(cfg, variant), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}
