package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
)

// cmdIndex builds the corpus index from the downloaded dictionaries and
// writes the snapshot the serve command restores at startup.
func cmdIndex(args []string) {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	sources, db := openState(cfg, logger)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	mgr := newManager(cfg, logger)
	stats, err := buildAndPersist(ctx, cfg, mgr, newLoader(cfg, sources, db, logger), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "index build failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("indexed %d files, %d pages, %d word forms -> %s\n",
		stats.Files, stats.Pages, stats.Tokens, cfg.snapshotPath())
}
