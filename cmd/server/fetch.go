package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hazyhaar/normative-lexicon/pkg/fetch"
)

// cmdFetch downloads the dictionary sources listed in the configuration,
// recording the outcome per source in the state database.
func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	list := fs.Bool("list", false, "list sources and their download state")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	sources, db := openState(cfg, logger)
	defer db.Close()

	if *list {
		states, err := db.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "list sources: %v\n", err)
			os.Exit(1)
		}
		for _, st := range states {
			line := fmt.Sprintf("  %-22s %s", st.ID, st.Name)
			if st.DownloadedAt != nil {
				line += fmt.Sprintf("  [downloaded %s]", time.Unix(*st.DownloadedAt, 0).Format("2006-01-02"))
			}
			if st.LastStatus != nil {
				line += fmt.Sprintf("  [last check: %d]", *st.LastStatus)
			}
			if st.LastError != nil && *st.LastError != "" {
				line += fmt.Sprintf("  [error: %s]", *st.LastError)
			}
			fmt.Println(line)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	results := fetch.EnsureAll(ctx, sources, cfg.docsDir(), db, logger)
	failed := 0
	for _, src := range sources {
		status := results[src.ID]
		fmt.Printf("  %-22s %s\n", src.ID, status)
		if status != "downloaded" && status != "already_exists" {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d sources failed\n", failed, len(sources))
		os.Exit(1)
	}
}
