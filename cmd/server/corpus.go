package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/normative-lexicon/pkg/extract"
	"github.com/hazyhaar/normative-lexicon/pkg/fetch"
	"github.com/hazyhaar/normative-lexicon/pkg/index"
)

// newLoader returns the document loader used by corpus builds: it makes sure
// each source file is on disk, then opens it for page extraction. A source
// that fails to download is skipped with a warning; a build proceeds as long
// as at least one dictionary opens.
func newLoader(cfg config, sources []fetch.Source, db *fetch.StateDB, logger *slog.Logger) index.Loader {
	return func(ctx context.Context) ([]index.Document, error) {
		results := fetch.EnsureAll(ctx, sources, cfg.docsDir(), db, logger)

		var docs []index.Document
		for _, src := range sources {
			if status := results[src.ID]; strings.HasPrefix(status, "error") {
				logger.Warn("source unavailable, skipping", "source", src.ID, "status", status)
				continue
			}
			doc, err := extract.Open(fetch.FilePath(cfg.docsDir(), src), src.Name)
			if err != nil {
				extract.Close(docs)
				return nil, fmt.Errorf("open %s: %w", src.ID, err)
			}
			docs = append(docs, doc)
		}
		if len(docs) == 0 {
			return nil, errors.New("no dictionary sources available")
		}
		return docs, nil
	}
}

// buildAndPersist runs a full synchronous build and writes the snapshot.
func buildAndPersist(ctx context.Context, cfg config, mgr *index.Manager, loader index.Loader, logger *slog.Logger) (index.Stats, error) {
	stats, err := mgr.Build(ctx, loader)
	if err != nil {
		return stats, err
	}
	if err := mgr.Persist(cfg.snapshotPath()); err != nil {
		return stats, fmt.Errorf("write snapshot: %w", err)
	}
	logger.Info("snapshot written", "path", cfg.snapshotPath())
	return stats, nil
}
