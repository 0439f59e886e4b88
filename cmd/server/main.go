package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/normative-lexicon/pkg/api"
	"github.com/hazyhaar/normative-lexicon/pkg/check"
	"github.com/hazyhaar/normative-lexicon/pkg/fetch"
	"github.com/hazyhaar/normative-lexicon/pkg/index"
	"github.com/hazyhaar/normative-lexicon/pkg/morph"
)

type config struct {
	Addr          string `yaml:"addr"`
	DataDir       string `yaml:"data_dir"`
	SourcesFile   string `yaml:"sources_file"`
	Lemmatizer    string `yaml:"lemmatizer"`     // "heuristic" or "snowball"
	CheckInterval string `yaml:"check_interval"` // Go duration, e.g. "12h"
}

func (c config) docsDir() string      { return filepath.Join(c.DataDir, "dicts") }
func (c config) statePath() string    { return filepath.Join(c.DataDir, "sources.db") }
func (c config) snapshotPath() string { return filepath.Join(c.DataDir, "corpus.gob") }

func (c config) checkInterval() time.Duration {
	d, err := time.ParseDuration(c.CheckInterval)
	if err != nil || d <= 0 {
		return 12 * time.Hour
	}
	return d
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "fetch":
		cmdFetch(os.Args[2:])
	case "index":
		cmdIndex(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: lexicon <command>

Commands:
  serve   Start the HTTP server
  fetch   Download the dictionary sources
  index   Build the corpus index and write a snapshot
  mcp     Serve MCP tools over stdio
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	sources, db := openState(cfg, logger)
	defer db.Close()

	mgr := newManager(cfg, logger)

	// A previous snapshot makes lookups available immediately; without one the
	// index stays empty until the first build.
	if err := mgr.Restore(cfg.snapshotPath()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("no corpus snapshot, serving unindexed until first build")
		} else {
			logger.Warn("corpus snapshot unreadable", "path", cfg.snapshotPath(), "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Periodic source availability checks.
	checker := fetch.NewChecker(db, logger, cfg.checkInterval())
	go checker.Start(ctx)

	loader := newLoader(cfg, sources, db, logger)
	srv := &api.Server{
		Checker: check.New(mgr),
		Manager: mgr,
		Build: func(bctx context.Context) (index.Stats, error) {
			stats, err := mgr.Build(bctx, loader)
			if err != nil {
				return stats, err
			}
			if perr := mgr.Persist(cfg.snapshotPath()); perr != nil {
				logger.Error("snapshot write failed", "path", cfg.snapshotPath(), "error", perr)
			}
			return stats, nil
		},
		Logger: logger,
	}

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(srv),
	}

	// SIGHUP: hot reload the corpus snapshot.
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading corpus snapshot")
			if err := mgr.Restore(cfg.snapshotPath()); err != nil {
				logger.Error("reload failed", "error", err)
			}
		}
	}()

	go func() {
		logger.Info("lexicon listening", "addr", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	httpSrv.Shutdown(context.Background())
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func newManager(cfg config, logger *slog.Logger) *index.Manager {
	var lem morph.Lemmatizer
	if cfg.Lemmatizer == "snowball" {
		lem = &morph.Snowball{}
	}
	return index.NewManager(lem, logger)
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:          ":8421",
		DataDir:       "data",
		Lemmatizer:    "heuristic",
		CheckInterval: "12h",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}

// openState loads the source list and opens the download-state database,
// seeding it with any sources it has not seen.
func openState(cfg config, logger *slog.Logger) ([]fetch.Source, *fetch.StateDB) {
	sources, err := fetch.LoadSources(cfg.SourcesFile)
	if err != nil {
		logger.Error("load sources", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.docsDir(), 0o755); err != nil {
		logger.Error("create data dir", "error", err)
		os.Exit(1)
	}
	db, err := fetch.OpenStateDB(cfg.statePath())
	if err != nil {
		logger.Error("open state db", "error", err)
		os.Exit(1)
	}
	if err := db.Seed(sources); err != nil {
		logger.Error("seed sources", "error", err)
		os.Exit(1)
	}
	return sources, db
}
