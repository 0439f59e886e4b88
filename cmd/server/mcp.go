package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/normative-lexicon/pkg/api"
	"github.com/hazyhaar/normative-lexicon/pkg/check"
)

// cmdMCP serves the lexicon tools over stdio for MCP clients. The corpus
// snapshot is restored once at startup; rebuilds go through the HTTP server
// or the index subcommand.
func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	mgr := newManager(cfg, logger)
	if err := mgr.Restore(cfg.snapshotPath()); err != nil {
		logger.Warn("no corpus snapshot, answering from the seed list only", "error", err)
	}

	srv := &api.Server{
		Checker: check.New(mgr),
		Manager: mgr,
		Logger:  logger,
	}

	msrv := server.NewMCPServer("normative-lexicon", "1.0.0")
	api.RegisterMCPTools(msrv, srv)

	if err := server.ServeStdio(msrv); err != nil {
		fmt.Fprintf(os.Stderr, "mcp server: %v\n", err)
		os.Exit(1)
	}
}
