package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/fitfriend/internal/config"
	"github.com/claude/fitfriend/internal/genai"
	"github.com/claude/fitfriend/internal/ledger"
	"github.com/claude/fitfriend/internal/mcp"
	"github.com/claude/fitfriend/internal/stats"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// fitfriend-mcp serves MCP over stdio. With -url it proxies a remote
// FitFriend server; otherwise it opens the local ledger directly.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	serverURL := flag.String("url", "", "remote FitFriend server URL (e.g. https://fitfriend.tail1234.ts.net)")
	apiKey := flag.String("api-key", "", "API key for the remote server (defaults to FITFRIEND_AUTH_API_KEY)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fitfriend-mcp", Version)
		return
	}

	// Log to stderr, stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *serverURL != "" {
		key := *apiKey
		if key == "" {
			key = os.Getenv("FITFRIEND_AUTH_API_KEY")
		}
		ds = mcp.NewHTTPClient(*serverURL, key)
		log.Info("remote mode", "url", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		store, err := ledger.OpenSQLiteStore(cfg.Ledger.StateDir)
		if err != nil {
			log.Error("failed to open ledger store", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		l := ledger.New(store, stats.NewAggregator(store))
		gen := genai.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.APIKey)
		ds = &mcp.LocalSource{Ledger: l, Gen: gen}
		log.Info("local mode", "state_dir", cfg.Ledger.StateDir)
	}

	s := mcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
