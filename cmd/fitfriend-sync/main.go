package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/claude/fitfriend/internal/config"
	"github.com/claude/fitfriend/internal/ledger"
	"github.com/claude/fitfriend/internal/stats"
	"github.com/claude/fitfriend/internal/storage"
	"github.com/claude/fitfriend/internal/syncer"
)

// fitfriend-sync pushes the local workout ledger into the Postgres archive.
// Inserts are idempotent, so re-running after new sessions only adds the
// delta.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	user := flag.String("user", "local", "archive user (UUID or name)")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	userID, err := uuid.Parse(*user)
	if err != nil {
		userID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(*user))
	}

	// Open the ledger
	store, err := ledger.OpenSQLiteStore(cfg.Ledger.StateDir)
	if err != nil {
		log.Error("failed to open ledger store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	l := ledger.New(store, stats.NewAggregator(store))

	sessions, err := l.List()
	if err != nil {
		log.Error("failed to read ledger", "error", err)
		os.Exit(1)
	}
	log.Info("ledger loaded", "sessions", len(sessions))

	ctx := context.Background()

	var db *storage.DB
	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	} else {
		dsn := cfg.Database.DSN()

		// Run migrations
		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")

		// Connect database
		db, err = storage.New(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		log.Info("database connected")
	}

	s := syncer.New(db, log, *dryRun)
	syncStats, err := s.Sync(ctx, sessions, userID)
	if err != nil {
		log.Error("sync failed", "error", err)
		os.Exit(1)
	}

	log.Info("sync stats",
		"sessions_found", syncStats.SessionsFound,
		"inserted", syncStats.Inserted,
		"skipped", syncStats.Skipped,
		"errored", syncStats.Errored,
	)
	if syncStats.Errored > 0 {
		os.Exit(1)
	}
	log.Info("sync complete")
}
