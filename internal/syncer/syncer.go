package syncer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/claude/fitfriend/internal/models"
)

// Stats tracks sync progress.
type Stats struct {
	SessionsFound int
	Inserted      int
	Skipped       int
	Errored       int
}

// Archive is the destination store. *storage.DB satisfies it.
type Archive interface {
	InsertWorkout(ctx context.Context, w models.WorkoutSession, userID uuid.UUID) (bool, error)
}

// Syncer pushes ledger sessions into the archive database.
type Syncer struct {
	db     Archive
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Syncer.
func New(db Archive, log *slog.Logger, dryRun bool) *Syncer {
	return &Syncer{db: db, log: log, dryRun: dryRun}
}

// Sync inserts every session under the given user. Sessions already present
// are counted as skipped, individual insert failures are logged and counted
// without aborting the run.
func (s *Syncer) Sync(ctx context.Context, sessions []models.WorkoutSession, userID uuid.UUID) (*Stats, error) {
	s.stats.SessionsFound = len(sessions)

	if s.dryRun {
		return &s.stats, nil
	}

	for _, session := range sessions {
		ok, err := s.db.InsertWorkout(ctx, session, userID)
		if err != nil {
			s.log.Error("insert failed", "id", session.ID, "name", session.Name, "error", err)
			s.stats.Errored++
			continue
		}
		if ok {
			s.stats.Inserted++
		} else {
			s.stats.Skipped++
		}
	}

	return &s.stats, nil
}
