// Package ledger is the persisted collection of workout sessions. Every
// mutation writes the full ledger back to its store and synchronously
// recomputes the statistics snapshot before returning.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/claude/fitfriend/internal/models"
	"github.com/claude/fitfriend/internal/stats"
)

// workoutsKey is the persistence key for the session array.
const workoutsKey = "fitfriend_workouts"

// ErrDuplicateID is returned by Add when a session with the same ID already
// exists. The ledger never silently overwrites.
var ErrDuplicateID = errors.New("workout id already exists")

// Ledger stores workout sessions and keeps the statistics snapshot in sync.
// The mutex serializes read-modify-write cycles within one process; there is
// no cross-process guard (last writer wins).
type Ledger struct {
	mu    sync.Mutex
	store Store
	agg   *stats.Aggregator
}

// New creates a Ledger over the given store and aggregator.
func New(store Store, agg *stats.Aggregator) *Ledger {
	return &Ledger{store: store, agg: agg}
}

// List returns all sessions in storage order. Callers sort by date when
// display order matters.
func (l *Ledger) List() ([]models.WorkoutSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Add appends a new session and recomputes stats. Returns ErrDuplicateID when
// the ID is already present.
func (l *Ledger) Add(session models.WorkoutSession) error {
	if err := session.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sessions, err := l.load()
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if s.ID == session.ID {
			return fmt.Errorf("adding workout %s: %w", session.ID, ErrDuplicateID)
		}
	}
	if session.Exercises == nil {
		session.Exercises = []models.Exercise{}
	}

	return l.save(append(sessions, session))
}

// Update replaces the session matching updated.ID wholesale. A missing ID is
// a silent no-op; the snapshot is still recomputed.
func (l *Ledger) Update(updated models.WorkoutSession) error {
	if err := updated.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sessions, err := l.load()
	if err != nil {
		return err
	}
	for i, s := range sessions {
		if s.ID == updated.ID {
			if updated.Exercises == nil {
				updated.Exercises = []models.Exercise{}
			}
			sessions[i] = updated
			break
		}
	}

	return l.save(sessions)
}

// Complete marks the session with the given ID as completed. A missing ID is
// a silent no-op.
func (l *Ledger) Complete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	sessions, err := l.load()
	if err != nil {
		return err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			sessions[i].Completed = true
			break
		}
	}

	return l.save(sessions)
}

// Delete removes the session with the given ID. A missing ID is a silent no-op.
func (l *Ledger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	sessions, err := l.load()
	if err != nil {
		return err
	}
	kept := sessions[:0]
	for _, s := range sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}

	return l.save(kept)
}

// Stats returns the current stored snapshot.
func (l *Ledger) Stats() (models.StatsSnapshot, error) {
	return l.agg.Snapshot()
}

func (l *Ledger) load() ([]models.WorkoutSession, error) {
	data, ok, err := l.store.Get(workoutsKey)
	if err != nil {
		return nil, fmt.Errorf("reading workouts: %w", err)
	}
	if !ok {
		return []models.WorkoutSession{}, nil
	}

	var sessions []models.WorkoutSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decoding workouts: %w", err)
	}
	if sessions == nil {
		sessions = []models.WorkoutSession{}
	}
	return sessions, nil
}

// save persists the full session array and recomputes the snapshot.
func (l *Ledger) save(sessions []models.WorkoutSession) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encoding workouts: %w", err)
	}
	if err := l.store.Set(workoutsKey, data); err != nil {
		return fmt.Errorf("writing workouts: %w", err)
	}
	if _, err := l.agg.Recompute(sessions); err != nil {
		return err
	}
	return nil
}
