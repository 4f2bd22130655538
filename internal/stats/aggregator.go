package stats

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/fitfriend/internal/models"
)

// statsKey is the persistence key for the stored snapshot.
const statsKey = "fitfriend_user_stats"

// Store is the key-value persistence the aggregator reads and writes the
// snapshot through. *ledger.SQLiteStore and *ledger.MemStore satisfy it.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Aggregator recomputes and persists the statistics snapshot. The clock is
// injectable so tests can pin "now".
type Aggregator struct {
	store Store
	now   func() time.Time
}

// NewAggregator creates an Aggregator over the given store using the real clock.
func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store, now: time.Now}
}

// NewAggregatorAt creates an Aggregator with a fixed clock for tests.
func NewAggregatorAt(store Store, now func() time.Time) *Aggregator {
	return &Aggregator{store: store, now: now}
}

// Snapshot returns the stored snapshot, or a zeroed one when none has been
// computed yet.
func (a *Aggregator) Snapshot() (models.StatsSnapshot, error) {
	var snap models.StatsSnapshot
	data, ok, err := a.store.Get(statsKey)
	if err != nil {
		return snap, fmt.Errorf("reading stats snapshot: %w", err)
	}
	if !ok {
		return snap, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decoding stats snapshot: %w", err)
	}
	return snap, nil
}

// Recompute derives a fresh snapshot from sessions, persists it, and returns
// it. DistanceCovered and WeightLifted are carried over from the prior
// snapshot since session records hold no data for them.
func (a *Aggregator) Recompute(sessions []models.WorkoutSession) (models.StatsSnapshot, error) {
	prior, err := a.Snapshot()
	if err != nil {
		return models.StatsSnapshot{}, err
	}

	snap := Compute(sessions, a.now())
	snap.DistanceCovered = prior.DistanceCovered
	snap.WeightLifted = prior.WeightLifted

	data, err := json.Marshal(snap)
	if err != nil {
		return snap, fmt.Errorf("encoding stats snapshot: %w", err)
	}
	if err := a.store.Set(statsKey, data); err != nil {
		return snap, fmt.Errorf("writing stats snapshot: %w", err)
	}
	return snap, nil
}
