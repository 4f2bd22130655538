package mcp

import (
	"context"

	"github.com/google/uuid"

	"github.com/claude/fitfriend/internal/genai"
	"github.com/claude/fitfriend/internal/ledger"
	"github.com/claude/fitfriend/internal/models"
)

// DataSource abstracts the data layer for MCP tools. Both LocalSource (direct
// ledger access) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListWorkouts(ctx context.Context) ([]models.WorkoutSession, error)
	LogWorkout(ctx context.Context, session models.WorkoutSession) (models.WorkoutSession, error)
	CompleteWorkout(ctx context.Context, id string) (models.StatsSnapshot, error)
	Stats(ctx context.Context) (models.StatsSnapshot, error)
	GenerateWorkout(ctx context.Context, req genai.GenerateRequest) (*genai.GeneratedWorkout, error)
}

// Generator produces workout suggestions. *genai.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, req genai.GenerateRequest) (*genai.GeneratedWorkout, error)
}

// LocalSource serves MCP tools straight from the ledger, for running the MCP
// binary on the same machine as the data.
type LocalSource struct {
	Ledger *ledger.Ledger
	Gen    Generator
}

// Compile-time check: *LocalSource satisfies DataSource.
var _ DataSource = (*LocalSource)(nil)

func (s *LocalSource) ListWorkouts(_ context.Context) ([]models.WorkoutSession, error) {
	return s.Ledger.List()
}

func (s *LocalSource) LogWorkout(_ context.Context, session models.WorkoutSession) (models.WorkoutSession, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if err := s.Ledger.Add(session); err != nil {
		return models.WorkoutSession{}, err
	}
	return session, nil
}

func (s *LocalSource) CompleteWorkout(_ context.Context, id string) (models.StatsSnapshot, error) {
	if err := s.Ledger.Complete(id); err != nil {
		return models.StatsSnapshot{}, err
	}
	return s.Ledger.Stats()
}

func (s *LocalSource) Stats(_ context.Context) (models.StatsSnapshot, error) {
	return s.Ledger.Stats()
}

func (s *LocalSource) GenerateWorkout(ctx context.Context, req genai.GenerateRequest) (*genai.GeneratedWorkout, error) {
	return s.Gen.Generate(ctx, req)
}
