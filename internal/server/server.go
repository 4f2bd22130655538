package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/fitfriend/internal/genai"
	"github.com/claude/fitfriend/internal/ledger"
	"github.com/claude/fitfriend/internal/models"
	"github.com/go-chi/chi/v5"
)

// Generator abstracts the AI suggestion proxy so handlers can be tested with
// a fake. *genai.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, req genai.GenerateRequest) (*genai.GeneratedWorkout, error)
}

// BuddyDirectory abstracts the profiles archive. *storage.DB satisfies it.
type BuddyDirectory interface {
	QueryBuddies(ctx context.Context, goal, location string) ([]models.Buddy, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	ledger    *ledger.Ledger
	generator Generator
	buddies   BuddyDirectory
	log       *slog.Logger
	apiKey    string
	router    chi.Router
}

// New creates a new Server with all routes configured. buddies may be nil
// when no archive database is connected; the directory endpoint then returns
// an empty list.
func New(l *ledger.Ledger, gen Generator, buddies BuddyDirectory, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		ledger:    l,
		generator: gen,
		buddies:   buddies,
		log:       log,
		apiKey:    apiKey,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints
	s.router.Get("/api/v1/workouts", s.handleListWorkouts)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/buddies", s.handleBuddies)

	// Calculators (stateless, no auth)
	s.router.Post("/api/v1/health/bmi", s.handleBMI)
	s.router.Post("/api/v1/health/tdee", s.handleTDEE)
	s.router.Post("/api/v1/health/bodyfat", s.handleBodyFat)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/workouts", s.handleAddWorkout)
		r.Put("/api/v1/workouts/{id}", s.handleUpdateWorkout)
		r.Post("/api/v1/workouts/{id}/complete", s.handleCompleteWorkout)
		r.Delete("/api/v1/workouts/{id}", s.handleDeleteWorkout)
		r.Post("/api/v1/generate", s.handleGenerate)
		r.Post("/api/v1/generate/accept", s.handleAcceptGenerated)
	})
}
