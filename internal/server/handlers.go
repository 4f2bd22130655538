package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/claude/fitfriend/internal/genai"
	"github.com/claude/fitfriend/internal/ledger"
	"github.com/claude/fitfriend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.ledger.List()
	if err != nil {
		s.log.Error("listing workouts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// Display order: newest first.
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleAddWorkout(w http.ResponseWriter, r *http.Request) {
	var session models.WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.Date.IsZero() {
		session.Date = time.Now()
	}

	if err := s.ledger.Add(session); err != nil {
		var ve *models.ValidationError
		switch {
		case errors.Is(err, ledger.ErrDuplicateID):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		case errors.As(err, &ve):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		default:
			s.log.Error("adding workout", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	var session models.WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	session.ID = chi.URLParam(r, "id")

	if err := s.ledger.Update(session); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("updating workout", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// A missing ID is a soft no-op, indistinguishable from success here.
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.ledger.Complete(id); err != nil {
		s.log.Error("completing workout", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	snap, err := s.ledger.Stats()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.ledger.Delete(id); err != nil {
		s.log.Error("deleting workout", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.ledger.Stats()
	if err != nil {
		s.log.Error("reading stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req genai.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	workout, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		var pe *genai.ParseError
		if errors.As(err, &pe) {
			// Contract with the UI: parse failures return the raw model text
			// so the user can read it and decide whether to retry.
			writeJSON(w, http.StatusOK, map[string]string{
				"error":       "Could not parse workout data",
				"rawResponse": pe.Raw,
			})
			return
		}
		s.log.Error("generating workout", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleAcceptGenerated(w http.ResponseWriter, r *http.Request) {
	var generated genai.GeneratedWorkout
	if err := json.NewDecoder(r.Body).Decode(&generated); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if generated.Name == "" || len(generated.Exercises) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "generated workout is incomplete"})
		return
	}

	session := sessionFromGenerated(generated)
	if err := s.ledger.Add(session); err != nil {
		s.log.Error("accepting generated workout", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// sessionFromGenerated converts an accepted suggestion into a planned ledger
// session with fresh IDs.
func sessionFromGenerated(g genai.GeneratedWorkout) models.WorkoutSession {
	session := models.WorkoutSession{
		ID:              uuid.NewString(),
		Name:            g.Name,
		Description:     g.Description,
		Date:            time.Now(),
		DurationMinutes: g.DurationMinutes,
		CaloriesBurned:  g.CaloriesBurned,
		Completed:       false,
		AIGenerated:     true,
		Exercises:       make([]models.Exercise, 0, len(g.Exercises)),
	}
	for i, e := range g.Exercises {
		session.Exercises = append(session.Exercises, models.Exercise{
			ID:         uuid.NewString(),
			Name:       e.Name,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Notes:      e.Notes,
			OrderIndex: i,
		})
	}
	return session
}

func (s *Server) handleBuddies(w http.ResponseWriter, r *http.Request) {
	if s.buddies == nil {
		writeJSON(w, http.StatusOK, []models.Buddy{})
		return
	}

	goal := r.URL.Query().Get("goal")
	location := r.URL.Query().Get("location")
	buddies, err := s.buddies.QueryBuddies(r.Context(), goal, location)
	if err != nil {
		s.log.Error("querying buddies", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if buddies == nil {
		buddies = []models.Buddy{}
	}
	writeJSON(w, http.StatusOK, buddies)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
