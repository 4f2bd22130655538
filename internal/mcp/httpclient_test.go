package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/fitfriend/internal/genai"
	"github.com/claude/fitfriend/internal/models"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client hits the right paths.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListWorkouts verifies the client parses the JSON array response.
func TestListWorkouts(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.WorkoutSession{
				{ID: "w1", Name: "Morning Run", Date: time.Date(2026, 1, 5, 7, 0, 0, 0, time.UTC), DurationMinutes: 30, Completed: true},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "key")
	sessions, err := client.ListWorkouts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].ID != "w1" {
		t.Fatalf("sessions = %+v, want single w1", sessions)
	}
}

// TestLogWorkoutSendsAPIKey verifies mutations carry the X-API-Key header and
// the created session round-trips.
func TestLogWorkoutSendsAPIKey(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-API-Key"); got != "secret" {
				t.Errorf("X-API-Key = %q, want secret", got)
			}
			var session models.WorkoutSession
			if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
				t.Fatal(err)
			}
			session.ID = "assigned"
			w.WriteHeader(http.StatusCreated)
			writeTestJSON(t, w, session)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "secret")
	logged, err := client.LogWorkout(context.Background(), models.WorkoutSession{Name: "Lift", DurationMinutes: 45})
	if err != nil {
		t.Fatal(err)
	}
	if logged.ID != "assigned" {
		t.Errorf("id = %q, want assigned", logged.ID)
	}
	if logged.Name != "Lift" {
		t.Errorf("name = %q, want Lift", logged.Name)
	}
}

// TestCompleteWorkoutParsesSnapshot verifies the stats payload returned by
// the complete endpoint.
func TestCompleteWorkoutParsesSnapshot(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts/w1/complete": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, models.StatsSnapshot{WorkoutsCompleted: 4, StreakDays: 2})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "key")
	snap, err := client.CompleteWorkout(context.Background(), "w1")
	if err != nil {
		t.Fatal(err)
	}
	if snap.WorkoutsCompleted != 4 || snap.StreakDays != 2 {
		t.Errorf("snapshot = %+v, want 4 completed / 2 streak", snap)
	}
}

// TestGenerateWorkoutRemote verifies the happy path decode.
func TestGenerateWorkoutRemote(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/generate": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, genai.GeneratedWorkout{
				Name:            "Core Circuit",
				DurationMinutes: 20,
				Exercises:       []genai.GeneratedExercise{{Name: "Plank", Sets: 3, Reps: 1}},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "key")
	workout, err := client.GenerateWorkout(context.Background(), genai.GenerateRequest{Focus: "Core"})
	if err != nil {
		t.Fatal(err)
	}
	if workout.Name != "Core Circuit" {
		t.Errorf("name = %q, want Core Circuit", workout.Name)
	}
}

// TestGenerateWorkoutRemoteParseFailure verifies the 200-with-error contract
// is converted back into a ParseError.
func TestGenerateWorkoutRemoteParseFailure(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/generate": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, map[string]string{
				"error":       "model reply was not a workout",
				"rawResponse": "sorry, I cannot help with that",
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "key")
	_, err := client.GenerateWorkout(context.Background(), genai.GenerateRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *genai.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if pe.Raw != "sorry, I cannot help with that" {
		t.Errorf("raw = %q, want original text", pe.Raw)
	}
}

// TestServerErrorSurfaced verifies non-2xx responses become errors with the
// status code in the message.
func TestServerErrorSurfaced(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "key")
	if _, err := client.Stats(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
