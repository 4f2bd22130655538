package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/fitfriend/internal/genai"
	"github.com/claude/fitfriend/internal/ledger"
	"github.com/claude/fitfriend/internal/models"
	"github.com/claude/fitfriend/internal/stats"
)

const testAPIKey = "test-key"

// fakeGenerator returns a canned workout or error without network traffic.
type fakeGenerator struct {
	workout *genai.GeneratedWorkout
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, req genai.GenerateRequest) (*genai.GeneratedWorkout, error) {
	return f.workout, f.err
}

func newTestServer(t *testing.T, gen Generator) *Server {
	t.Helper()
	store := ledger.NewMemStore()
	l := ledger.New(store, stats.NewAggregator(store))
	return New(l, gen, nil, testAPIKey, slog.Default())
}

func doJSON(t *testing.T, s *Server, method, path, body string, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestWorkoutLifecycle drives add, list, complete, and delete through the
// HTTP surface and checks the stats snapshot tracks along.
func TestWorkoutLifecycle(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{})

	body := `{"id":"w1","name":"Morning Run","date":"` +
		time.Now().Format(time.RFC3339) + `","duration":30,"caloriesBurned":280,"exercises":[]}`
	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts", body, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, want 201: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/workouts", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var sessions []models.WorkoutSession
	if err := json.NewDecoder(rec.Body).Decode(&sessions); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "w1" {
		t.Fatalf("sessions = %+v, want single w1", sessions)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/workouts/w1/complete", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d, want 200", rec.Code)
	}
	var snap models.StatsSnapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if snap.WorkoutsCompleted != 1 {
		t.Errorf("workoutsCompleted = %d, want 1", snap.WorkoutsCompleted)
	}
	if snap.CaloriesBurned != 280 {
		t.Errorf("caloriesBurned = %d, want 280", snap.CaloriesBurned)
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/workouts/w1", "", true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/stats", "", false)
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if snap.WorkoutsCompleted != 0 {
		t.Errorf("workoutsCompleted after delete = %d, want 0", snap.WorkoutsCompleted)
	}
}

// TestAddDuplicateConflict verifies the 409 mapping for duplicate IDs.
func TestAddDuplicateConflict(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{})

	body := `{"id":"dup","name":"Lift","duration":45,"exercises":[]}`
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts", body, true); rec.Code != http.StatusCreated {
		t.Fatalf("first add status = %d, want 201", rec.Code)
	}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts", body, true)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate add status = %d, want 409", rec.Code)
	}
}

// TestAddInvalidWorkout verifies the 422 mapping for validation failures.
func TestAddInvalidWorkout(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts",
		`{"id":"bad","name":"","duration":30}`, true)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

// TestMutationsRequireAPIKey verifies the auth middleware guards writes but
// not reads.
func TestMutationsRequireAPIKey(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts",
		`{"id":"x","name":"NoAuth","duration":10}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated add status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/workouts", "", false)
	if rec.Code != http.StatusOK {
		t.Errorf("unauthenticated list status = %d, want 200", rec.Code)
	}
}

// TestUpdateMissingIsSoftNoOp verifies an update against an absent ID
// succeeds without creating anything.
func TestUpdateMissingIsSoftNoOp(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{})

	rec := doJSON(t, s, http.MethodPut, "/api/v1/workouts/ghost",
		`{"name":"Ghost","duration":10}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/workouts", "", false)
	var sessions []models.WorkoutSession
	json.NewDecoder(rec.Body).Decode(&sessions)
	if len(sessions) != 0 {
		t.Errorf("sessions = %+v, want empty", sessions)
	}
}

// TestGenerateSuccess verifies the proxy returns the structured workout.
func TestGenerateSuccess(t *testing.T) {
	gen := &fakeGenerator{workout: &genai.GeneratedWorkout{
		Name:            "HIIT Blast",
		Description:     "Short and sharp",
		DurationMinutes: 20,
		CaloriesBurned:  250,
		Exercises:       []genai.GeneratedExercise{{Name: "Burpees", Sets: 3, Reps: 12}},
	}}
	s := newTestServer(t, gen)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/generate", `{"fitnessLevel":"Beginner"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got genai.GeneratedWorkout
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.Name != "HIIT Blast" {
		t.Errorf("name = %q, want %q", got.Name, "HIIT Blast")
	}
}

// TestGenerateParseFailure verifies the raw-response error payload contract.
func TestGenerateParseFailure(t *testing.T) {
	gen := &fakeGenerator{err: &genai.ParseError{Raw: "I am just text"}}
	s := newTestServer(t, gen)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/generate", `{}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload["error"] == "" {
		t.Error("error field empty")
	}
	if payload["rawResponse"] != "I am just text" {
		t.Errorf("rawResponse = %q, want original text", payload["rawResponse"])
	}
}

// TestAcceptGenerated verifies an accepted suggestion lands in the ledger as
// a planned AI-generated session.
func TestAcceptGenerated(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{})

	body := `{"name":"HIIT Blast","description":"Short","duration":20,"caloriesBurned":250,
	  "exercises":[{"name":"Burpees","sets":3,"reps":12,"notes":""}]}`
	rec := doJSON(t, s, http.MethodPost, "/api/v1/generate/accept", body, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}

	var session models.WorkoutSession
	if err := json.NewDecoder(rec.Body).Decode(&session); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !session.AIGenerated {
		t.Error("ai_generated = false, want true")
	}
	if session.Completed {
		t.Error("completed = true, want planned")
	}
	if session.ID == "" {
		t.Error("id empty, want assigned UUID")
	}
	if len(session.Exercises) != 1 || session.Exercises[0].ID == "" {
		t.Errorf("exercises = %+v, want one with assigned ID", session.Exercises)
	}
}

// TestAcceptGeneratedIncomplete verifies a suggestion without exercises is
// rejected before reaching the ledger.
func TestAcceptGeneratedIncomplete(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/generate/accept",
		`{"name":"Empty","description":"x","exercises":[]}`, true)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

// TestBuddiesWithoutArchive verifies the directory degrades to an empty list
// when no database is connected.
func TestBuddiesWithoutArchive(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{})

	rec := doJSON(t, s, http.MethodGet, "/api/v1/buddies", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var buddies []models.Buddy
	if err := json.NewDecoder(rec.Body).Decode(&buddies); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(buddies) != 0 {
		t.Errorf("buddies = %+v, want empty", buddies)
	}
}

// TestCalculatorEndpoints verifies the three calculators over HTTP.
func TestCalculatorEndpoints(t *testing.T) {
	s := newTestServer(t, &fakeGenerator{})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/health/bmi",
		`{"weight":70,"height":175,"gender":"male"}`, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("bmi status = %d, want 200", rec.Code)
	}
	var bmi map[string]any
	json.NewDecoder(rec.Body).Decode(&bmi)
	if bmi["category"] != "Normal weight" {
		t.Errorf("bmi category = %v, want Normal weight", bmi["category"])
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/health/tdee",
		`{"weight":80,"height":180,"age":30,"gender":"male","activityLevel":"moderate"}`, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("tdee status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/health/bodyfat",
		`{"gender":"male","height":180,"weight":80,"neck":38,"waist":85}`, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("bodyfat status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/health/bmi",
		`{"weight":0,"height":175,"gender":"male"}`, false)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid bmi status = %d, want 422", rec.Code)
	}
}
