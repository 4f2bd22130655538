package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/fitfriend/internal/genai"
	"github.com/claude/fitfriend/internal/models"
)

// HTTPClient implements DataSource by calling the FitFriend REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is sent on mutating requests.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	return c.do(req, path)
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	return c.do(req, path)
}

func (c *HTTPClient) do(req *http.Request, path string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ListWorkouts(ctx context.Context) ([]models.WorkoutSession, error) {
	body, err := c.get(ctx, "/api/v1/workouts")
	if err != nil {
		return nil, err
	}

	var sessions []models.WorkoutSession
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return sessions, nil
}

func (c *HTTPClient) LogWorkout(ctx context.Context, session models.WorkoutSession) (models.WorkoutSession, error) {
	body, err := c.post(ctx, "/api/v1/workouts", session)
	if err != nil {
		return models.WorkoutSession{}, err
	}

	var logged models.WorkoutSession
	if err := json.Unmarshal(body, &logged); err != nil {
		return models.WorkoutSession{}, fmt.Errorf("httpclient: decode workout: %w", err)
	}
	return logged, nil
}

func (c *HTTPClient) CompleteWorkout(ctx context.Context, id string) (models.StatsSnapshot, error) {
	body, err := c.post(ctx, "/api/v1/workouts/"+id+"/complete", nil)
	if err != nil {
		return models.StatsSnapshot{}, err
	}

	var snap models.StatsSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return models.StatsSnapshot{}, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return snap, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (models.StatsSnapshot, error) {
	body, err := c.get(ctx, "/api/v1/stats")
	if err != nil {
		return models.StatsSnapshot{}, err
	}

	var snap models.StatsSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return models.StatsSnapshot{}, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return snap, nil
}

// GenerateWorkout calls the remote generation endpoint. A 200 response that
// carries an error field instead of a workout means the model's reply could
// not be parsed; that is surfaced as a *genai.ParseError so callers see the
// same error shape as with a local generator.
func (c *HTTPClient) GenerateWorkout(ctx context.Context, req genai.GenerateRequest) (*genai.GeneratedWorkout, error) {
	body, err := c.post(ctx, "/api/v1/generate", req)
	if err != nil {
		return nil, err
	}

	var failure struct {
		Error       string `json:"error"`
		RawResponse string `json:"rawResponse"`
	}
	if err := json.Unmarshal(body, &failure); err == nil && failure.Error != "" {
		return nil, &genai.ParseError{Raw: failure.RawResponse, Err: errors.New(failure.Error)}
	}

	var workout genai.GeneratedWorkout
	if err := json.Unmarshal(body, &workout); err != nil {
		return nil, fmt.Errorf("httpclient: decode generated workout: %w", err)
	}
	return &workout, nil
}
