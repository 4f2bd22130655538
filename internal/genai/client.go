// Package genai proxies workout generation requests to the Gemini API. Each
// request is a single round trip: no retries, no caching. The model's
// free-text reply is parsed back into a structured workout, tolerating
// markdown code fences and loosely-typed numbers.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Gemini generateContent endpoint prefix.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// DefaultModel is used when the config leaves the model empty.
const DefaultModel = "gemini-2.0-flash"

// Client calls the Gemini generateContent API.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client. Empty baseURL or model fall back to the
// defaults.
func NewClient(baseURL, model, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateRequest describes the workout the user wants.
type GenerateRequest struct {
	FitnessLevel    string   `json:"fitnessLevel"`
	Goals           []string `json:"goals"`
	Preferences     string   `json:"preferences"`
	DurationMinutes int      `json:"duration"`
	Focus           string   `json:"focus"`
}

// GeneratedExercise is one movement in a generated workout.
type GeneratedExercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  int    `json:"reps"`
	Notes string `json:"notes"`
}

// GeneratedWorkout is the structured suggestion handed back to the caller.
// All fields are present, with defaults applied where the model was vague.
type GeneratedWorkout struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	DurationMinutes int                 `json:"duration"`
	CaloriesBurned  int                 `json:"caloriesBurned"`
	Exercises       []GeneratedExercise `json:"exercises"`
}

// ParseError reports that the model's reply could not be interpreted as a
// workout. Raw carries the full reply text so the caller can show it or let
// the user retry.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing generated workout: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends one prompt round trip and parses the reply. A *ParseError
// is returned when the reply text cannot be recovered into a workout; any
// other error is a transport or upstream failure.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GeneratedWorkout, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(req)}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1024,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling gemini: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading gemini response: %w", err)
	}

	var gr geminiResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if gr.Error != nil {
			msg = gr.Error.Message
		}
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, msg)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini response has no candidates")
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	return ParseWorkout(text)
}

func buildPrompt(req GenerateRequest) string {
	level := req.FitnessLevel
	if level == "" {
		level = "Beginner"
	}
	goals := strings.Join(req.Goals, ", ")
	if goals == "" {
		goals = "General fitness"
	}
	prefs := req.Preferences
	if prefs == "" {
		prefs = "No specific preferences"
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = 30
	}
	focus := req.Focus
	if focus == "" {
		focus = "Full body"
	}

	return fmt.Sprintf(`Generate a detailed workout routine with the following parameters:
- Fitness level: %s
- Goals: %s
- Preferences: %s
- Duration: %d minutes
- Focus areas: %s

Format the response as a JSON object with the following structure:
{
  "name": "Workout name",
  "description": "Brief description of the workout",
  "duration": duration in minutes (number),
  "caloriesBurned": estimated calories burned (number),
  "exercises": [
    {
      "name": "Exercise name",
      "sets": number of sets,
      "reps": number of reps,
      "notes": "Optional notes about form or technique"
    }
  ]
}

Include 4-8 exercises appropriate for the specified fitness level and goals.
Provide realistic estimates for sets, reps, and calories burned.`,
		level, goals, prefs, duration, focus)
}
