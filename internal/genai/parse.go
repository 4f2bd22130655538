package genai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ParseWorkout recovers a structured workout from the model's reply text.
// The JSON may be wrapped in a markdown code fence or sent bare. Numeric
// fields arrive as numbers or strings; missing values get defaults (duration
// 30, calories 200, sets 3, reps 10). A reply without the required shape
// (name, description, exercises array) yields a *ParseError carrying the raw
// text.
func ParseWorkout(text string) (*GeneratedWorkout, error) {
	payload := text
	if m := codeFence.FindStringSubmatch(text); m != nil {
		payload = m[1]
	}

	var raw struct {
		Name           string `json:"name"`
		Description    string `json:"description"`
		Duration       any    `json:"duration"`
		CaloriesBurned any    `json:"caloriesBurned"`
		Exercises      []struct {
			Name  string `json:"name"`
			Sets  any    `json:"sets"`
			Reps  any    `json:"reps"`
			Notes string `json:"notes"`
		} `json:"exercises"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	if raw.Name == "" || raw.Description == "" || raw.Exercises == nil {
		return nil, &ParseError{Raw: text, Err: fmt.Errorf("generated workout has invalid structure")}
	}

	w := &GeneratedWorkout{
		Name:            raw.Name,
		Description:     raw.Description,
		DurationMinutes: coerceInt(raw.Duration, 30),
		CaloriesBurned:  coerceInt(raw.CaloriesBurned, 200),
		Exercises:       make([]GeneratedExercise, 0, len(raw.Exercises)),
	}
	for _, e := range raw.Exercises {
		name := e.Name
		if name == "" {
			name = "Exercise"
		}
		w.Exercises = append(w.Exercises, GeneratedExercise{
			Name:  name,
			Sets:  coerceInt(e.Sets, 3),
			Reps:  coerceInt(e.Reps, 10),
			Notes: e.Notes,
		})
	}
	return w, nil
}

// coerceInt accepts JSON numbers or numeric strings, falling back to def.
func coerceInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return def
}
