package models

import "time"

// WorkoutSession is one logged or planned activity. Sessions start life as
// planned (Completed=false) and only count toward statistics once completed.
type WorkoutSession struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Date            time.Time  `json:"date"`
	DurationMinutes int        `json:"duration"`
	CaloriesBurned  int        `json:"caloriesBurned"`
	Exercises       []Exercise `json:"exercises"`
	Completed       bool       `json:"completed"`
	AIGenerated     bool       `json:"ai_generated,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitempty"`
}

// Exercise is one movement within a session. It is owned by its parent
// session and has no independent lifecycle.
type Exercise struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Sets            int      `json:"sets"`
	Reps            int      `json:"reps"`
	WeightKg        *float64 `json:"weight,omitempty"`
	DurationMinutes *int     `json:"duration,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	OrderIndex      int      `json:"order_index"`
}

// Validate checks the fields a session must carry before it enters the ledger.
func (s *WorkoutSession) Validate() error {
	if s.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if s.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if s.DurationMinutes < 0 {
		return &ValidationError{Field: "duration", Reason: "must be non-negative"}
	}
	if s.CaloriesBurned < 0 {
		return &ValidationError{Field: "caloriesBurned", Reason: "must be non-negative"}
	}
	return nil
}

// ValidationError describes a rejected session field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid workout: " + e.Field + " " + e.Reason
}
