package models

import "time"

// Profile is a row in the profiles table, the social directory entry a user
// exposes to potential fitness buddies.
type Profile struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	FitnessLevel string    `json:"fitness_level"`
	Goals        []string  `json:"goals"`
	Location     string    `json:"location,omitempty"`
	HeightCm     *float64  `json:"height,omitempty"`
	WeightKg     *float64  `json:"weight,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Buddy is a directory listing entry: a profile plus its completed workout
// count from the archive.
type Buddy struct {
	Profile
	WorkoutsCompleted int `json:"workouts_completed"`
}
