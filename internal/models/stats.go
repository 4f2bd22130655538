package models

// StatsSnapshot is the derived statistics object recomputed in full from the
// ledger after every mutation. It has no independent identity.
//
// DistanceCovered and WeightLifted are carried through from the stored
// snapshot rather than recomputed. Session records hold no distance or
// tonnage data, so these fields only change when written externally.
type StatsSnapshot struct {
	WorkoutsCompleted int     `json:"workoutsCompleted"`
	CaloriesBurned    int     `json:"caloriesBurned"`
	AverageCalories   int     `json:"averageCalories"`
	MinutesThisWeek   int     `json:"minutesThisWeek"`
	MinutesLastWeek   int     `json:"minutesLastWeek"`
	DaysActive        int     `json:"daysActive"`
	StreakDays        int     `json:"streakDays"`
	DistanceCovered   float64 `json:"distanceCovered"`
	WeightLifted      float64 `json:"weightLifted"`
}
