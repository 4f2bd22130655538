package ledger

import (
	"time"

	"github.com/claude/fitfriend/internal/models"
)

// InitializeIfEmpty seeds an empty ledger with three example completed
// sessions dated today, yesterday, and two days ago, then recomputes stats.
// A non-empty ledger is never touched.
func (l *Ledger) InitializeIfEmpty() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	sessions, err := l.load()
	if err != nil {
		return err
	}
	if len(sessions) > 0 {
		return nil
	}

	return l.save(seedSessions(time.Now()))
}

func seedSessions(now time.Time) []models.WorkoutSession {
	w := func(kg float64) *float64 { return &kg }

	return []models.WorkoutSession{
		{
			ID:              "1",
			Name:            "Morning HIIT",
			Date:            now,
			DurationMinutes: 28,
			CaloriesBurned:  320,
			Completed:       true,
			Exercises: []models.Exercise{
				{ID: "1-1", Name: "Jumping Jacks", Sets: 3, Reps: 20, OrderIndex: 0},
				{ID: "1-2", Name: "Burpees", Sets: 3, Reps: 10, OrderIndex: 1},
				{ID: "1-3", Name: "Mountain Climbers", Sets: 3, Reps: 20, OrderIndex: 2},
			},
		},
		{
			ID:              "2",
			Name:            "Upper Body Strength",
			Date:            now.AddDate(0, 0, -1),
			DurationMinutes: 45,
			CaloriesBurned:  280,
			Completed:       true,
			Exercises: []models.Exercise{
				{ID: "2-1", Name: "Push-ups", Sets: 3, Reps: 15, OrderIndex: 0},
				{ID: "2-2", Name: "Dumbbell Curls", Sets: 3, Reps: 12, WeightKg: w(10), OrderIndex: 1},
				{ID: "2-3", Name: "Tricep Dips", Sets: 3, Reps: 12, OrderIndex: 2},
			},
		},
		{
			ID:              "3",
			Name:            "Yoga Flow",
			Date:            now.AddDate(0, 0, -2),
			DurationMinutes: 60,
			CaloriesBurned:  220,
			Completed:       true,
			Exercises: []models.Exercise{
				{ID: "3-1", Name: "Sun Salutation", Sets: 1, Reps: 10, OrderIndex: 0},
				{ID: "3-2", Name: "Warrior Poses", Sets: 1, Reps: 10, OrderIndex: 1},
				{ID: "3-3", Name: "Seated Forward Bend", Sets: 1, Reps: 5, OrderIndex: 2},
			},
		},
	}
}
