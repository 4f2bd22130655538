package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/fitfriend/internal/models"
	"github.com/google/uuid"
)

// InsertWorkout inserts a workout row with its exercises. Returns true if
// inserted, false if the ID was already archived.
func (db *DB) InsertWorkout(ctx context.Context, w models.WorkoutSession, userID uuid.UUID) (bool, error) {
	workoutID, err := uuid.Parse(w.ID)
	if err != nil {
		// Ledger seed IDs are not UUIDs; derive a stable one from the string.
		workoutID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(w.ID))
	}

	createdAt := w.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workouts (id, user_id, name, description, date, duration, calories_burned, completed, ai_generated, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT DO NOTHING`,
		workoutID, userID, w.Name, w.Description, w.Date, w.DurationMinutes,
		w.CaloriesBurned, w.Completed, w.AIGenerated, createdAt)
	if err != nil {
		return false, fmt.Errorf("inserting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if err := db.insertExercises(ctx, workoutID, w.Exercises); err != nil {
		return true, err
	}
	return true, nil
}

// insertExercises batch-inserts a workout's exercises.
func (db *DB) insertExercises(ctx context.Context, workoutID uuid.UUID, exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}

	query := `INSERT INTO exercises (id, workout_id, name, sets, reps, weight, duration, notes, order_index) VALUES `
	args := make([]any, 0, len(exercises)*9)
	valueStrings := make([]string, 0, len(exercises))

	for i, e := range exercises {
		exerciseID, err := uuid.Parse(e.ID)
		if err != nil {
			exerciseID = uuid.NewSHA1(workoutID, []byte(e.ID))
		}

		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, exerciseID, workoutID, e.Name, e.Sets, e.Reps,
			e.WeightKg, e.DurationMinutes, e.Notes, e.OrderIndex)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	if _, err := db.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting exercises: %w", err)
	}
	return nil
}

// QueryWorkouts retrieves a user's archived workouts in a time range, newest
// first, with exercises attached in performance order.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID uuid.UUID) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, COALESCE(description, ''), date, duration,
		 COALESCE(calories_burned, 0), completed, ai_generated, created_at
		 FROM workouts
		 WHERE date >= $1 AND date < $2 AND user_id = $3
		 ORDER BY date DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		var w models.WorkoutSession
		var id uuid.UUID
		if err := rows.Scan(&id, &w.Name, &w.Description, &w.Date, &w.DurationMinutes,
			&w.CaloriesBurned, &w.Completed, &w.AIGenerated, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		w.ID = id.String()
		w.Exercises = []models.Exercise{}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		exercises, err := db.queryExercises(ctx, uuid.MustParse(result[i].ID))
		if err != nil {
			return nil, err
		}
		result[i].Exercises = exercises
	}
	return result, nil
}

func (db *DB) queryExercises(ctx context.Context, workoutID uuid.UUID) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, sets, reps, weight, duration, COALESCE(notes, ''), order_index
		 FROM exercises
		 WHERE workout_id = $1
		 ORDER BY order_index ASC`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		var id uuid.UUID
		if err := rows.Scan(&id, &e.Name, &e.Sets, &e.Reps, &e.WeightKg,
			&e.DurationMinutes, &e.Notes, &e.OrderIndex); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		e.ID = id.String()
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// SetWorkoutCompleted flips the completed flag on an archived workout.
// Returns the number of rows updated (0 when the ID is absent).
func (db *DB) SetWorkoutCompleted(ctx context.Context, workoutID, userID uuid.UUID, completed bool) (int64, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workouts SET completed = $1 WHERE id = $2 AND user_id = $3`,
		completed, workoutID, userID)
	if err != nil {
		return 0, fmt.Errorf("updating workout: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteWorkout removes an archived workout; exercises cascade.
func (db *DB) DeleteWorkout(ctx context.Context, workoutID, userID uuid.UUID) (int64, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`,
		workoutID, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting workout: %w", err)
	}
	return tag.RowsAffected(), nil
}
