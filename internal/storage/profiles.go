package storage

import (
	"context"
	"fmt"

	"github.com/claude/fitfriend/internal/models"
	"github.com/google/uuid"
)

// QueryBuddies returns the fitness-buddy directory: profiles with their
// completed workout counts, most active first. goal and location filter when
// non-empty (goal matches any entry in the goals array, location is a
// case-insensitive substring match).
func (db *DB) QueryBuddies(ctx context.Context, goal, location string) ([]models.Buddy, error) {
	query := `SELECT p.id, COALESCE(p.username, ''), COALESCE(p.full_name, ''),
	 COALESCE(p.fitness_level, ''), COALESCE(p.goals, '{}'), COALESCE(p.location, ''),
	 p.height, p.weight, p.created_at, p.updated_at,
	 COUNT(w.id) FILTER (WHERE w.completed) AS workouts_completed
	 FROM profiles p
	 LEFT JOIN workouts w ON w.user_id = p.id`

	var args []any
	var where []string
	if goal != "" {
		args = append(args, goal)
		where = append(where, fmt.Sprintf("$%d = ANY(p.goals)", len(args)))
	}
	if location != "" {
		args = append(args, "%"+location+"%")
		where = append(where, fmt.Sprintf("p.location ILIKE $%d", len(args)))
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += ` GROUP BY p.id ORDER BY workouts_completed DESC, p.username ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying buddies: %w", err)
	}
	defer rows.Close()

	var buddies []models.Buddy
	for rows.Next() {
		var b models.Buddy
		var id uuid.UUID
		if err := rows.Scan(&id, &b.Username, &b.FullName, &b.FitnessLevel, &b.Goals,
			&b.Location, &b.HeightCm, &b.WeightKg, &b.CreatedAt, &b.UpdatedAt,
			&b.WorkoutsCompleted); err != nil {
			return nil, fmt.Errorf("scanning buddy: %w", err)
		}
		b.ID = id.String()
		if b.Goals == nil {
			b.Goals = []string{}
		}
		buddies = append(buddies, b)
	}
	return buddies, rows.Err()
}

// UpsertProfile creates or refreshes a directory entry.
func (db *DB) UpsertProfile(ctx context.Context, p models.Profile) error {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return fmt.Errorf("parsing profile id: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO profiles (id, username, full_name, fitness_level, goals, location, height, weight, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now())
		 ON CONFLICT (id) DO UPDATE SET
		   username = excluded.username,
		   full_name = excluded.full_name,
		   fitness_level = excluded.fitness_level,
		   goals = excluded.goals,
		   location = excluded.location,
		   height = excluded.height,
		   weight = excluded.weight,
		   updated_at = now()`,
		id, p.Username, p.FullName, p.FitnessLevel, p.Goals, p.Location, p.HeightCm, p.WeightKg)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
