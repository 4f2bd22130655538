// Package stats derives the summary-statistics snapshot from the activity
// ledger. The snapshot is recomputed in full on every ledger mutation; there
// is no incremental update path.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/claude/fitfriend/internal/models"
)

// Compute derives a snapshot from the given sessions as of now. It is a pure
// function of its inputs: only sessions with Completed=true count.
//
// Two different date comparisons are in play and must stay that way: weekly
// minute rollups compare full timestamps against the Sunday-midnight week
// boundary (two sessions on one day both count), while daysActive and the
// streak deduplicate by local calendar day.
func Compute(sessions []models.WorkoutSession, now time.Time) models.StatsSnapshot {
	var snap models.StatsSnapshot

	completed := make([]models.WorkoutSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Completed {
			completed = append(completed, s)
		}
	}

	snap.WorkoutsCompleted = len(completed)
	for _, s := range completed {
		snap.CaloriesBurned += s.CaloriesBurned
	}
	if snap.WorkoutsCompleted > 0 {
		snap.AverageCalories = int(math.Round(float64(snap.CaloriesBurned) / float64(snap.WorkoutsCompleted)))
	}

	startOfWeek := StartOfWeek(now)
	startOfLastWeek := startOfWeek.AddDate(0, 0, -7)

	for _, s := range completed {
		if !s.Date.Before(startOfWeek) {
			snap.MinutesThisWeek += s.DurationMinutes
		} else if !s.Date.Before(startOfLastWeek) {
			snap.MinutesLastWeek += s.DurationMinutes
		}
	}

	days := activeDays(completed)
	snap.DaysActive = len(days)
	snap.StreakDays = streak(days, now)

	return snap
}

// StartOfWeek returns the most recent Sunday at local midnight relative to t.
func StartOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// activeDays returns the distinct local calendar days with at least one
// completed session, sorted most recent first.
func activeDays(completed []models.WorkoutSession) []time.Time {
	seen := make(map[string]time.Time)
	for _, s := range completed {
		d := s.Date
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		seen[day.Format("2006-01-02")] = day
	}

	days := make([]time.Time, 0, len(seen))
	for _, day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// streak returns the length of the consecutive-day run ending today or
// yesterday. A most-recent active day more than one day ago breaks the streak
// to zero; a gap further back merely stops the walk, keeping the count
// accumulated so far.
func streak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dayGap(today, days[0]) > 1 {
		return 0
	}

	count := 1
	for i := 0; i < len(days)-1; i++ {
		if dayGap(days[i], days[i+1]) == 1 {
			count++
		} else {
			break
		}
	}
	return count
}

// dayGap returns the calendar-day difference between two local midnights.
// Rounding absorbs the 23h/25h days that DST transitions produce.
func dayGap(later, earlier time.Time) int {
	return int(math.Round(later.Sub(earlier).Hours() / 24))
}
