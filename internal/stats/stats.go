// Package stats reduces entry collections into period aggregates.
package stats

import (
	"time"

	"github.com/quietcheck/mood-server/internal/dates"
	"github.com/quietcheck/mood-server/internal/models"
)

// PeriodStats is the aggregate over a window of entries. Counts always
// carries all six moods. Streak is computed over the full history, not
// the window: it answers how consistent the user is overall.
type PeriodStats struct {
	Counts       map[models.Mood]int `json:"counts"`
	MostFrequent models.Mood         `json:"most_frequent"`
	Total        int                 `json:"total"`
	Streak       int                 `json:"streak"`
	MaxCount     int                 `json:"max_count"`
}

// streakCap bounds the backward walk. A gap past the cap truncates the
// streak rather than extending the scan; accepted approximation.
const streakCap = 365

// Compute aggregates window and derives the streak from all.
func Compute(window, all []models.Entry, now time.Time) PeriodStats {
	counts := make(map[models.Mood]int, len(models.Moods))
	for _, m := range models.Moods {
		counts[m] = 0
	}
	for _, e := range window {
		counts[e.Mood]++
	}

	mostFrequent := models.MoodNormal
	maxCount := 0
	for _, m := range models.Moods {
		if counts[m] > maxCount {
			maxCount = counts[m]
			mostFrequent = m
		}
	}

	return PeriodStats{
		Counts:       counts,
		MostFrequent: mostFrequent,
		Total:        len(window),
		Streak:       Streak(all, now),
		MaxCount:     maxCount,
	}
}

// ForDays computes stats over the last days civil days.
func ForDays(all []models.Entry, now time.Time, days int) PeriodStats {
	return Compute(dates.LastNDays(all, now, days), all, now)
}

// ForRange computes stats over an inclusive from..to window.
func ForRange(all []models.Entry, now time.Time, from, to string) PeriodStats {
	return Compute(dates.InRange(all, from, to), all, now)
}

// Streak counts consecutive civil days with at least one entry, walking
// backward from today. Today may be absent without breaking the streak
// (the user simply has not checked in yet); any earlier gap stops the
// walk.
func Streak(all []models.Entry, now time.Time) int {
	if len(all) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(all))
	for _, e := range all {
		seen[e.Date] = true
	}

	streak := 0
	for i := 0; i < streakCap; i++ {
		day := dates.Day(now.AddDate(0, 0, -i))
		if seen[day] {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}
