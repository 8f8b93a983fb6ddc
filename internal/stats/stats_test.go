package stats

import (
	"testing"
	"time"

	"github.com/quietcheck/mood-server/internal/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func entry(date string, mood models.Mood) models.Entry {
	return models.Entry{Date: date, Mood: mood}
}

func TestComputeCountsAndTotal(t *testing.T) {
	window := []models.Entry{
		entry("2025-06-15", models.MoodCalm),
		entry("2025-06-15", models.MoodCalm),
		entry("2025-06-14", models.MoodTired),
	}

	got := Compute(window, window, testNow)

	if got.Total != 3 {
		t.Errorf("expected total 3, got %d", got.Total)
	}
	if len(got.Counts) != len(models.Moods) {
		t.Errorf("expected all %d moods in counts, got %d", len(models.Moods), len(got.Counts))
	}
	sum := 0
	for _, m := range models.Moods {
		c, ok := got.Counts[m]
		if !ok {
			t.Errorf("missing count for %s", m)
		}
		sum += c
	}
	if sum != got.Total {
		t.Errorf("counts sum %d does not match total %d", sum, got.Total)
	}
	if got.MostFrequent != models.MoodCalm {
		t.Errorf("expected most frequent calm, got %s", got.MostFrequent)
	}
	if got.MaxCount != 2 {
		t.Errorf("expected max count 2, got %d", got.MaxCount)
	}
}

func TestMostFrequentTieBreak(t *testing.T) {
	// Calm and tired tie at 2; calm comes first in canonical order.
	window := []models.Entry{
		entry("2025-06-15", models.MoodTired),
		entry("2025-06-14", models.MoodCalm),
		entry("2025-06-13", models.MoodTired),
		entry("2025-06-12", models.MoodCalm),
	}

	got := Compute(window, window, testNow)
	if got.MostFrequent != models.MoodCalm {
		t.Errorf("expected tie to resolve to calm, got %s", got.MostFrequent)
	}
}

func TestComputeEmptyWindow(t *testing.T) {
	got := Compute(nil, nil, testNow)

	if got.Total != 0 {
		t.Errorf("expected total 0, got %d", got.Total)
	}
	if got.MostFrequent != models.MoodNormal {
		t.Errorf("expected default most frequent normal, got %s", got.MostFrequent)
	}
	if got.Streak != 0 {
		t.Errorf("expected streak 0, got %d", got.Streak)
	}
	if len(got.Counts) != len(models.Moods) {
		t.Errorf("expected all mood keys even when empty, got %d", len(got.Counts))
	}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"today and yesterday", []string{"2025-06-15", "2025-06-14"}, 2},
		{"today missing is tolerated", []string{"2025-06-14", "2025-06-13"}, 2},
		{"gap before yesterday breaks", []string{"2025-06-12"}, 0},
		{"gap in the middle", []string{"2025-06-15", "2025-06-13"}, 1},
		{"duplicate days count once", []string{"2025-06-15", "2025-06-15", "2025-06-14"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var all []models.Entry
			for _, d := range tt.dates {
				all = append(all, entry(d, models.MoodNormal))
			}
			if got := Streak(all, testNow); got != tt.want {
				t.Errorf("expected streak %d, got %d", tt.want, got)
			}
		})
	}
}

func TestStreakUsesFullHistory(t *testing.T) {
	// The 7-day window excludes nothing here, but the streak must come
	// from all entries even when the window is narrower.
	all := []models.Entry{
		entry("2025-06-15", models.MoodCalm),
		entry("2025-06-14", models.MoodCalm),
		entry("2025-06-13", models.MoodCalm),
	}

	got := ForDays(all, testNow, 1)
	if got.Total != 1 {
		t.Errorf("expected window total 1, got %d", got.Total)
	}
	if got.Streak != 3 {
		t.Errorf("expected streak 3 from full history, got %d", got.Streak)
	}
}

func TestForRange(t *testing.T) {
	all := []models.Entry{
		entry("2025-06-10", models.MoodHeavy),
		entry("2025-06-12", models.MoodCalm),
		entry("2025-06-15", models.MoodCalm),
	}

	got := ForRange(all, testNow, "2025-06-10", "2025-06-12")
	if got.Total != 2 {
		t.Errorf("expected total 2, got %d", got.Total)
	}
	if got.Counts[models.MoodHeavy] != 1 {
		t.Errorf("expected 1 heavy in range, got %d", got.Counts[models.MoodHeavy])
	}
}
