package dates

import (
	"testing"
	"time"

	"github.com/quietcheck/mood-server/internal/models"
)

func TestDayAndClock(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 5, 0, 0, time.UTC)

	if got := Day(now); got != "2025-06-15" {
		t.Errorf("expected 2025-06-15, got %s", got)
	}
	if got := Clock(now); got != "09:05" {
		t.Errorf("expected 09:05, got %s", got)
	}
}

func TestRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	days := Range(now, 7)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0] != "2025-06-15" {
		t.Errorf("expected first day to be today, got %s", days[0])
	}
	if days[6] != "2025-06-09" {
		t.Errorf("expected last day 2025-06-09, got %s", days[6])
	}

	if got := Range(now, 0); len(got) != 0 {
		t.Errorf("expected empty range for 0 days, got %v", got)
	}
}

func TestRangeMonthBoundary(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	days := Range(now, 3)
	want := []string{"2025-03-01", "2025-02-28", "2025-02-27"}
	for i, w := range want {
		if days[i] != w {
			t.Errorf("day %d: expected %s, got %s", i, w, days[i])
		}
	}
}

func TestRangeYearBoundary(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	days := Range(now, 2)
	if days[1] != "2024-12-31" {
		t.Errorf("expected 2024-12-31, got %s", days[1])
	}
}

func TestDaysAgo(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		date string
		want int
	}{
		{"2025-06-15", 0},
		{"2025-06-14", 1},
		{"2025-06-08", 7},
		{"not-a-date", -1},
	}
	for _, tt := range tests {
		if got := DaysAgo(now, tt.date); got != tt.want {
			t.Errorf("DaysAgo(%s): expected %d, got %d", tt.date, tt.want, got)
		}
	}
}

func TestIsToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC)

	if !IsToday(now, "2025-06-15") {
		t.Error("expected 2025-06-15 to be today")
	}
	if IsToday(now, "2025-06-14") {
		t.Error("expected 2025-06-14 to not be today")
	}
}

func entryOn(date string) models.Entry {
	return models.Entry{Date: date, Mood: models.MoodNormal}
}

func TestInRange(t *testing.T) {
	entries := []models.Entry{
		entryOn("2025-06-10"),
		entryOn("2025-06-12"),
		entryOn("2025-06-15"),
	}

	got := InRange(entries, "2025-06-10", "2025-06-12")
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Bounds are inclusive
	if got[0].Date != "2025-06-10" || got[1].Date != "2025-06-12" {
		t.Errorf("unexpected window: %v", got)
	}
}

func TestLastNDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		entryOn("2025-06-15"),
		entryOn("2025-06-09"),
		entryOn("2025-06-08"), // outside a 7-day window
	}

	got := LastNDays(entries, now, 7)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
}

func TestThisMonth(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		entryOn("2025-06-01"),
		entryOn("2025-06-30"),
		entryOn("2025-05-31"),
		entryOn("2025-07-01"),
	}

	got := ThisMonth(entries, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
}

func TestWeekday(t *testing.T) {
	dow, ok := Weekday("2025-06-15")
	if !ok {
		t.Fatal("expected valid date")
	}
	if dow != time.Sunday {
		t.Errorf("expected Sunday, got %s", dow)
	}

	if _, ok := Weekday("garbage"); ok {
		t.Error("expected malformed date to report false")
	}
}
