// Package dates provides calendar arithmetic over ISO date strings.
// Every function takes the reference time explicitly so callers stay
// deterministic under test.
package dates

import (
	"time"

	"github.com/quietcheck/mood-server/internal/models"
)

const dayFormat = "2006-01-02"

// Day formats t as a YYYY-MM-DD civil date in t's location.
func Day(t time.Time) string {
	return t.Format(dayFormat)
}

// Clock formats t as HH:MM wall-clock time.
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// Range returns days date strings ending at now's civil day, most
// recent first. Range(now, 0) is empty. Steps use native calendar
// decrement so month and year boundaries work.
func Range(now time.Time, days int) []string {
	out := make([]string, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, Day(now.AddDate(0, 0, -i)))
	}
	return out
}

// IsToday reports whether dateStr names now's civil day.
func IsToday(now time.Time, dateStr string) bool {
	return dateStr == Day(now)
}

// DaysAgo returns how many civil days before now dateStr falls
// (0 = today). Malformed dates return -1.
func DaysAgo(now time.Time, dateStr string) int {
	d, err := time.ParseInLocation(dayFormat, dateStr, now.Location())
	if err != nil {
		return -1
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(midnight.Sub(d).Hours() / 24)
}

// InRange filters entries to from <= date <= to. Lexical comparison is
// valid because dates are zero-padded ISO strings.
func InRange(entries []models.Entry, from, to string) []models.Entry {
	var out []models.Entry
	for _, e := range entries {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out
}

// LastNDays filters entries to the n civil days ending today.
func LastNDays(entries []models.Entry, now time.Time, n int) []models.Entry {
	set := make(map[string]bool, n)
	for _, d := range Range(now, n) {
		set[d] = true
	}
	var out []models.Entry
	for _, e := range entries {
		if set[e.Date] {
			out = append(out, e)
		}
	}
	return out
}

// ThisMonth filters entries to the current calendar month.
func ThisMonth(entries []models.Entry, now time.Time) []models.Entry {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return InRange(entries, Day(first), Day(last))
}

// Weekday returns the day of week for an ISO date string, or an error
// flag via the bool when the date does not parse.
func Weekday(dateStr string) (time.Weekday, bool) {
	d, err := time.Parse(dayFormat, dateStr)
	if err != nil {
		return time.Sunday, false
	}
	return d.Weekday(), true
}
