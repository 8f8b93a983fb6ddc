// Package report assembles the printable document model: summary
// counts, narrative blocks and a chronological row list. Rendering
// beyond the minimal HTML template is the display layer's problem; the
// contract is the structured data.
package report

import (
	"sort"

	"github.com/quietcheck/mood-server/internal/insights"
	"github.com/quietcheck/mood-server/internal/models"
)

// Row is one printable entry line.
type Row struct {
	Date  string      `json:"date"`
	Time  string      `json:"time"`
	Mood  models.Mood `json:"mood"`
	Label string      `json:"label"`
	Note  string      `json:"note"`
}

// Report is the assembled document model.
type Report struct {
	From       string              `json:"from"`
	To         string              `json:"to"`
	Counts     map[models.Mood]int `json:"counts"`
	Total      int                 `json:"total"`
	Narratives []string            `json:"narratives"`
	Rows       []Row               `json:"rows"`
}

const notePlaceholder = "—"

// Assemble builds the document model for a pre-filtered entry window.
// Rows are sorted ascending by date, then creation time within a day.
func Assemble(entries []models.Entry, from, to string) Report {
	sorted := make([]models.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].CreatedAt < sorted[j].CreatedAt
	})

	counts := make(map[models.Mood]int, len(models.Moods))
	for _, m := range models.Moods {
		counts[m] = 0
	}
	rows := make([]Row, 0, len(sorted))
	for _, e := range sorted {
		counts[e.Mood]++
		note := e.Note
		if note == "" {
			note = notePlaceholder
		}
		rows = append(rows, Row{
			Date:  e.Date,
			Time:  e.Time,
			Mood:  e.Mood,
			Label: models.MoodLabels[e.Mood],
			Note:  note,
		})
	}

	return Report{
		From:       from,
		To:         to,
		Counts:     counts,
		Total:      len(sorted),
		Narratives: insights.Narratives(sorted),
		Rows:       rows,
	}
}
