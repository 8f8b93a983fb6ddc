package report

import (
	"strings"
	"testing"

	"github.com/quietcheck/mood-server/internal/models"
)

func entry(date, timeStr string, mood models.Mood, note string, createdAt int64) models.Entry {
	return models.Entry{
		Date:      date,
		Time:      timeStr,
		Mood:      mood,
		Note:      note,
		CreatedAt: createdAt,
	}
}

func TestAssembleOrdersRows(t *testing.T) {
	entries := []models.Entry{
		entry("2025-01-03", "10:00", models.MoodCalm, "", 3),
		entry("2025-01-01", "09:00", models.MoodTired, "slept badly", 1),
		entry("2025-01-02", "12:00", models.MoodNormal, "", 2),
	}

	got := Assemble(entries, "2025-01-01", "2025-01-03")

	if len(got.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got.Rows))
	}
	want := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	for i, w := range want {
		if got.Rows[i].Date != w {
			t.Errorf("row %d: expected %s, got %s", i, w, got.Rows[i].Date)
		}
	}
}

func TestAssembleOrdersWithinDay(t *testing.T) {
	entries := []models.Entry{
		entry("2025-01-01", "18:00", models.MoodCalm, "", 200),
		entry("2025-01-01", "08:00", models.MoodTired, "", 100),
	}

	got := Assemble(entries, "2025-01-01", "2025-01-01")
	if got.Rows[0].Time != "08:00" {
		t.Errorf("expected earlier entry first within a day, got %s", got.Rows[0].Time)
	}
}

func TestAssembleCountsAndPlaceholders(t *testing.T) {
	entries := []models.Entry{
		entry("2025-01-01", "09:00", models.MoodHeavy, "", 1),
		entry("2025-01-02", "09:00", models.MoodHeavy, "rough day", 2),
	}

	got := Assemble(entries, "2025-01-01", "2025-01-31")

	if got.Total != 2 {
		t.Errorf("expected total 2, got %d", got.Total)
	}
	if got.Counts[models.MoodHeavy] != 2 {
		t.Errorf("expected 2 heavy, got %d", got.Counts[models.MoodHeavy])
	}
	if len(got.Counts) != len(models.Moods) {
		t.Errorf("expected all %d mood keys, got %d", len(models.Moods), len(got.Counts))
	}
	if got.Rows[0].Note != notePlaceholder {
		t.Errorf("expected placeholder for empty note, got %q", got.Rows[0].Note)
	}
	if got.Rows[1].Note != "rough day" {
		t.Errorf("expected note to pass through, got %q", got.Rows[1].Note)
	}
	if got.From != "2025-01-01" || got.To != "2025-01-31" {
		t.Errorf("expected window echoed back, got %s..%s", got.From, got.To)
	}
}

func TestAssembleEmpty(t *testing.T) {
	got := Assemble(nil, "2025-01-01", "2025-01-31")

	if got.Total != 0 {
		t.Errorf("expected total 0, got %d", got.Total)
	}
	if len(got.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(got.Rows))
	}
	if len(got.Narratives) != 0 {
		t.Errorf("expected no narratives, got %v", got.Narratives)
	}
}

func TestRenderHTML(t *testing.T) {
	entries := []models.Entry{
		entry("2025-01-01", "09:00", models.MoodAnxious, "deadline", 1),
	}
	doc := Assemble(entries, "2025-01-01", "2025-01-31")

	page, err := RenderHTML(doc)
	if err != nil {
		t.Fatalf("rendering report: %v", err)
	}

	html := string(page)
	for _, want := range []string{"Mood Report", "2025-01-01", "anxiety", "deadline", moodColors[models.MoodAnxious]} {
		if !strings.Contains(html, want) {
			t.Errorf("expected rendered page to contain %q", want)
		}
	}
}

func TestRenderHTMLEscapesNotes(t *testing.T) {
	entries := []models.Entry{
		entry("2025-01-01", "09:00", models.MoodNormal, "<script>alert(1)</script>", 1),
	}
	doc := Assemble(entries, "2025-01-01", "2025-01-31")

	page, err := RenderHTML(doc)
	if err != nil {
		t.Fatalf("rendering report: %v", err)
	}
	if strings.Contains(string(page), "<script>alert(1)</script>") {
		t.Error("expected note markup to be escaped")
	}
}
