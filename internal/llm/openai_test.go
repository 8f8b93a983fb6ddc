package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/quietcheck/mood-server/internal/models"
)

func TestConfigured(t *testing.T) {
	if NewClient("", "", "gpt-4o-mini").Configured() {
		t.Error("expected client without key to report unconfigured")
	}
	if !NewClient("sk-test", "", "gpt-4o-mini").Configured() {
		t.Error("expected client with key to report configured")
	}
}

func TestUnconfiguredFailsFast(t *testing.T) {
	c := NewClient("", "", "gpt-4o-mini")

	if _, err := c.Practices(context.Background(), models.MoodHeavy); err == nil {
		t.Error("expected error from unconfigured client")
	}
	if _, err := c.WeeklyInsight(context.Background(), "log"); err == nil {
		t.Error("expected error from unconfigured client")
	}
	if _, err := c.Chat(context.Background(), nil); err == nil {
		t.Error("expected error from unconfigured client")
	}
}

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    []string
	}{
		{
			"json array",
			`["breathe slowly", "take a walk"]`,
			3,
			[]string{"breathe slowly", "take a walk"},
		},
		{
			"json array capped",
			`["a", "b", "c", "d"]`,
			3,
			[]string{"a", "b", "c"},
		},
		{
			"bulleted lines fallback",
			"- breathe slowly\n* take a walk\n\n3. drink water",
			3,
			[]string{"breathe slowly", "take a walk", "drink water"},
		},
		{
			"plain lines fallback",
			"breathe slowly\ntake a walk",
			3,
			[]string{"breathe slowly", "take a walk"},
		},
		{
			"fallback capped",
			"- a\n- b\n- c\n- d",
			2,
			[]string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStringList(tt.content, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("item %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestTrimToMaxLines(t *testing.T) {
	text := "one\n\ntwo\nthree\nfour\nfive\nsix"

	got := TrimToMaxLines(text, 5)
	lines := strings.Split(got, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "one" || lines[4] != "five" {
		t.Errorf("unexpected trimmed content: %q", got)
	}

	if got := TrimToMaxLines("short", 5); got != "short" {
		t.Errorf("expected short text untouched, got %q", got)
	}
}

func TestFormatEntriesDigest(t *testing.T) {
	entries := []models.Entry{
		{Date: "2025-06-15", Time: "09:30", Mood: models.MoodCalm, Note: "slow morning"},
		{Date: "2025-06-14", Time: "21:00", Mood: models.MoodTired},
	}

	got := FormatEntriesDigest(entries)
	want := "2025-06-15 09:30: calm (slow morning)\n2025-06-14 21:00: tired"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if got := FormatEntriesDigest(nil); got != "" {
		t.Errorf("expected empty digest, got %q", got)
	}
}
