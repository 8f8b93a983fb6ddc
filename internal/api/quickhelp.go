package api

import "github.com/quietcheck/mood-server/internal/models"

// quickHelpCatalog holds the static self-help cards served per state.
// Content is fixed: these are grounding exercises, not generated text.
var quickHelpCatalog = map[string][]models.QuickAction{
	"heavy": {
		{
			ID:       "heavy-breath",
			Group:    "quick",
			Title:    "Slow exhale breathing",
			Why:      "A longer exhale signals the nervous system that it is safe to slow down.",
			Steps:    "Inhale for 4 counts, exhale for 8. Repeat 6 times.",
			Duration: 90,
		},
		{
			ID:       "heavy-name-it",
			Group:    "quick",
			Title:    "Name the weight",
			Why:      "Putting a feeling into words reduces its grip.",
			Steps:    "Finish the sentence out loud or on paper: \"Right now the heaviest thing is...\"",
			Duration: 120,
		},
		{
			ID:    "heavy-small-step",
			Group: "energy",
			Title: "One tiny task",
			Why:   "Completing something small restores a sense of agency.",
			Steps: "Pick a task under two minutes (rinse a cup, open a window) and do only that.",
		},
		{
			ID:    "heavy-warmth",
			Group: "energy",
			Title: "Warmth and water",
			Why:   "Basic body care is the first lever when everything feels like too much.",
			Steps: "Drink a glass of water, wrap up in something warm, sit for a minute.",
		},
	},
	"anxiety": {
		{
			ID:       "anx-54321",
			Group:    "quick",
			Title:    "5-4-3-2-1 grounding",
			Why:      "Anchoring attention in the senses interrupts the worry spiral.",
			Steps:    "Name 5 things you see, 4 you can touch, 3 you hear, 2 you smell, 1 you taste.",
			Duration: 180,
		},
		{
			ID:       "anx-box-breath",
			Group:    "quick",
			Title:    "Box breathing",
			Why:      "An even breathing rhythm steadies the heart rate.",
			Steps:    "Inhale 4, hold 4, exhale 4, hold 4. Repeat for a minute.",
			Duration: 60,
		},
		{
			ID:    "anx-worry-dump",
			Group: "energy",
			Title: "Worry dump",
			Why:   "Worries on paper stop circling in the head.",
			Steps: "Write every worry as a plain list for three minutes. Do not solve anything yet.",
		},
		{
			ID:    "anx-cold-water",
			Group: "energy",
			Title: "Cool water reset",
			Why:   "A brief cold stimulus dials down physical arousal.",
			Steps: "Run cool water over your wrists or splash your face once.",
		},
	},
	"tired": {
		{
			ID:       "tired-stretch",
			Group:    "quick",
			Title:    "Two-minute stretch",
			Why:      "Gentle movement wakes the body without demanding energy.",
			Steps:    "Stand up, reach overhead, roll shoulders, stretch the neck side to side.",
			Duration: 120,
		},
		{
			ID:       "tired-light",
			Group:    "quick",
			Title:    "Light and air",
			Why:      "Daylight and fresh air cue the body out of drowsiness.",
			Steps:    "Open a window or step outside for one minute, look at the sky.",
			Duration: 60,
		},
		{
			ID:    "tired-permission",
			Group: "energy",
			Title: "Permission to rest",
			Why:   "Fighting fatigue often costs more than honoring it.",
			Steps: "Pick one thing today you will consciously skip or postpone. Say it out loud.",
		},
		{
			ID:    "tired-micro-nap",
			Group: "energy",
			Title: "Eyes-closed pause",
			Why:   "Even a short pause with closed eyes lowers sensory load.",
			Steps: "Set a 5 minute timer, close your eyes, no phone. Just sit.",
		},
	},
}
