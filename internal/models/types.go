package models

// Mood is one of the six fixed emotional states a check-in can carry.
type Mood string

const (
	MoodWonderful Mood = "wonderful"
	MoodCalm      Mood = "calm"
	MoodNormal    Mood = "normal"
	MoodTired     Mood = "tired"
	MoodAnxious   Mood = "anxious"
	MoodHeavy     Mood = "heavy"
)

// Moods is the canonical mood ordering. Tie-breaks in the statistics
// engine resolve to the earliest mood in this list, so the order is a
// contract, not a convenience.
var Moods = []Mood{MoodWonderful, MoodCalm, MoodNormal, MoodTired, MoodAnxious, MoodHeavy}

// MoodScores maps each mood to its numeric valence, shared by every
// insight sub-analysis.
var MoodScores = map[Mood]float64{
	MoodWonderful: 2,
	MoodCalm:      1,
	MoodNormal:    0,
	MoodTired:     -1,
	MoodAnxious:   -1,
	MoodHeavy:     -2,
}

// MoodLabels are the display names used in narratives and reports.
var MoodLabels = map[Mood]string{
	MoodWonderful: "wonderful",
	MoodCalm:      "calm",
	MoodNormal:    "normal",
	MoodTired:     "tiredness",
	MoodAnxious:   "anxiety",
	MoodHeavy:     "heaviness",
}

// ValidMood reports whether s is one of the six fixed moods.
func ValidMood(s string) bool {
	for _, m := range Moods {
		if Mood(s) == m {
			return true
		}
	}
	return false
}

// Entry is one timestamped mood observation.
type Entry struct {
	ID        string `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD, local civil day of creation
	Time      string `json:"time"` // HH:MM, informational only
	Mood      Mood   `json:"mood"`
	Note      string `json:"note,omitempty"` // max 120 chars, enforced at the API edge
	CreatedAt int64  `json:"created_at"`     // ms epoch, immutable
	UpdatedAt int64  `json:"updated_at"`     // ms epoch, bumped on every mutation
}

// Settings holds the per-user preferences.
type Settings struct {
	Theme           string `json:"theme"` // "light", "dark", "system"
	ReminderEnabled bool   `json:"reminder_enabled"`
	ReminderTime    string `json:"reminder_time"` // "HH:MM"
}

// DefaultSettings are the documented fallbacks used when the persisted
// row is missing or malformed.
func DefaultSettings() Settings {
	return Settings{
		Theme:           "system",
		ReminderEnabled: false,
		ReminderTime:    "20:30",
	}
}

// CreateEntryRequest is the body of POST /entries.
type CreateEntryRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note,omitempty"`
}

// UpdateEntryRequest is the body of PUT /entries/{id}.
type UpdateEntryRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note,omitempty"`
}

// EntriesResponse is returned by the entries listing endpoint.
type EntriesResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// InsightsResponse carries all four heuristic insight blocks.
type InsightsResponse struct {
	WeekDynamic   string   `json:"week_dynamic"`
	WeekPatterns  []string `json:"week_patterns"`
	MonthPatterns []string `json:"month_patterns"`
	Direction     string   `json:"direction"`
}

// PracticesRequest is the body of POST /practices.
type PracticesRequest struct {
	Mood string `json:"mood"`
}

// PracticesResponse is returned by the practices endpoint.
type PracticesResponse struct {
	Practices []string `json:"practices"`
	Cached    bool     `json:"cached"`
}

// WeeklyInsightResponse is returned by the weekly-insight endpoint.
type WeeklyInsightResponse struct {
	Insight string `json:"insight"`
	Cached  bool   `json:"cached"`
}

// PatternsResponse is returned by the patterns endpoint.
type PatternsResponse struct {
	Patterns []string `json:"patterns"`
	Cached   bool     `json:"cached"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	ChatID  string `json:"chat_id"`
	Message string `json:"message"`
}

// ChatResponse is returned after a chat turn.
type ChatResponse struct {
	Text string `json:"text"`
}

// ChatMessage is one persisted chat turn.
type ChatMessage struct {
	ID        int64  `json:"id"`
	ChatID    string `json:"chat_id"`
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ChatHistoryResponse is returned by GET /chat/{chat_id}.
type ChatHistoryResponse struct {
	Messages []ChatMessage `json:"messages"`
}

// Narrative is a generated weekly narrative kept for later reading.
type Narrative struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // "weekly"
	ForDate   string `json:"for_date"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// NarrativesResponse is returned by the narratives endpoint.
type NarrativesResponse struct {
	Narratives []Narrative `json:"narratives"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Store   string `json:"store"`
	OpenAI  string `json:"openai"`
	Version string `json:"version"`
}

// QuickAction is one static self-help card.
type QuickAction struct {
	ID       string `json:"id"`
	Group    string `json:"group"` // "quick" or "energy"
	Title    string `json:"title"`
	Why      string `json:"why"`
	Steps    string `json:"steps"`
	Duration int    `json:"duration_sec,omitempty"`
}

// QuickHelpResponse is returned by the quick-help endpoint.
type QuickHelpResponse struct {
	State   string        `json:"state"`
	Actions []QuickAction `json:"actions"`
}

// MaxNoteLength bounds the free-text annotation on an entry.
const MaxNoteLength = 120
