package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"

	"github.com/quietcheck/mood-server/internal/cache"
	"github.com/quietcheck/mood-server/internal/config"
	"github.com/quietcheck/mood-server/internal/dates"
	"github.com/quietcheck/mood-server/internal/insights"
	"github.com/quietcheck/mood-server/internal/llm"
	"github.com/quietcheck/mood-server/internal/models"
	"github.com/quietcheck/mood-server/internal/report"
	"github.com/quietcheck/mood-server/internal/stats"
	"github.com/quietcheck/mood-server/internal/store"
)

const version = "1.0.0"

const (
	defaultStatsDays = 7
	narrativeTTLHrs  = 24

	// Windows fed to the narrative collaborator.
	weeklyDigestEntries  = 14
	patternDigestEntries = 30
)

// Handlers carries the request-scope dependencies for every endpoint.
type Handlers struct {
	cfg   *config.Config
	store *store.Store
	llm   *llm.Client
	clock clockwork.Clock

	practicesCache *cache.Cache[[]string]
	insightCache   *cache.Cache[string]
	patternsCache  *cache.Cache[[]string]
}

// NewHandlers wires the handler set. The clock drives "today" for every
// window computation, so tests can pin it.
func NewHandlers(cfg *config.Config, st *store.Store, client *llm.Client, clock clockwork.Clock) *Handlers {
	return &Handlers{
		cfg:            cfg,
		store:          st,
		llm:            client,
		clock:          clock,
		practicesCache: cache.NewWithClock[[]string](clock),
		insightCache:   cache.NewWithClock[string](clock),
		patternsCache:  cache.NewWithClock[[]string](clock),
	}
}

// PruneCaches drops expired narrative cache entries, for the sweep job.
func (h *Handlers) PruneCaches() int {
	return h.practicesCache.Prune() + h.insightCache.Prune() + h.patternsCache.Prune()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, map[string]string{"error": message, "code": code})
}

// entriesKey derives the cache sub-key for a window: newest date plus
// count, so any new check-in invalidates the cached narrative.
func entriesKey(entries []models.Entry) string {
	maxDate := ""
	for _, e := range entries {
		if e.Date > maxDate {
			maxDate = e.Date
		}
	}
	return fmt.Sprintf("%s_%d", maxDate, len(entries))
}

// ============== Health ==============

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	storeStatus := "ok"
	status := "ok"
	if err := h.store.Ping(); err != nil {
		storeStatus = "unreachable"
		status = "degraded"
	}

	openaiStatus := "configured"
	if !h.llm.Configured() {
		openaiStatus = "not_configured"
	}

	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:  status,
		Store:   storeStatus,
		OpenAI:  openaiStatus,
		Version: version,
	})
}

// ============== Entries ==============

func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListEntries()
	if err != nil {
		log.Printf("Error listing entries: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list entries", "STORE_ERROR")
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from != "" && to != "" {
		entries = dates.InRange(entries, from, to)
	}
	if mood := r.URL.Query().Get("mood"); mood != "" {
		var filtered []models.Entry
		for _, e := range entries {
			if e.Mood == models.Mood(mood) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if entries == nil {
		entries = []models.Entry{}
	}

	writeJSON(w, http.StatusOK, models.EntriesResponse{Entries: entries, Total: len(entries)})
}

func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	if !models.ValidMood(req.Mood) {
		writeError(w, http.StatusBadRequest, "unknown mood", "INVALID_MOOD")
		return
	}
	if len([]rune(req.Note)) > models.MaxNoteLength {
		writeError(w, http.StatusBadRequest, "note exceeds 120 characters", "NOTE_TOO_LONG")
		return
	}

	entry, err := h.store.CreateEntry(models.Mood(req.Mood), strings.TrimSpace(req.Note))
	if err != nil {
		log.Printf("Error creating entry: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create entry", "STORE_ERROR")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handlers) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	if !models.ValidMood(req.Mood) {
		writeError(w, http.StatusBadRequest, "unknown mood", "INVALID_MOOD")
		return
	}
	if len([]rune(req.Note)) > models.MaxNoteLength {
		writeError(w, http.StatusBadRequest, "note exceeds 120 characters", "NOTE_TOO_LONG")
		return
	}

	entry, err := h.store.UpdateEntry(id, models.Mood(req.Mood), strings.TrimSpace(req.Note))
	if err != nil {
		log.Printf("Error updating entry %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to update entry", "STORE_ERROR")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "entry not found", "NOT_FOUND")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.store.DeleteEntry(id)
	if err != nil {
		log.Printf("Error deleting entry %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to delete entry", "STORE_ERROR")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "entry not found", "NOT_FOUND")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ============== Stats ==============

// Stats serves period aggregates. Either ?days=N (default 7) or an
// explicit ?from=YYYY-MM-DD&to=YYYY-MM-DD window.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListEntries()
	if err != nil {
		log.Printf("Error listing entries: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list entries", "STORE_ERROR")
		return
	}

	now := h.clock.Now()
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from != "" && to != "" {
		writeJSON(w, http.StatusOK, stats.ForRange(entries, now, from, to))
		return
	}

	days := defaultStatsDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "days must be a non-negative integer", "BAD_REQUEST")
			return
		}
		days = parsed
	}

	writeJSON(w, http.StatusOK, stats.ForDays(entries, now, days))
}

// ============== Insights ==============

func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListEntries()
	if err != nil {
		log.Printf("Error listing entries: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list entries", "STORE_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, insights.All(entries, h.clock.Now()))
}

// ============== Report ==============

// Report assembles the printable document for an inclusive date window.
// ?format=html renders the standalone page; the default is the JSON
// document model.
func (h *Handlers) Report(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to are required", "BAD_REQUEST")
		return
	}
	if from > to {
		writeError(w, http.StatusBadRequest, "from must not be after to", "BAD_REQUEST")
		return
	}

	entries, err := h.store.ListEntries()
	if err != nil {
		log.Printf("Error listing entries: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list entries", "STORE_ERROR")
		return
	}

	doc := report.Assemble(dates.InRange(entries, from, to), from, to)

	if r.URL.Query().Get("format") == "html" {
		page, err := report.RenderHTML(doc)
		if err != nil {
			log.Printf("Error rendering report: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to render report", "RENDER_ERROR")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(page)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// ============== Narrative collaborator endpoints ==============
//
// A collaborator failure is never an endpoint failure: these log the
// error and serve an empty result, so the client's own heuristics keep
// working offline.

func (h *Handlers) Practices(w http.ResponseWriter, r *http.Request) {
	var req models.PracticesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if !models.ValidMood(req.Mood) {
		writeError(w, http.StatusBadRequest, "unknown mood", "INVALID_MOOD")
		return
	}

	key := req.Mood + "_" + dates.Day(h.clock.Now())
	if cached, ok := h.practicesCache.Get(key); ok {
		writeJSON(w, http.StatusOK, models.PracticesResponse{Practices: cached, Cached: true})
		return
	}

	practices, err := h.llm.Practices(r.Context(), models.Mood(req.Mood))
	if err != nil {
		log.Printf("Error generating practices: %v", err)
		writeJSON(w, http.StatusOK, models.PracticesResponse{Practices: []string{}})
		return
	}

	h.practicesCache.SetHours(key, practices, narrativeTTLHrs)
	writeJSON(w, http.StatusOK, models.PracticesResponse{Practices: practices})
}

func (h *Handlers) WeeklyInsight(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListEntries()
	if err != nil {
		log.Printf("Error listing entries: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list entries", "STORE_ERROR")
		return
	}
	if len(entries) == 0 {
		writeJSON(w, http.StatusOK, models.WeeklyInsightResponse{})
		return
	}

	recent := entries
	if len(recent) > weeklyDigestEntries {
		recent = recent[:weeklyDigestEntries]
	}

	key := entriesKey(recent)
	if cached, ok := h.insightCache.Get(key); ok {
		writeJSON(w, http.StatusOK, models.WeeklyInsightResponse{Insight: cached, Cached: true})
		return
	}

	insight, err := h.llm.WeeklyInsight(r.Context(), llm.FormatEntriesDigest(recent))
	if err != nil {
		log.Printf("Error generating weekly insight: %v", err)
		writeJSON(w, http.StatusOK, models.WeeklyInsightResponse{})
		return
	}

	h.insightCache.SetHours(key, insight, narrativeTTLHrs)
	writeJSON(w, http.StatusOK, models.WeeklyInsightResponse{Insight: insight})
}

func (h *Handlers) Patterns(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListEntries()
	if err != nil {
		log.Printf("Error listing entries: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list entries", "STORE_ERROR")
		return
	}
	if len(entries) == 0 {
		writeJSON(w, http.StatusOK, models.PatternsResponse{Patterns: []string{}})
		return
	}

	recent := entries
	if len(recent) > patternDigestEntries {
		recent = recent[:patternDigestEntries]
	}

	key := entriesKey(recent)
	if cached, ok := h.patternsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, models.PatternsResponse{Patterns: cached, Cached: true})
		return
	}

	patterns, err := h.llm.Patterns(r.Context(), llm.FormatEntriesDigest(recent))
	if err != nil {
		log.Printf("Error generating patterns: %v", err)
		writeJSON(w, http.StatusOK, models.PatternsResponse{Patterns: []string{}})
		return
	}

	h.patternsCache.SetHours(key, patterns, narrativeTTLHrs)
	writeJSON(w, http.StatusOK, models.PatternsResponse{Patterns: patterns})
}

// ============== Chat ==============

func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if strings.TrimSpace(req.ChatID) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "chat_id and message are required", "BAD_REQUEST")
		return
	}

	if err := h.store.AppendMessage(req.ChatID, "user", req.Message); err != nil {
		log.Printf("Error storing chat message: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to store message", "STORE_ERROR")
		return
	}

	history, err := h.store.GetMessages(req.ChatID)
	if err != nil {
		log.Printf("Error loading chat history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load chat history", "STORE_ERROR")
		return
	}

	reply, err := h.llm.Chat(r.Context(), history)
	if err != nil {
		log.Printf("Error generating chat reply: %v", err)
		writeError(w, http.StatusBadGateway, "assistant unavailable", "CHAT_ERROR")
		return
	}

	if err := h.store.AppendMessage(req.ChatID, "assistant", reply); err != nil {
		log.Printf("Error storing assistant reply: %v", err)
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Text: reply})
}

func (h *Handlers) ChatHistory(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	messages, err := h.store.GetMessages(chatID)
	if err != nil {
		log.Printf("Error loading chat history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load chat history", "STORE_ERROR")
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	writeJSON(w, http.StatusOK, models.ChatHistoryResponse{Messages: messages})
}

// ============== Narratives ==============

func (h *Handlers) Narratives(w http.ResponseWriter, r *http.Request) {
	narrativeType := r.URL.Query().Get("type")

	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be RFC3339", "BAD_REQUEST")
			return
		}
		since = &parsed
	}

	narratives, err := h.store.GetNarratives(narrativeType, since)
	if err != nil {
		log.Printf("Error loading narratives: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load narratives", "STORE_ERROR")
		return
	}
	if narratives == nil {
		narratives = []models.Narrative{}
	}

	writeJSON(w, http.StatusOK, models.NarrativesResponse{Narratives: narratives})
}

// ============== Quick help ==============

func (h *Handlers) QuickHelp(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")

	actions, ok := quickHelpCatalog[state]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown state", "NOT_FOUND")
		return
	}

	writeJSON(w, http.StatusOK, models.QuickHelpResponse{State: state, Actions: actions})
}

// ============== Settings ==============

func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.GetSettings())
}

var validThemes = map[string]bool{"light": true, "dark": true, "system": true}

func (h *Handlers) PutSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	if !validThemes[settings.Theme] {
		writeError(w, http.StatusBadRequest, "theme must be light, dark or system", "BAD_REQUEST")
		return
	}
	if _, err := time.Parse("15:04", settings.ReminderTime); err != nil {
		writeError(w, http.StatusBadRequest, "reminder_time must be HH:MM", "BAD_REQUEST")
		return
	}

	if err := h.store.SaveSettings(settings); err != nil {
		log.Printf("Error saving settings: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save settings", "STORE_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// ============== Reset ==============

// Reset wipes entries and settings and drops cached narratives. Chat
// history is kept.
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ResetAll(); err != nil {
		log.Printf("Error resetting data: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to reset data", "STORE_ERROR")
		return
	}

	h.practicesCache.Clear()
	h.insightCache.Clear()
	h.patternsCache.Clear()

	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}
