// Package store owns all persisted state: the append-mostly entry log,
// user settings, chat history and generated narratives, all in one
// sqlite database.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"

	"github.com/quietcheck/mood-server/internal/dates"
	"github.com/quietcheck/mood-server/internal/models"
)

const schema = `
-- Mood check-ins. Multiple entries per day are expected.
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,          -- YYYY-MM-DD, local civil day
    time TEXT NOT NULL,          -- HH:MM, informational
    mood TEXT NOT NULL,
    note TEXT,
    created_at INTEGER NOT NULL, -- ms epoch, immutable
    updated_at INTEGER NOT NULL
);

-- Single-row settings blob; malformed payloads fall back to defaults.
CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    payload TEXT NOT NULL
);

-- Chat history for the reflective assistant.
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chat_id TEXT NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- Generated weekly narratives.
CREATE TABLE IF NOT EXISTS narratives (
    narrative_id TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    for_date TEXT NOT NULL,
    text TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id);
CREATE INDEX IF NOT EXISTS idx_narratives_date ON narratives(for_date);
`

type Store struct {
	conn  *sql.DB
	clock clockwork.Clock
}

// Open opens (and migrates) the database at path using the real clock.
func Open(path string) (*Store, error) {
	return OpenWithClock(path, clockwork.NewRealClock())
}

// OpenWithClock opens the database with an injected clock; entry dates
// and timestamps derive from it, which keeps tests deterministic.
func OpenWithClock(path string, clock clockwork.Clock) (*Store, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{conn: conn, clock: clock}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// Ping reports whether the underlying database is reachable.
func (s *Store) Ping() error {
	return s.conn.Ping()
}

// ============== Entries ==============

// ListEntries returns every entry, most recent first.
func (s *Store) ListEntries() ([]models.Entry, error) {
	rows, err := s.conn.Query(`
		SELECT id, date, time, mood, note, created_at, updated_at
		FROM entries
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		var note sql.NullString
		if err := rows.Scan(&e.ID, &e.Date, &e.Time, &e.Mood, &note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Note = note.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CreateEntry records a new check-in. Date and time derive from the
// store clock's local wall time.
func (s *Store) CreateEntry(mood models.Mood, note string) (models.Entry, error) {
	now := s.clock.Now()
	e := models.Entry{
		ID:        uuid.NewString(),
		Date:      dates.Day(now),
		Time:      dates.Clock(now),
		Mood:      mood,
		Note:      note,
		CreatedAt: now.UnixMilli(),
		UpdatedAt: now.UnixMilli(),
	}

	_, err := s.conn.Exec(`
		INSERT INTO entries (id, date, time, mood, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Date, e.Time, e.Mood, e.Note, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return models.Entry{}, err
	}
	return e, nil
}

// UpdateEntry changes mood and note in place, preserving id, date and
// created_at. Returns nil when the id is unknown.
func (s *Store) UpdateEntry(id string, mood models.Mood, note string) (*models.Entry, error) {
	updatedAt := s.clock.Now().UnixMilli()
	res, err := s.conn.Exec(`
		UPDATE entries SET mood = ?, note = ?, updated_at = ?
		WHERE id = ?
	`, mood, note, updatedAt, id)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	var e models.Entry
	var noteCol sql.NullString
	err = s.conn.QueryRow(`
		SELECT id, date, time, mood, note, created_at, updated_at
		FROM entries WHERE id = ?
	`, id).Scan(&e.ID, &e.Date, &e.Time, &e.Mood, &noteCol, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Note = noteCol.String
	return &e, nil
}

// DeleteEntry removes an entry; false means the id was unknown.
func (s *Store) DeleteEntry(id string) (bool, error) {
	res, err := s.conn.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// ResetAll wipes entries and settings, the reset-all-data action. Chat
// history survives a reset, matching the original behavior.
func (s *Store) ResetAll() error {
	if _, err := s.conn.Exec(`DELETE FROM entries`); err != nil {
		return err
	}
	_, err := s.conn.Exec(`DELETE FROM settings`)
	return err
}

// ============== Settings ==============

// GetSettings returns the persisted settings, falling back to the
// documented defaults when the row is missing or malformed. Corrupt
// state is never surfaced as an error.
func (s *Store) GetSettings() models.Settings {
	var payload string
	err := s.conn.QueryRow(`SELECT payload FROM settings WHERE id = 1`).Scan(&payload)
	if err != nil {
		return models.DefaultSettings()
	}

	settings := models.DefaultSettings()
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		return models.DefaultSettings()
	}
	return settings
}

// SaveSettings persists the settings blob.
func (s *Store) SaveSettings(settings models.Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	_, err = s.conn.Exec(`
		INSERT INTO settings (id, payload) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET payload = ?
	`, string(payload), string(payload))
	return err
}

// ============== Chat ==============

// AppendMessage stores one chat turn.
func (s *Store) AppendMessage(chatID, role, content string) error {
	_, err := s.conn.Exec(`
		INSERT INTO messages (chat_id, role, content, created_at)
		VALUES (?, ?, ?, ?)
	`, chatID, role, content, s.clock.Now().UTC().Format(time.RFC3339))
	return err
}

// GetMessages returns a chat's history, oldest first.
func (s *Store) GetMessages(chatID string) ([]models.ChatMessage, error) {
	rows, err := s.conn.Query(`
		SELECT id, chat_id, role, content, created_at
		FROM messages
		WHERE chat_id = ?
		ORDER BY id ASC
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ============== Narratives ==============

// SaveNarrative records a generated narrative.
func (s *Store) SaveNarrative(id, narrativeType, forDate, text string) error {
	_, err := s.conn.Exec(`
		INSERT INTO narratives (narrative_id, type, for_date, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, narrativeType, forDate, text, s.clock.Now().UTC().Format(time.RFC3339))
	return err
}

// GetNarratives returns narratives, newest first, optionally filtered
// by type and creation time.
func (s *Store) GetNarratives(narrativeType string, since *time.Time) ([]models.Narrative, error) {
	query := `SELECT narrative_id, type, for_date, text, created_at FROM narratives WHERE 1=1`
	var args []interface{}

	if narrativeType != "" && narrativeType != "all" {
		query += ` AND type = ?`
		args = append(args, narrativeType)
	}
	if since != nil {
		query += ` AND created_at >= ?`
		args = append(args, since.Format(time.RFC3339))
	}
	query += ` ORDER BY created_at DESC LIMIT 50`

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var narratives []models.Narrative
	for rows.Next() {
		var n models.Narrative
		if err := rows.Scan(&n.ID, &n.Type, &n.ForDate, &n.Text, &n.CreatedAt); err != nil {
			return nil, err
		}
		narratives = append(narratives, n)
	}
	return narratives, rows.Err()
}
