package log

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultLimit caps range queries when the caller passes limit <= 0.
const DefaultLimit = 100

// journal is an io.Writer storing one zerolog JSON event per row.
type journal struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
	ins  *sql.Stmt
}

const journalSchema = `
CREATE TABLE IF NOT EXISTS logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	inserted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
	log_data TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_logs_json_time ON logs (json_extract(log_data, '$.time'));`

func openJournal(path string) (*journal, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode=wal&_pragma=busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("log: open journal %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("log: open journal %s: %w", path, err)
	}
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("log: create journal schema: %w", err)
	}
	ins, err := db.Prepare(`INSERT INTO logs (log_data) VALUES (?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("log: prepare journal insert: %w", err)
	}
	return &journal{path: path, db: db, ins: ins}, nil
}

func (j *journal) Write(p []byte) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.ins.Exec(string(p)); err != nil {
		return 0, fmt.Errorf("log: journal write: %w", err)
	}
	return len(p), nil
}

func (j *journal) close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	err := j.ins.Close()
	if cerr := j.db.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("log: close journal: %w", err)
	}
	return nil
}

// Entry is one stored event; Data is the raw zerolog JSON line.
type Entry struct {
	ID         int64
	InsertedAt time.Time
	Data       string
}

func db() (*sql.DB, error) {
	mu.RLock()
	defer mu.RUnlock()
	if jrnl == nil {
		return nil, ErrNotInitialized
	}
	return jrnl.db, nil
}

// Last returns the n most recent entries, oldest first.
func Last(n int) ([]Entry, error) {
	h, err := db()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []Entry{}, nil
	}
	entries, err := query(h, `SELECT id, inserted_at, log_data FROM logs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("log: query last %d: %w", n, err)
	}
	for i, k := 0, len(entries)-1; i < k; i, k = i+1, k-1 {
		entries[i], entries[k] = entries[k], entries[i]
	}
	return entries, nil
}

// Between returns entries whose event time lies in [start, end], in event
// time order.
func Between(start, end time.Time, limit int) ([]Entry, error) {
	h, err := db()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	entries, err := query(h, `
SELECT id, inserted_at, log_data FROM logs
WHERE json_extract(log_data, '$.time') >= ? AND json_extract(log_data, '$.time') <= ?
ORDER BY json_extract(log_data, '$.time') ASC, id ASC
LIMIT ?`, start.Format(timeFieldFormat), end.Format(timeFieldFormat), limit)
	if err != nil {
		return nil, fmt.Errorf("log: query between %s and %s: %w", start, end, err)
	}
	return entries, nil
}

// Since is Between(start, now).
func Since(start time.Time, limit int) ([]Entry, error) {
	return Between(start, time.Now(), limit)
}

func query(h *sql.DB, q string, args ...any) ([]Entry, error) {
	rows, err := h.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Data); err != nil {
			return nil, err
		}
		e.InsertedAt = parseTimestamp(ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var timestampLayouts = []string{
	time.DateTime,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

func parseTimestamp(ts string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
