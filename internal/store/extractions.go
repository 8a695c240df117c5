package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Extraction statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Extraction is one recorded extraction run.
type Extraction struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"file_size"`
	Status       string    `json:"status"`
	Sections     []string  `json:"sections"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Record inserts e, assigning an ID and timestamp when they are empty.
func (s *Store) Record(e *Extraction) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Sections == nil {
		e.Sections = []string{}
	}

	sections, err := json.Marshal(e.Sections)
	if err != nil {
		return fmt.Errorf("failed to encode sections: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO extractions (id, filename, file_size, status, sections, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Filename, e.FileSize, e.Status, string(sections), e.ErrorMessage, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record extraction: %w", err)
	}
	return nil
}

// List returns up to limit extractions, newest first. A non-positive
// limit means DefaultListLimit.
func (s *Store) List(limit int) ([]Extraction, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.Query(`
		SELECT id, filename, file_size, status, sections, error_message, created_at
		FROM extractions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}
	defer rows.Close()

	out := []Extraction{}
	for rows.Next() {
		var (
			e        Extraction
			sections string
		)
		if err := rows.Scan(&e.ID, &e.Filename, &e.FileSize, &e.Status, &sections, &e.ErrorMessage, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		if err := json.Unmarshal([]byte(sections), &e.Sections); err != nil {
			return nil, fmt.Errorf("failed to decode sections of %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of recorded extractions with status, or all of
// them when status is empty.
func (s *Store) Count(status string) (int, error) {
	var n int
	var err error
	if status == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM extractions`).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM extractions WHERE status = ?`, status).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count extractions: %w", err)
	}
	return n, nil
}
