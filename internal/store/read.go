package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/orso/internal/doc"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Entry is one indexed dataset.
type Entry struct {
	IngestID string   `json:"ingest_id"`
	Seq      int64    `json:"seq"`
	Path     string   `json:"path"`
	Position int      `json:"position"`
	DataSet  string   `json:"data_set"`
	HeaderID string   `json:"header_id"`
	Columns  []string `json:"columns"`
	Rows     int      `json:"rows"`
	Cols     int      `json:"cols"`
}

// Filter narrows List. Zero fields match everything.
type Filter struct {
	DataSet  string
	Path     string
	HeaderID string
}

// List returns indexed datasets matching filter.
// Results are ordered by ingest seq, then position within the file.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) List(ctx context.Context, filter Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if filter.DataSet != "" {
		where = append(where, "d.data_set = ?")
		args = append(args, filter.DataSet)
	}
	if filter.Path != "" {
		where = append(where, "i.path = ?")
		args = append(args, filter.Path)
	}
	if filter.HeaderID != "" {
		where = append(where, "d.header_id = ?")
		args = append(args, filter.HeaderID)
	}

	query := `
		SELECT i.id, i.seq, i.path, d.position, d.data_set, d.header_id, d.columns, d.row_count, d.column_count
		FROM datasets d
		JOIN ingests i ON d.ingest_id = i.id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY i.seq ASC, d.position ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			columns string
		)
		if err := rows.Scan(&e.IngestID, &e.Seq, &e.Path, &e.Position, &e.DataSet, &e.HeaderID, &columns, &e.Rows, &e.Cols); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		if e.Columns, err = unmarshalLabels(columns); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate datasets: %w", err)
	}

	return entries, nil
}

// Header returns the stored header document with the given content id.
// Timestamps come back as RFC 3339 strings.
func (s *Store) Header(ctx context.Context, headerID string) (*doc.Map, error) {
	var text string
	err := s.db.QueryRowContext(ctx, `
		SELECT header FROM datasets WHERE header_id = ? LIMIT 1
	`, headerID).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("header %s: %w", headerID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query header: %w", err)
	}

	v, err := doc.UnmarshalJSON([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("decode header %s: %w", headerID, err)
	}
	m, ok := v.(*doc.Map)
	if !ok {
		return nil, fmt.Errorf("decode header %s: not an object", headerID)
	}
	return m, nil
}
