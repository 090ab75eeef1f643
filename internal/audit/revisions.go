package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// SaveRevision stores a copy of doc as written to path.
func (s *Store) SaveRevision(ctx context.Context, path string, doc *mapping.Document) (*Revision, error) {
	body, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding revision: %w", err)
	}
	st := doc.Stats()
	rev := &Revision{
		ID:         uuid.New().String(),
		Path:       path,
		Mappings:   st.Mappings,
		Mismatches: st.Mismatches,
		Body:       string(body),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO mapping_revisions (id, path, mappings, mismatches, body)
		VALUES (?, ?, ?, ?, ?)`,
		rev.ID, rev.Path, rev.Mappings, rev.Mismatches, rev.Body,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting revision: %w", err)
	}
	return rev, nil
}

// Revisions lists saved revisions, newest first. A limit of zero or less
// returns all of them.
func (s *Store) Revisions(ctx context.Context, limit int) ([]Revision, error) {
	query := "SELECT id, created_at, path, mappings, mismatches, body FROM mapping_revisions ORDER BY created_at DESC, rowid DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		r, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revs = append(revs, *r)
	}
	return revs, rows.Err()
}

// Revision retrieves a saved revision by ID.
func (s *Store) Revision(ctx context.Context, id string) (*Revision, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, created_at, path, mappings, mismatches, body FROM mapping_revisions WHERE id = ?", id)
	r, err := scanRevision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("revision %s: %w", id, ErrNotFound)
	}
	return r, err
}

func scanRevision(sc scanner) (*Revision, error) {
	var (
		r  Revision
		ts string
	)
	if err := sc.Scan(&r.ID, &ts, &r.Path, &r.Mappings, &r.Mismatches, &r.Body); err != nil {
		return nil, err
	}
	r.CreatedAt = parseTime(ts)
	return &r, nil
}
