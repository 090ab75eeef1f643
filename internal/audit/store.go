package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/json-mapper/internal/db"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// ErrNotFound is returned when an entry or revision does not exist.
var ErrNotFound = errors.New("not found")

// Store persists audit entries and mapping revisions. It implements
// mapping.Recorder.
type Store struct {
	db    *db.DB
	actor ActorType
}

// NewStore creates a Store backed by the given database. Changes recorded
// through RecordChange are attributed to ActorUser.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, actor: ActorUser}
}

// WithActor returns a Store sharing the database that attributes recorded
// changes to actor.
func (s *Store) WithActor(actor ActorType) *Store {
	return &Store{db: s.db, actor: actor}
}

// Log inserts a new audit entry. If entry.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Actor == "" {
		entry.Actor = s.actor
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (
			id, actor, action, source_field, summary, previous_value, new_value
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		string(entry.Actor),
		string(entry.Action),
		entry.SourceField,
		entry.Summary,
		nullString(entry.PreviousValue),
		nullString(entry.NewValue),
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// RecordChange logs c and, for saves of a whole document, keeps a revision.
func (s *Store) RecordChange(ctx context.Context, c mapping.Change) error {
	before, err := encodeValue(c.Before)
	if err != nil {
		return fmt.Errorf("encoding previous value: %w", err)
	}
	after, err := encodeValue(c.After)
	if err != nil {
		return fmt.Errorf("encoding new value: %w", err)
	}

	if err := s.Log(ctx, Entry{
		Action:        c.Op,
		SourceField:   c.SourceField,
		Summary:       c.Summary,
		PreviousValue: before,
		NewValue:      after,
	}); err != nil {
		return err
	}

	if doc, ok := c.After.(*mapping.Document); ok && c.Op == mapping.OpSave {
		if _, err := s.SaveRevision(ctx, c.Path, doc); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a single audit entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, actor, action, source_field, summary,
			   previous_value, new_value
		FROM audit_entries WHERE id = ?`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("audit entry %s: %w", id, ErrNotFound)
	}
	return e, err
}

// QueryFilter controls which audit entries are returned by Query.
type QueryFilter struct {
	Actor       ActorType
	Action      mapping.Op
	SourceField string
	Since       *time.Time
	Until       *time.Time
	Limit       int
	Offset      int
}

// Query returns audit entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Actor != "" {
		clauses = append(clauses, "actor = ?")
		args = append(args, string(filter.Actor))
	}
	if filter.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.SourceField != "" {
		clauses = append(clauses, "source_field = ?")
		args = append(args, filter.SourceField)
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}
	if filter.Until != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, filter.Until.UTC().Format(time.DateTime))
	}

	query := "SELECT id, timestamp, actor, action, source_field, summary, previous_value, new_value FROM audit_entries"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes all audit entries older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM audit_entries WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old audit entries: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*Entry, error) {
	var (
		e                       Entry
		actor, action, ts       string
		previousValue, newValue sql.NullString
	)

	err := sc.Scan(&e.ID, &ts, &actor, &action, &e.SourceField, &e.Summary, &previousValue, &newValue)
	if err != nil {
		return nil, err
	}

	e.Actor = ActorType(actor)
	e.Action = mapping.Op(action)
	e.Timestamp = parseTime(ts)
	e.PreviousValue = previousValue.String
	e.NewValue = newValue.String
	return &e, nil
}

func parseTime(ts string) time.Time {
	if t, err := time.Parse(time.DateTime, ts); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t
	}
	return time.Time{}
}

func encodeValue(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
