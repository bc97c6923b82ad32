// Package sqlite keeps records as JSON documents in a SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/bytedance/sonic"

	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/store"

	_ "modernc.org/sqlite"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store writes records into one document table.
type Store struct {
	db    *sql.DB
	table string
}

// Open opens dsn with the modernc driver and creates the table.
func Open(ctx context.Context, dsn, table string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	s, err := New(ctx, db, table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps db and migrates the document table.
func New(ctx context.Context, db *sql.DB, table string) (*Store, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("sqlite: invalid table name %q", table)
	}
	s := &Store{db: db, table: table}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		submitted_at TEXT NOT NULL,
		fields JSON NOT NULL
	);`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("sqlite: migrate %s: %w", s.table, err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert implements store.RecordStore. Records naming another table are
// rejected.
func (s *Store) Insert(ctx context.Context, record store.Record) error {
	if record.Table != "" && record.Table != s.table {
		return fmt.Errorf("sqlite: record for %q inserted into %q", record.Table, s.table)
	}

	fields, err := sonic.Marshal(record.Fields)
	if err != nil {
		return fmt.Errorf("sqlite: encode fields: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, reference, user_agent, submitted_at, fields) VALUES (?, ?, ?, ?, ?)`, s.table)
	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.Reference, record.UserAgent,
		record.SubmittedAt.UTC().Format(time.RFC3339Nano), string(fields),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert %s: %w", record.ID, err)
	}
	return nil
}

// Get loads the record stored under id.
func (s *Store) Get(ctx context.Context, id string) (store.Record, error) {
	query := fmt.Sprintf(`SELECT id, reference, user_agent, submitted_at, fields FROM %s WHERE id = ?`, s.table)

	var (
		record    store.Record
		submitted string
		fields    string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&record.ID, &record.Reference, &record.UserAgent, &submitted, &fields)
	if err != nil {
		return store.Record{}, fmt.Errorf("sqlite: get %s: %w", id, err)
	}

	record.Table = s.table
	if record.SubmittedAt, err = time.Parse(time.RFC3339Nano, submitted); err != nil {
		return store.Record{}, fmt.Errorf("sqlite: parse submitted_at: %w", err)
	}
	var values model.Values
	if err := sonic.UnmarshalString(fields, &values); err != nil {
		return store.Record{}, fmt.Errorf("sqlite: decode fields: %w", err)
	}
	record.Fields = values
	return record, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count: %w", err)
	}
	return n, nil
}
