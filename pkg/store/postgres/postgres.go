// Package postgres inserts records as rows of a PostgreSQL table, one column
// per field.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/goliatone/go-quoteform/pkg/store"
)

// Store writes each record as one row.
type Store struct {
	db    *sql.DB
	table string
}

// New returns a store over db. table is used for records that do not name
// their own.
func New(db *sql.DB, table string) *Store {
	return &Store{db: db, table: table}
}

// Open connects with the lib/pq driver and pings the server.
func Open(ctx context.Context, dsn, table string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return New(db, table), nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert implements store.RecordStore.
func (s *Store) Insert(ctx context.Context, record store.Record) error {
	table := record.Table
	if table == "" {
		table = s.table
	}
	if table == "" {
		return store.ErrEmptyTable
	}

	query, args := InsertStatement(table, record)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("postgres: insert into %s: %w", table, err)
	}
	return nil
}

// InsertStatement builds the parameterised INSERT for record. Metadata
// columns come first, then field columns in sorted key order.
func InsertStatement(table string, record store.Record) (string, []any) {
	columns := []string{store.KeyID, store.KeyReference, store.KeyUserAgent, store.KeySubmittedAt}
	args := []any{record.ID, record.Reference, record.UserAgent, record.SubmittedAt.UTC()}

	for _, key := range record.Keys() {
		columns = append(columns, store.ColumnName(key))
		args = append(args, columnValue(record.Fields[key]))
	}

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = pq.QuoteIdentifier(column)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
	return query, args
}

func columnValue(value any) any {
	switch typed := value.(type) {
	case []string:
		return pq.Array(typed)
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprint(item))
		}
		return pq.Array(items)
	default:
		return typed
	}
}
