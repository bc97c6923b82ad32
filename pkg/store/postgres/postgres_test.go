package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/store"
)

func TestStore_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	submitted := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	record := store.Record{
		ID:          "rec-1",
		Reference:   "QX7",
		Fields:      model.Values{"fullName": "Jane Doe", "specificFeatures": []any{"Low profile"}, "consentGiven": true},
		UserAgent:   "cli",
		SubmittedAt: submitted,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "ffu_quote_requests" ("id", "reference", "user_agent", "submitted_at", "consent_given", "full_name", "specific_features") VALUES ($1, $2, $3, $4, $5, $6, $7)`)).
		WithArgs("rec-1", "QX7", "cli", submitted, true, "Jane Doe", `{"Low profile"}`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	s := New(db, "ffu_quote_requests")
	require.NoError(t, s.Insert(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "leads"`)).WillReturnError(boom)

	s := New(db, "ignored")
	err = s.Insert(context.Background(), store.Record{ID: "r", Table: "leads", SubmittedAt: time.Now()})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "postgres: insert into leads")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InsertRequiresTable(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.ErrorIs(t, New(db, "").Insert(context.Background(), store.Record{ID: "r"}), store.ErrEmptyTable)
}
