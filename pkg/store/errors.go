package store

import "errors"

var (
	// ErrRateLimited is returned by the rate limited decorator when the
	// limiter rejects an insert.
	ErrRateLimited = errors.New("store: insert rate limit exceeded")
	// ErrEmptyTable is returned for records without a destination table.
	ErrEmptyTable = errors.New("store: record has no table")
	// ErrDuplicateRecord is returned when a record id was already inserted.
	ErrDuplicateRecord = errors.New("store: duplicate record id")
)
