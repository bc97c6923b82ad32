package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/goliatone/go-quoteform/pkg/model"
)

// Metadata keys added to the record document next to the field values.
const (
	KeyID          = "id"
	KeyReference   = "reference"
	KeyUserAgent   = "user_agent"
	KeySubmittedAt = "submitted_at"
)

// RecordStore performs exactly one insert per call. Implementations do not
// retry.
type RecordStore interface {
	Insert(ctx context.Context, record Record) error
}

// InsertFunc adapts a function to RecordStore.
type InsertFunc func(ctx context.Context, record Record) error

// Insert implements RecordStore.
func (f InsertFunc) Insert(ctx context.Context, record Record) error {
	return f(ctx, record)
}

// Record is one submitted form.
type Record struct {
	ID          string
	Reference   string
	Table       string
	Fields      model.Values
	UserAgent   string
	SubmittedAt time.Time
}

// Receipt acknowledges a stored record.
type Receipt struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Receipt returns the acknowledgement for r.
func (r Record) Receipt() Receipt {
	return Receipt{ID: r.ID, Reference: r.Reference, SubmittedAt: r.SubmittedAt}
}

// Keys returns the field keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.Fields))
	for key := range r.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Document flattens the record into one object: the field values plus the
// metadata keys. Metadata wins over a field of the same name.
func (r Record) Document() map[string]any {
	doc := make(map[string]any, len(r.Fields)+4)
	for key, value := range r.Fields {
		doc[key] = value
	}
	doc[KeyID] = r.ID
	if r.Reference != "" {
		doc[KeyReference] = r.Reference
	}
	if r.UserAgent != "" {
		doc[KeyUserAgent] = r.UserAgent
	}
	doc[KeySubmittedAt] = r.SubmittedAt.UTC().Format(time.RFC3339Nano)
	return doc
}

// MarshalDocument encodes Document as JSON.
func (r Record) MarshalDocument() ([]byte, error) {
	payload, err := sonic.Marshal(r.Document())
	if err != nil {
		return nil, fmt.Errorf("store: encode record %s: %w", r.ID, err)
	}
	return payload, nil
}

// Clone returns a copy whose Fields map is independent of r.
func (r Record) Clone() Record {
	out := r
	if r.Fields != nil {
		out.Fields = r.Fields.Without()
	}
	return out
}
