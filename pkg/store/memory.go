package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory keeps records in process. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	records []Record
	ids     map[string]struct{}
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{ids: make(map[string]struct{})}
}

// Insert implements RecordStore.
func (m *Memory) Insert(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.Table == "" {
		return ErrEmptyTable
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.ids[record.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, record.ID)
	}
	m.ids[record.ID] = struct{}{}
	m.records = append(m.records, record.Clone())
	return nil
}

// Records returns copies of the stored records in insertion order.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	for i, record := range m.records {
		out[i] = record.Clone()
	}
	return out
}

// Len returns the number of stored records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
