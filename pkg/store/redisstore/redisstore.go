// Package redisstore appends records to a Redis stream.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-quoteform/pkg/store"
)

// DefaultStream is used when no stream key is configured.
const DefaultStream = "quoteform:records"

// StreamAdder is the subset of the Redis client the store needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Store appends one stream entry per record.
type Store struct {
	client StreamAdder
	stream string
	closer func() error
}

// New returns a store appending to stream.
func New(client StreamAdder, stream string) *Store {
	if stream == "" {
		stream = DefaultStream
	}
	return &Store{client: client, stream: stream}
}

// Open parses a redis:// URL and returns a store owning the client.
func Open(url, stream string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redisstore: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	s := New(client, stream)
	s.closer = client.Close
	return s, nil
}

// Insert implements store.RecordStore. The entry carries the record id, its
// table and the JSON document.
func (s *Store) Insert(ctx context.Context, record store.Record) error {
	payload, err := record.MarshalDocument()
	if err != nil {
		return err
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"id":       record.ID,
			"table":    record.Table,
			"document": string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("redisstore: xadd %s: %w", s.stream, err)
	}
	return nil
}

// Close closes a client created by Open.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
