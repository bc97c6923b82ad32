// Package natsstore publishes records to a NATS JetStream stream.
package natsstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/goliatone/go-quoteform/pkg/store"
)

const (
	// DefaultStream is the stream records are kept in.
	DefaultStream = "QUOTEFORM_RECORDS"
	// DefaultSubject is the subject prefix; the record table is appended.
	DefaultSubject = "quoteform.records"
)

// Store publishes one message per record, deduplicated by record id.
type Store struct {
	js      jetstream.JetStream
	subject string
	conn    *nats.Conn
}

// New returns a store publishing under subject.
func New(js jetstream.JetStream, subject string) *Store {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Store{js: js, subject: strings.TrimSuffix(subject, ".")}
}

// Open connects to url, ensures the stream exists and returns a store that
// owns the connection.
func Open(ctx context.Context, url, stream, subject string) (*Store, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("natsstore: connect: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("natsstore: jetstream: %w", err)
	}
	s := New(js, subject)
	if _, err := s.EnsureStream(ctx, stream); err != nil {
		nc.Close()
		return nil, err
	}
	s.conn = nc
	return s, nil
}

// EnsureStream creates or updates the stream capturing every record subject.
func (s *Store) EnsureStream(ctx context.Context, name string) (jetstream.Stream, error) {
	if name == "" {
		name = DefaultStream
	}
	stream, err := s.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: []string{s.subject + ".>"},
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("natsstore: setup stream %s: %w", name, err)
	}
	return stream, nil
}

// Subject returns the subject a record is published on.
func (s *Store) Subject(record store.Record) string {
	table := record.Table
	if table == "" {
		table = "records"
	}
	return s.subject + "." + table
}

// Insert implements store.RecordStore.
func (s *Store) Insert(ctx context.Context, record store.Record) error {
	payload, err := record.MarshalDocument()
	if err != nil {
		return err
	}

	subject := s.Subject(record)
	ack, err := s.js.Publish(ctx, subject, payload, jetstream.WithMsgID(record.ID))
	if err != nil {
		return fmt.Errorf("natsstore: publish %s: %w", subject, err)
	}
	if ack.Duplicate {
		return fmt.Errorf("%w: %s", store.ErrDuplicateRecord, record.ID)
	}
	return nil
}

// Close closes the connection opened by Open.
func (s *Store) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	return nil
}
