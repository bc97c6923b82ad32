package natsstore

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/store"
)

func startJetStream(t *testing.T) jetstream.JetStream {
	t.Helper()

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   t.TempDir(),
		DontListen: true,
	})
	require.NoError(t, err)
	go ns.Start()
	if !ns.ReadyForConnections(4 * time.Second) {
		t.Fatalf("nats server not ready")
	}

	nc, err := nats.Connect("", nats.InProcessServer(ns))
	require.NoError(t, err)
	t.Cleanup(func() {
		nc.Close()
		ns.Shutdown()
	})

	js, err := jetstream.New(nc)
	require.NoError(t, err)
	return js
}

func TestStore_PublishesRecord(t *testing.T) {
	js := startJetStream(t)
	ctx := context.Background()

	s := New(js, "quotes")
	stream, err := s.EnsureStream(ctx, "QUOTES")
	require.NoError(t, err)

	record := store.Record{
		ID:          "rec-1",
		Table:       "ffu_quote_requests",
		Fields:      model.Values{"fullName": "Jane Doe"},
		SubmittedAt: time.Now(),
	}
	require.NoError(t, s.Insert(ctx, record))

	msg, err := stream.GetMsg(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "quotes.ffu_quote_requests", msg.Subject)
	assert.Contains(t, string(msg.Data), `"fullName":"Jane Doe"`)

	err = s.Insert(ctx, record)
	assert.ErrorIs(t, err, store.ErrDuplicateRecord)
}

func TestStore_PublishWithoutStreamFails(t *testing.T) {
	js := startJetStream(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := New(js, "").Insert(ctx, store.Record{ID: "x", SubmittedAt: time.Now()})
	assert.ErrorContains(t, err, "natsstore: publish quoteform.records.records")
}
