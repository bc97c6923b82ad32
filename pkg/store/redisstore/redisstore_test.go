package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/store"
)

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1-0", f.err)
}

func TestStore_Insert(t *testing.T) {
	fake := &fakeStream{}
	s := New(fake, "")

	err := s.Insert(context.Background(), store.Record{
		ID:          "rec-1",
		Table:       "ffu_quote_requests",
		Fields:      model.Values{"fullName": "Jane Doe"},
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, fake.args, 1)

	args := fake.args[0]
	assert.Equal(t, DefaultStream, args.Stream)
	values, ok := args.Values.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "rec-1", values["id"])
	assert.Equal(t, "ffu_quote_requests", values["table"])
	assert.Contains(t, values["document"], `"fullName":"Jane Doe"`)
}

func TestStore_InsertError(t *testing.T) {
	boom := errors.New("READONLY")
	s := New(&fakeStream{err: boom}, "leads")

	err := s.Insert(context.Background(), store.Record{ID: "x", SubmittedAt: time.Now()})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "redisstore: xadd leads")
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := Open("http://not-redis", "")
	assert.ErrorContains(t, err, "redisstore: parse url")
}
