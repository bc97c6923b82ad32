package store

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimited rejects inserts beyond the limiter budget instead of waiting.
type RateLimited struct {
	next    RecordStore
	limiter *rate.Limiter
}

// NewRateLimited wraps next with a limiter allowing perMinute inserts with a
// burst of the same size. perMinute <= 0 returns next unchanged.
func NewRateLimited(next RecordStore, perMinute int) RecordStore {
	if perMinute <= 0 {
		return next
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

// Insert implements RecordStore.
func (r *RateLimited) Insert(ctx context.Context, record Record) error {
	if !r.limiter.Allow() {
		return ErrRateLimited
	}
	return r.next.Insert(ctx, record)
}
