package wizard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-quoteform/internal/sanitize"
)

// Metrics receives controller measurements. *telemetry.Metrics satisfies it.
type Metrics interface {
	RecordSubmission(ctx context.Context, form, outcome string)
	RecordValidation(ctx context.Context, form string, step, failures int)
	RecordStep(ctx context.Context, form string, from, to int)
	RecordInsert(ctx context.Context, form string, elapsed time.Duration)
}

// ReferenceGenerator issues the human readable reference of a record.
type ReferenceGenerator interface {
	Next() (string, error)
}

// Option customises a Controller.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	userAgent  string
	now        func() time.Time
	sanitizer  func(string) string
	metrics    Metrics
	references ReferenceGenerator
	newID      func() string
}

func defaultOptions() options {
	return options{
		logger:    slog.Default(),
		now:       time.Now,
		sanitizer: sanitize.Text,
		newID:     uuid.NewString,
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithUserAgent sets the client user agent stored with the record.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithSanitizer overrides the cleaning applied to free text fields in the
// stored record. Pass nil to store text as entered.
func WithSanitizer(fn func(string) string) Option {
	return func(o *options) {
		o.sanitizer = fn
	}
}

// WithMetrics records controller measurements.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithReferenceGenerator issues a reference for each stored record.
func WithReferenceGenerator(gen ReferenceGenerator) Option {
	return func(o *options) {
		o.references = gen
	}
}

// WithIDGenerator overrides the record id source.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

type noopMetrics struct{}

func (noopMetrics) RecordSubmission(context.Context, string, string) {}
func (noopMetrics) RecordValidation(context.Context, string, int, int) {}
func (noopMetrics) RecordStep(context.Context, string, int, int) {}
func (noopMetrics) RecordInsert(context.Context, string, time.Duration) {}
