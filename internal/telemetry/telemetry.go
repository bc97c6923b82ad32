// Package telemetry records wizard metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ScopeName is the instrumentation scope of every instrument.
const ScopeName = "github.com/goliatone/go-quoteform"

// Submission outcomes.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
	OutcomeInvalid   = "invalid"
)

// Metrics holds the wizard instruments. A nil *Metrics records nothing.
type Metrics struct {
	submissions      metric.Int64Counter
	validationErrors metric.Int64Counter
	stepTransitions  metric.Int64Counter
	insertDuration   metric.Float64Histogram
}

// New creates the instruments on meter. A nil meter uses the global
// provider.
func New(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(ScopeName)
	}

	var (
		m   Metrics
		err error
	)
	m.submissions, err = meter.Int64Counter("quoteform.submissions.total",
		metric.WithDescription("Submission attempts by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: submissions counter: %w", err)
	}
	m.validationErrors, err = meter.Int64Counter("quoteform.validation.errors",
		metric.WithDescription("Field validation failures by step"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: validation counter: %w", err)
	}
	m.stepTransitions, err = meter.Int64Counter("quoteform.steps.transitions",
		metric.WithDescription("Step changes by direction"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: step counter: %w", err)
	}
	m.insertDuration, err = meter.Float64Histogram("quoteform.store.insert.duration",
		metric.WithDescription("Record store insert latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: insert histogram: %w", err)
	}
	return &m, nil
}

// RecordSubmission counts one submission attempt.
func (m *Metrics) RecordSubmission(ctx context.Context, form, outcome string) {
	if m == nil {
		return
	}
	m.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("form", form),
		attribute.String("outcome", outcome),
	))
}

// RecordValidation counts the failing fields of one step check.
func (m *Metrics) RecordValidation(ctx context.Context, form string, step, failures int) {
	if m == nil || failures == 0 {
		return
	}
	m.validationErrors.Add(ctx, int64(failures), metric.WithAttributes(
		attribute.String("form", form),
		attribute.Int("step", step),
	))
}

// RecordStep counts a move from one step to another.
func (m *Metrics) RecordStep(ctx context.Context, form string, from, to int) {
	if m == nil {
		return
	}
	direction := "forward"
	if to < from {
		direction = "back"
	}
	m.stepTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("form", form),
		attribute.String("direction", direction),
	))
}

// RecordInsert observes the latency of one store insert.
func (m *Metrics) RecordInsert(ctx context.Context, form string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.insertDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("form", form)))
}
