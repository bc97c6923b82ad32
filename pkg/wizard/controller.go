package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-quoteform/internal/telemetry"
	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/state"
	"github.com/goliatone/go-quoteform/pkg/store"
	"github.com/goliatone/go-quoteform/pkg/validation"
)

// Result reports the outcome of a step change or submission. Errors holds
// the failing fields when the request was blocked by validation; InvalidStep
// names the first step they belong to.
type Result struct {
	Step        int
	Errors      validation.Errors
	InvalidStep int
	Receipt     *store.Receipt
	Status      state.Status
}

// Blocked reports whether validation stopped the request.
func (r Result) Blocked() bool {
	return !r.Errors.Valid()
}

// Controller runs one wizard session over a record of type T.
type Controller[T any] struct {
	mu       sync.Mutex
	cfg      *config.FormConfig
	state    *state.State[T]
	store    store.RecordStore
	validate validation.StepValidator
	opts     options
	metrics  Metrics
	logger   *slog.Logger
	receipt  *store.Receipt
}

// New returns a controller on step 1 holding initial. The config is
// validated and initial must carry a default for every governed field.
func New[T any](cfg *config.FormConfig, initial T, recordStore store.RecordStore, opts ...Option) (*Controller[T], error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if recordStore == nil {
		return nil, ErrNoStore
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	values, err := model.ValuesOf(initial)
	if err != nil {
		return nil, fmt.Errorf("wizard: initial record: %w", err)
	}
	if err := cfg.CheckDefaults(values); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	c := &Controller[T]{
		cfg:      cfg,
		state:    state.New(initial),
		store:    recordStore,
		validate: cfg.Validator(),
		opts:     o,
		metrics:  o.metrics,
		logger:   o.logger.With("form", cfg.ID),
	}
	if c.metrics == nil {
		c.metrics = noopMetrics{}
	}
	return c, nil
}

// Config returns the form config.
func (c *Controller[T]) Config() *config.FormConfig {
	return c.cfg
}

// Step returns the current 1-based step.
func (c *Controller[T]) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Step()
}

// Data returns the current record.
func (c *Controller[T]) Data() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Data()
}

// Values returns the flat view of the current record.
func (c *Controller[T]) Values() (model.Values, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Values()
}

// Status returns the submission status.
func (c *Controller[T]) Status() state.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Status()
}

// Receipt returns the acknowledgement of a successful submission.
func (c *Controller[T]) Receipt() (store.Receipt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.receipt == nil {
		return store.Receipt{}, false
	}
	return *c.receipt, true
}

// Validate checks step n against the current record without moving.
func (c *Controller[T]) Validate(n int) (validation.Errors, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	values, err := c.state.Values()
	if err != nil {
		return nil, err
	}
	return c.validate(n, c.sanitized(values)), nil
}

// Update merges partial into the record.
func (c *Controller[T]) Update(partial model.Partial) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := c.state.UpdateFormData(partial); err != nil {
		return fmt.Errorf("wizard: update: %w", err)
	}
	return nil
}

// Advance validates the current step. When it fails the errors are returned
// and the step does not change; otherwise the controller moves forward, or
// submits when the current step is the last one.
func (c *Controller[T]) Advance(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if err := c.checkOpen(); err != nil {
		c.mu.Unlock()
		return c.result(), err
	}

	current := c.state.Step()
	if current >= c.cfg.StepCount() {
		c.mu.Unlock()
		return c.Submit(ctx)
	}
	defer c.mu.Unlock()

	values, err := c.state.Values()
	if err != nil {
		return c.result(), err
	}
	if errs := c.validate(current, c.sanitized(values)); !errs.Valid() {
		c.metrics.RecordValidation(ctx, c.cfg.ID, current, len(errs))
		c.logger.Debug("step blocked by validation", "step", current, "fields", errs.Keys())
		out := c.result()
		out.Errors = errs
		out.InvalidStep = current
		return out, nil
	}

	next := current + 1
	if err := c.state.SetStep(next); err != nil {
		return c.result(), err
	}
	c.metrics.RecordStep(ctx, c.cfg.ID, current, next)
	c.logger.Debug("step advanced", "from", current, "to", next)
	return c.result(), nil
}

// Retreat moves back one step keeping every entered value. It never
// validates.
func (c *Controller[T]) Retreat() (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return c.result(), err
	}

	current := c.state.Step()
	if current <= 1 {
		return c.result(), ErrAtFirstStep
	}
	if err := c.state.SetStep(current - 1); err != nil {
		return c.result(), err
	}
	c.metrics.RecordStep(context.Background(), c.cfg.ID, current, current-1)
	c.logger.Debug("step retreated", "from", current, "to", current-1)
	return c.result(), nil
}

// Submit checks the honeypot, validates every step against the sanitized
// text and, when the record is valid, performs exactly one store insert.
// The insert is not cancelled when ctx is; it runs until the store answers.
func (c *Controller[T]) Submit(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if err := c.checkOpen(); err != nil {
		c.mu.Unlock()
		return c.result(), err
	}

	values, err := c.state.Values()
	if err != nil {
		c.mu.Unlock()
		return c.result(), err
	}

	if c.honeypotFilled(values) {
		c.metrics.RecordSubmission(ctx, c.cfg.ID, telemetry.OutcomeRejected)
		c.logger.Warn("bot detected, submission blocked", "step", c.state.Step())
		out := c.result()
		c.mu.Unlock()
		return out, &SubmitError{Kind: ErrSubmissionRejected, Message: c.cfg.FailureMessage()}
	}

	clean := c.sanitized(values)
	if errs, first := c.validateAll(clean); !errs.Valid() {
		c.metrics.RecordValidation(ctx, c.cfg.ID, first, len(errs))
		c.metrics.RecordSubmission(ctx, c.cfg.ID, telemetry.OutcomeInvalid)
		c.logger.Debug("submission blocked by validation", "step", first, "fields", errs.Keys())
		out := c.result()
		out.Errors = errs
		out.InvalidStep = first
		c.mu.Unlock()
		return out, nil
	}

	record, err := c.buildRecord(clean)
	if err != nil {
		c.mu.Unlock()
		return c.result(), err
	}
	if err := c.state.SetSubmitting(); err != nil {
		c.mu.Unlock()
		return c.result(), err
	}
	c.mu.Unlock()

	started := c.opts.now()
	insertErr := c.store.Insert(context.WithoutCancel(ctx), record)
	c.metrics.RecordInsert(ctx, c.cfg.ID, c.opts.now().Sub(started))

	c.mu.Lock()
	defer c.mu.Unlock()

	if insertErr != nil {
		message := c.cfg.FailureMessage()
		if err := c.state.SetError(message, insertErr); err != nil {
			return c.result(), err
		}
		c.metrics.RecordSubmission(ctx, c.cfg.ID, telemetry.OutcomeFailed)
		c.logger.Error("record store insert failed", "record", record.ID, "reference", record.Reference, "error", insertErr)
		return c.result(), &SubmitError{Kind: ErrSubmissionFailed, Message: message, Cause: insertErr}
	}

	if err := c.state.SetSucceeded(c.cfg.SuccessMessage()); err != nil {
		return c.result(), err
	}
	receipt := record.Receipt()
	c.receipt = &receipt
	c.metrics.RecordSubmission(ctx, c.cfg.ID, telemetry.OutcomeSucceeded)
	c.logger.Info("quote request stored", "record", record.ID, "reference", record.Reference)
	return c.result(), nil
}

func (c *Controller[T]) checkOpen() error {
	switch c.state.Status().Phase {
	case state.PhaseSubmitting:
		return ErrSubmitInProgress
	case state.PhaseSucceeded:
		return ErrAlreadySubmitted
	default:
		return nil
	}
}

func (c *Controller[T]) honeypotFilled(values model.Values) bool {
	if key := c.cfg.Honeypot; key != "" && strings.TrimSpace(values.String(key)) != "" {
		return true
	}
	if hp, ok := any(c.state.Data()).(model.Honeypotter); ok && strings.TrimSpace(hp.Honeypot()) != "" {
		return true
	}
	return false
}

func (c *Controller[T]) validateAll(values model.Values) (validation.Errors, int) {
	var (
		all   validation.Errors
		first int
	)
	for n := 1; n <= c.cfg.StepCount(); n++ {
		errs := c.validate(n, values)
		if errs.Valid() {
			continue
		}
		if first == 0 {
			first = n
		}
		all = all.Merge(errs)
	}
	return all, first
}

// sanitized returns a copy of values with the sanitizer applied to every
// text field. Validation and the stored record both see this copy; the
// record held by the state keeps what the user typed.
func (c *Controller[T]) sanitized(values model.Values) model.Values {
	out := values.Without()
	if c.opts.sanitizer == nil {
		return out
	}
	for key, field := range c.cfg.Fields {
		if field.Kind != model.KindText {
			continue
		}
		if text, ok := out[key].(string); ok {
			out[key] = c.opts.sanitizer(text)
		}
	}
	return out
}

func (c *Controller[T]) buildRecord(values model.Values) (store.Record, error) {
	fields := values
	if c.cfg.Honeypot != "" {
		fields = values.Without(c.cfg.Honeypot)
	}

	record := store.Record{
		ID:          c.opts.newID(),
		Table:       c.cfg.Table,
		Fields:      fields,
		UserAgent:   c.opts.userAgent,
		SubmittedAt: c.opts.now().UTC(),
	}
	if c.opts.references != nil {
		ref, err := c.opts.references.Next()
		if err != nil {
			return store.Record{}, fmt.Errorf("wizard: issue reference: %w", err)
		}
		record.Reference = ref
	}
	return record, nil
}

func (c *Controller[T]) result() Result {
	out := Result{
		Step:   c.state.Step(),
		Status: c.state.Status(),
	}
	if c.receipt != nil {
		receipt := *c.receipt
		out.Receipt = &receipt
	}
	return out
}
