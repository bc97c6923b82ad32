package state

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-quoteform/pkg/model"
)

// ErrInvalidStep is returned by SetStep for numbers below 1.
var ErrInvalidStep = errors.New("state: step must be >= 1")

// State is the session state of one wizard. T is the record type and must
// round trip through JSON.
type State[T any] struct {
	step   int
	data   T
	status Status
}

// New returns a state on step 1 holding initial, with an idle status.
func New[T any](initial T) *State[T] {
	return &State[T]{
		step:   1,
		data:   initial,
		status: Status{Phase: PhaseIdle},
	}
}

// Step returns the 1-based current step.
func (s *State[T]) Step() int {
	if s == nil {
		return 0
	}
	return s.step
}

// SetStep replaces the step pointer. Upper bounds and validation belong to
// the caller.
func (s *State[T]) SetStep(step int) error {
	if step < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidStep, step)
	}
	s.step = step
	return nil
}

// Data returns the current record.
func (s *State[T]) Data() T {
	return s.data
}

// Values returns the flat view of the current record.
func (s *State[T]) Values() (model.Values, error) {
	return model.ValuesOf(s.data)
}

// UpdateFormData shallow merges partial into the record. The record is left
// untouched when the merge fails.
func (s *State[T]) UpdateFormData(partial model.Partial) error {
	merged, err := model.Merge(s.data, partial)
	if err != nil {
		return err
	}
	s.data = merged
	return nil
}

// Status returns the submission status.
func (s *State[T]) Status() Status {
	return s.status
}

// SetSubmitting moves to Submitting and clears any previous message.
func (s *State[T]) SetSubmitting() error {
	return s.move(Status{Phase: PhaseSubmitting})
}

// SetSucceeded moves to Succeeded with the user facing message.
func (s *State[T]) SetSucceeded(message string) error {
	return s.move(Status{Phase: PhaseSucceeded, Message: message})
}

// SetError moves to Failed, keeping the user facing message and the cause.
func (s *State[T]) SetError(message string, cause error) error {
	return s.move(Status{Phase: PhaseFailed, Message: message, Cause: cause})
}

func (s *State[T]) move(next Status) error {
	if !CanTransition(s.status.Phase, next.Phase) {
		return transitionError(s.status.Phase, next.Phase)
	}
	s.status = next
	return nil
}
