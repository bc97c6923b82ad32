package state

import (
	"errors"
	"fmt"
)

// Phase is the submission lifecycle position.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// ErrIllegalTransition is returned when a setter would move the status along
// an edge the lifecycle does not allow.
var ErrIllegalTransition = errors.New("state: illegal status transition")

var transitions = map[Phase][]Phase{
	PhaseIdle:       {PhaseSubmitting},
	PhaseSubmitting: {PhaseSucceeded, PhaseFailed},
	PhaseFailed:     {PhaseSubmitting},
}

// CanTransition reports whether the lifecycle allows from -> to.
func CanTransition(from, to Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Status is the submission status. Message is the text shown to the user;
// Cause keeps the underlying failure for logs and is never displayed.
type Status struct {
	Phase   Phase
	Message string
	Cause   error
}

// Submitting reports whether an insert is in flight.
func (s Status) Submitting() bool { return s.Phase == PhaseSubmitting }

// Succeeded reports whether the record was stored.
func (s Status) Succeeded() bool { return s.Phase == PhaseSucceeded }

// Failed reports whether the last attempt failed.
func (s Status) Failed() bool { return s.Phase == PhaseFailed }

func transitionError(from, to Phase) error {
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}
