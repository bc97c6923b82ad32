package tui

import (
	"github.com/goliatone/go-quoteform/pkg/validation"
)

// State tracks the messages from the last blocked step so the next round of
// prompts can show them next to the fields that failed.
type State struct {
	errors validation.Errors
	step   int
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// SetErrors records the failing fields of step.
func (s *State) SetErrors(step int, errs validation.Errors) {
	s.step = step
	s.errors = errs
}

// ErrorFor returns the pending message for key on step, if any.
func (s *State) ErrorFor(step int, key string) string {
	if s == nil || s.step != step {
		return ""
	}
	return s.errors.Field(key)
}

// Pending reports whether step has unresolved messages.
func (s *State) Pending(step int) bool {
	return s != nil && s.step == step && !s.errors.Valid()
}

// Clear drops every pending message.
func (s *State) Clear() {
	s.errors = nil
	s.step = 0
}
