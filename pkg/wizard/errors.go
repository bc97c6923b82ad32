package wizard

import (
	"errors"

	"github.com/goliatone/go-quoteform/pkg/config"
)

var (
	// ErrNilConfig is returned when no form config is supplied.
	ErrNilConfig = errors.New("wizard: form config is required")
	// ErrNoStore is returned when no record store is supplied.
	ErrNoStore = errors.New("wizard: record store is required")
	// ErrSubmitInProgress rejects calls made while an insert is in flight.
	ErrSubmitInProgress = errors.New("wizard: submission in progress")
	// ErrAlreadySubmitted rejects calls made after a successful submission.
	ErrAlreadySubmitted = errors.New("wizard: already submitted")
	// ErrAtFirstStep is returned by Retreat on step 1.
	ErrAtFirstStep = errors.New("wizard: already on the first step")
	// ErrSubmissionRejected marks a submission dropped by the honeypot check.
	ErrSubmissionRejected = errors.New("wizard: submission rejected")
	// ErrSubmissionFailed marks a submission whose insert failed.
	ErrSubmissionFailed = errors.New("wizard: submission failed")
)

// SubmitError carries the user facing message of a rejected or failed
// submission. Kind is ErrSubmissionRejected or ErrSubmissionFailed; Cause is
// the store error, if any.
type SubmitError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *SubmitError) Error() string {
	if e.Cause != nil {
		return e.Kind.Error() + ": " + e.Cause.Error()
	}
	return e.Kind.Error()
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *SubmitError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// UserMessage returns the text safe to show an end user for err. Store
// details are never included.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var submitErr *SubmitError
	switch {
	case errors.As(err, &submitErr) && submitErr.Message != "":
		return submitErr.Message
	case errors.Is(err, ErrSubmitInProgress):
		return "Your quote request is being submitted. Please wait."
	case errors.Is(err, ErrAlreadySubmitted):
		return "Your quote request has already been submitted."
	default:
		return config.DefaultFailureMessage
	}
}
