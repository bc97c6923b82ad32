package render

import (
	"github.com/goliatone/go-quoteform/pkg/state"
	"github.com/goliatone/go-quoteform/pkg/store"
)

// RenderOptions carry per-request data used to build a View without
// touching the controller.
type RenderOptions struct {
	// Step marks the current step. Zero leaves every step unmarked.
	Step int
	// Errors are field messages keyed by field key. Unknown keys surface as
	// form-level errors.
	Errors map[string][]string
	// FormErrors are messages not tied to a field.
	FormErrors []string
	// Status is the submission status. The idle phase renders a summary;
	// terminal phases render the outcome.
	Status state.Status
	// Receipt is the store acknowledgement of a successful submission.
	Receipt *store.Receipt
	// Variant selects a theme variant. Empty uses the configured default.
	Variant string
	// Steps restricts the summary to the listed step numbers.
	Steps []int
	// Locale and Translator localise titles, labels and help text.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}
