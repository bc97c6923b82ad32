package tui

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-quoteform/pkg/render"
)

// Theme captures optional prefixes applied when printing messages.
type Theme struct {
	StepPrefix  string
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is supplied.
var DefaultTheme = Theme{
	StepPrefix:  "==> ",
	InfoPrefix:  "",
	ErrorPrefix: "  ! ",
}

// Option configures the terminal wizard.
type Option func(*Wizard)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(w *Wizard) {
		if driver != nil {
			w.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(w *Wizard) {
		w.out = out
	}
}

// WithSummaryRenderer renders the review summary and outcome. The text
// renderer is the usual choice.
func WithSummaryRenderer(renderer render.Renderer) Option {
	return func(w *Wizard) {
		w.summary = renderer
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(w *Wizard) {
		w.theme = theme
	}
}

// WithLogger sets the logger for prompt failures.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithConfirmSubmit asks for confirmation after the review summary.
func WithConfirmSubmit(enabled bool) Option {
	return func(w *Wizard) {
		w.confirmSubmit = enabled
	}
}
