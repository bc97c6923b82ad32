package render

import (
	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/state"
	"github.com/goliatone/go-quoteform/pkg/store"
)

// Outcome describes a finished submission attempt.
type Outcome struct {
	Phase       state.Phase `json:"phase"`
	Succeeded   bool        `json:"succeeded"`
	Message     string      `json:"message"`
	Reference   string      `json:"reference,omitempty"`
	RecordID    string      `json:"recordId,omitempty"`
	SubmittedAt string      `json:"submittedAt,omitempty"`
	RedirectURL string      `json:"redirectUrl,omitempty"`
	CanRetry    bool        `json:"canRetry"`
}

// SubmittedAtLayout formats the receipt time in outcome views.
const SubmittedAtLayout = "2006-01-02 15:04 MST"

// NewOutcome returns nil unless status is terminal. The status message wins
// over the configured one so the view shows what the controller reported.
func NewOutcome(cfg *config.FormConfig, status state.Status, receipt *store.Receipt) *Outcome {
	switch {
	case status.Succeeded():
		out := &Outcome{
			Phase:       status.Phase,
			Succeeded:   true,
			Message:     firstNonEmpty(status.Message, cfg.SuccessMessage()),
			RedirectURL: cfg.RedirectURL,
		}
		if receipt != nil {
			out.Reference = receipt.Reference
			out.RecordID = receipt.ID
			if !receipt.SubmittedAt.IsZero() {
				out.SubmittedAt = receipt.SubmittedAt.UTC().Format(SubmittedAtLayout)
			}
		}
		return out
	case status.Failed():
		return &Outcome{
			Phase:    status.Phase,
			Message:  firstNonEmpty(status.Message, cfg.FailureMessage()),
			CanRetry: true,
		}
	default:
		return nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
