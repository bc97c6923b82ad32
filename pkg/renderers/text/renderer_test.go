package text_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/render"
	"github.com/goliatone/go-quoteform/pkg/renderers/text"
	"github.com/goliatone/go-quoteform/pkg/state"
	"github.com/goliatone/go-quoteform/pkg/store"
	"github.com/goliatone/go-quoteform/pkg/testsupport"
)

func newRenderer(t *testing.T) *text.Renderer {
	t.Helper()
	r, err := text.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderer_Summary(t *testing.T) {
	cfg := config.MustDefault()
	view, err := render.BuildView(cfg, testsupport.JaneDoeValues(t), render.RenderOptions{
		Step:   3,
		Errors: map[string][]string{"phoneNumber": {"Please enter a valid phone number"}},
	})
	if err != nil {
		t.Fatalf("build view: %v", err)
	}

	out, err := newRenderer(t).Render(context.Background(), view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	testsupport.AssertContains(t, got,
		cfg.Title+"\n",
		"Step 1 of 3: "+cfg.Steps[0].Title,
		"> Step 3 of 3: "+cfg.Steps[2].Title,
		"  FFU Size: 2'x4'\n",
		"  Airflow Requirements: Not provided\n",
		"  Specific Features: Low profile\n",
		"  Consent: Yes\n",
		"    ! Please enter a valid phone number\n",
	)
	testsupport.AssertNotContains(t, got, "&#39;", "\n\n\n", "{%")
}

func TestRenderer_Outcome(t *testing.T) {
	cfg := config.MustDefault()
	r := newRenderer(t)

	success, err := render.BuildView(cfg, testsupport.JaneDoeValues(t), render.RenderOptions{
		Status:  state.Status{Phase: state.PhaseSucceeded, Message: cfg.SuccessMessage()},
		Receipt: &store.Receipt{ID: "rec-1", Reference: "QF-ABCD2345", SubmittedAt: time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("build view: %v", err)
	}
	out, err := r.Render(context.Background(), success)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, string(out),
		config.DefaultSuccessMessage,
		"Reference: QF-ABCD2345",
		"Submitted: 2026-03-04 15:30 UTC",
	)
	testsupport.AssertNotContains(t, string(out), "Submit again")

	failed, err := render.BuildView(cfg, testsupport.JaneDoeValues(t), render.RenderOptions{
		Status: state.Status{Phase: state.PhaseFailed, Message: cfg.FailureMessage()},
	})
	if err != nil {
		t.Fatalf("build view: %v", err)
	}
	out, err = r.Render(context.Background(), failed)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, string(out), config.DefaultFailureMessage, "Submit again to retry.")
	testsupport.AssertNotContains(t, string(out), "Reference:")
}

func TestRenderer_Metadata(t *testing.T) {
	r := newRenderer(t)
	if r.Name() != text.Name || r.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected metadata %s %s", r.Name(), r.ContentType())
	}
}
