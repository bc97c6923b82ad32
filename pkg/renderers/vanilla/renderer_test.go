package vanilla_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/render"
	"github.com/goliatone/go-quoteform/pkg/renderers/vanilla"
	"github.com/goliatone/go-quoteform/pkg/state"
	"github.com/goliatone/go-quoteform/pkg/store"
	"github.com/goliatone/go-quoteform/pkg/testsupport"
)

func renderView(t *testing.T, r *vanilla.Renderer, opts render.RenderOptions, mutate func(map[string]any)) string {
	t.Helper()
	values := testsupport.JaneDoeValues(t)
	if mutate != nil {
		mutate(values)
	}
	view, err := render.BuildView(config.MustDefault(), values, opts)
	if err != nil {
		t.Fatalf("build view: %v", err)
	}
	out, err := r.Render(context.Background(), view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_SummaryHTML(t *testing.T) {
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	got := renderView(t, r, render.RenderOptions{
		Step:   2,
		Errors: map[string][]string{"businessEmail": {"Please enter a business email address"}},
	}, func(values map[string]any) {
		values["companyName"] = "<script>alert(1)</script>"
	})

	testsupport.AssertContains(t, got,
		`data-form="ffu-quote"`,
		`data-status="idle"`,
		`--primary-color: #4f46e5;`,
		`Performance &amp; Features`,
		`quoteform__step quoteform__step--current" data-step="2"`,
		`<dd data-field="airflowRequirements" class="quoteform__empty">Not provided</dd>`,
		`data-error-for="businessEmail">Please enter a business email address</dd>`,
		`&lt;script&gt;alert(1)&lt;/script&gt;`,
		`<a href="https://www.cleanroomsolutions.com/legal/privacy-policy">Privacy policy</a>`,
	)
	testsupport.AssertNotContains(t, got, "<script>", "<style>")
}

func TestRenderer_ThemeVariant(t *testing.T) {
	r, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	got := renderView(t, r, render.RenderOptions{Variant: "dark"}, nil)
	testsupport.AssertContains(t, got, `--background-color: #1f2937;`, `--primary-color: #4f46e5;`)
}

func TestRenderer_OutcomeHTML(t *testing.T) {
	r, err := vanilla.New(vanilla.WithInlineStyles(true))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	got := renderView(t, r, render.RenderOptions{
		Status:  state.Status{Phase: state.PhaseSucceeded},
		Receipt: &store.Receipt{ID: "rec-1", Reference: "QF-ABCD2345"},
	}, nil)

	testsupport.AssertContains(t, got,
		`data-status="succeeded"`,
		`<p role="status">`+config.DefaultSuccessMessage+`</p>`,
		`<strong>QF-ABCD2345</strong>`,
		`<style>`,
		`var(--primary-color`,
	)
	testsupport.AssertNotContains(t, got, "Submit again")
}

func TestAssetsFS(t *testing.T) {
	data, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected stylesheet content")
	}
}
