package quoteform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-quoteform/pkg/renderers/vanilla"
	"github.com/goliatone/go-quoteform/pkg/store"
	"github.com/goliatone/go-quoteform/pkg/testsupport"
)

func TestNewControllerSubmitsJaneDoe(t *testing.T) {
	memory := store.NewMemory()
	ctrl, err := NewController(nil, memory)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctx := context.Background()
	for i, partial := range testsupport.JaneDoeSteps() {
		if err := ctrl.Update(partial); err != nil {
			t.Fatalf("update step %d: %v", i+1, err)
		}
		result, err := ctrl.Advance(ctx)
		if err != nil {
			t.Fatalf("advance step %d: %v", i+1, err)
		}
		if result.Blocked() {
			t.Fatalf("step %d blocked: %v", i+1, result.Errors)
		}
	}

	if !ctrl.Status().Succeeded() {
		t.Fatalf("expected success, got %+v", ctrl.Status())
	}
	if memory.Len() != 1 {
		t.Fatalf("expected one stored record, got %d", memory.Len())
	}
}

func TestRenderSummary(t *testing.T) {
	cfg, err := DefaultForm()
	if err != nil {
		t.Fatalf("default form: %v", err)
	}
	values := testsupport.JaneDoeValues(t)

	out, err := RenderSummary(context.Background(), FormatText, cfg, values, RenderOptions{Step: 3})
	if err != nil {
		t.Fatalf("render text: %v", err)
	}
	testsupport.AssertContains(t, string(out), "> Step 3 of 3: Application & Contact", "Company Name: Acme Labs")

	out, err = RenderSummary(context.Background(), FormatHTML, cfg, values, RenderOptions{})
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	testsupport.AssertContains(t, string(out), `data-form="ffu-quote"`)

	if _, err := RenderSummary(context.Background(), "pdf", cfg, values, RenderOptions{}); err == nil || !strings.Contains(err.Error(), "pdf") {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestAssetsFSServesStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), "--primary-color") {
		t.Fatalf("expected stylesheet to use theme variables")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/summary.tmpl"); err != nil {
		t.Fatalf("expected summary template: %v", err)
	}
}
