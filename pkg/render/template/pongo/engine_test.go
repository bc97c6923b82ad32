package pongo

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := New(WithFS(fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"reference.tmpl":  {Data: []byte("{{ receipt.reference|orempty:\"pending\" }}")},
		"counter.tmpl":    {Data: []byte("Step {{ view.number }} of {{ view.total }} ({{ view.ratio }})")},
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var out strings.Builder
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Jane"}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Jane!" || out.String() != got {
		t.Fatalf("unexpected output %q / %q", got, out.String())
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)
	type receipt struct {
		Reference string `json:"reference"`
	}

	got, err := engine.RenderTemplate("reference.tmpl", map[string]any{"receipt": receipt{Reference: "QF-ABCD2345"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "QF-ABCD2345" {
		t.Fatalf("got %q", got)
	}

	got, err = engine.RenderTemplate("reference", map[string]any{"receipt": receipt{}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "pending" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestEngine_StructNumbersKeepTheirShape(t *testing.T) {
	engine := newEngine(t)
	type counter struct {
		Number int     `json:"number"`
		Total  int     `json:"total"`
		Ratio  float64 `json:"ratio"`
	}

	got, err := engine.RenderTemplate("counter", map[string]any{"view": counter{Number: 2, Total: 3, Ratio: 0.5}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Step 2 of 3 (0.500000)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got, err = engine.RenderString("{{ step }}/{{ count }}", map[string]any{"step": 1, "count": int64(3)})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "1/3" {
		t.Fatalf("got %q, want %q", got, "1/3")
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{"settings": map[string]any{"env": "staging"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString("{{ value|trim }}", map[string]any{"value": "  padded  "})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "padded" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	if err := engine.RegisterFilter("quoteform_shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		if s == "" {
			return nil, errors.New("empty")
		}
		return strings.ToUpper(s), nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := engine.RenderString("{{ name|quoteform_shout }}", map[string]any{"name": "acme"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ACME" {
		t.Fatalf("got %q", got)
	}
	if err := engine.RegisterFilter("quoteform_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without template source")
	}
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
	if _, err := engine.RenderString("{{ value", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
