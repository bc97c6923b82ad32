// Package quoteform wires the FFU quote wizard: the embedded form
// definition, a controller over QuoteRequest and the summary renderers.
package quoteform

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/render"
	"github.com/goliatone/go-quoteform/pkg/renderers/text"
	"github.com/goliatone/go-quoteform/pkg/renderers/vanilla"
	"github.com/goliatone/go-quoteform/pkg/store"
	"github.com/goliatone/go-quoteform/pkg/wizard"
)

// Aliases for the types most callers need.
type (
	FormConfig    = config.FormConfig
	QuoteRequest  = model.QuoteRequest
	RenderOptions = render.RenderOptions
	View          = render.View
	Controller    = wizard.Controller[model.QuoteRequest]
)

// Output formats registered by NewRenderers.
const (
	FormatText = text.Name
	FormatHTML = vanilla.Name
)

// DefaultForm parses the embedded FFU quote form.
func DefaultForm() (*FormConfig, error) {
	return config.Default()
}

// NewController starts a quote session on step 1 with a blank record. A
// nil cfg uses the embedded form.
func NewController(cfg *FormConfig, recordStore store.RecordStore, opts ...wizard.Option) (*Controller, error) {
	if cfg == nil {
		var err error
		if cfg, err = DefaultForm(); err != nil {
			return nil, err
		}
	}
	return wizard.New(cfg, model.NewQuoteRequest(), recordStore, opts...)
}

// NewRenderers returns a registry holding the text and HTML renderers.
func NewRenderers() (*render.Registry, error) {
	textRenderer, err := text.New()
	if err != nil {
		return nil, err
	}
	htmlRenderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(textRenderer, htmlRenderer)
}

// RenderSummary builds the view of values and renders it in format.
func RenderSummary(ctx context.Context, format string, cfg *FormConfig, values model.Values, opts RenderOptions) ([]byte, error) {
	registry, err := NewRenderers()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(format)
	if err != nil {
		return nil, err
	}
	view, err := render.BuildView(cfg, values, opts)
	if err != nil {
		return nil, fmt.Errorf("quoteform: build view: %w", err)
	}
	return renderer.Render(ctx, view)
}

// AssetsFS exposes the stylesheet of the HTML renderer so applications can
// serve it next to rendered summaries.
//
// Typical mount:
//
//	mux.Handle("/quoteform/",
//	  http.StripPrefix("/quoteform/",
//	    http.FileServerFS(quoteform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can
// reuse or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
