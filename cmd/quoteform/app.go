package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	quoteform "github.com/goliatone/go-quoteform"
	"github.com/goliatone/go-quoteform/internal/logging"
	"github.com/goliatone/go-quoteform/internal/reference"
	"github.com/goliatone/go-quoteform/internal/settings"
	"github.com/goliatone/go-quoteform/internal/telemetry"
	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/schema"
	"github.com/goliatone/go-quoteform/pkg/wizard"
)

// app is the state shared by every subcommand once the persistent flags
// are resolved.
type app struct {
	settings *settings.Settings
	form     *config.FormConfig
	logger   *slog.Logger
}

func (a *app) load(cmd *cobra.Command, flags rootFlags) error {
	s, err := settings.Load(flags.settingsFile)
	if err != nil {
		return err
	}
	if flags.form != "" {
		s.Form = flags.form
	}
	if flags.logLevel != "" {
		s.LogLevel = flags.logLevel
	}
	if flags.store != "" {
		s.Store.Driver = flags.store
	}
	if flags.variant != "" {
		s.Variant = flags.variant
	}

	logger, err := logging.New(s.LogLevel, s.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var form *config.FormConfig
	if s.Form != "" {
		form, err = config.Load(s.Form)
	} else {
		form, err = config.Default()
	}
	if err != nil {
		return err
	}

	a.settings = s
	a.form = form
	a.logger = logger.With("form", form.ID)
	a.logger.Debug("settings loaded", "store", s.Store.Driver, "variant", s.Variant)
	return nil
}

// controller opens the configured store and returns a fresh wizard session.
// The returned closer releases the store.
func (a *app) controller(ctx context.Context) (*quoteform.Controller, func() error, error) {
	recordStore, closeStore, err := settings.OpenStore(ctx, a.settings.Store, a.form.Table)
	if err != nil {
		return nil, nil, err
	}

	metrics, err := telemetry.New(nil)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	refs, err := reference.New(a.settings.Reference)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}

	userAgent := a.settings.UserAgent
	if userAgent == "" {
		userAgent = "quoteform/" + version
	}
	ctrl, err := quoteform.NewController(a.form, recordStore,
		wizard.WithLogger(a.logger),
		wizard.WithUserAgent(userAgent),
		wizard.WithMetrics(metrics),
		wizard.WithReferenceGenerator(refs),
	)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	return ctrl, closeStore, nil
}

// readPartial loads a quote record document from path, or from stdin when
// path is "-". An empty path yields no values.
func readPartial(path string, stdin io.Reader) (model.Partial, error) {
	if path == "" {
		return nil, nil
	}
	doc, err := schema.ReadFile(path, stdin)
	if err != nil {
		return nil, err
	}
	return doc.Partial()
}

// valuesFor applies partial to the blank quote record.
func valuesFor(partial model.Partial) (model.Values, error) {
	record, err := model.Merge(model.NewQuoteRequest(), partial)
	if err != nil {
		return nil, err
	}
	return model.ValuesOf(record)
}
