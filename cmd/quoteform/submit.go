package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	quoteform "github.com/goliatone/go-quoteform"
	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/render"
	"github.com/goliatone/go-quoteform/pkg/schema"
	"github.com/goliatone/go-quoteform/pkg/state"
	"github.com/goliatone/go-quoteform/pkg/store"
	"github.com/goliatone/go-quoteform/pkg/wizard"
)

// ErrInvalidRecord is returned when the submitted document fails validation.
var ErrInvalidRecord = errors.New("quote record is invalid")

func newSubmitCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and store a quote record read from a JSON or YAML file",
		Example: `  quoteform submit --file lead.json
  cat lead.yaml | quoteform submit --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			partial, err := readPartial(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ctrl, closeStore, err := a.controller(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					a.logger.Warn("closing record store", "error", err)
				}
			}()

			if err := ctrl.Update(partial); err != nil {
				return err
			}
			values, err := ctrl.Values()
			if err != nil {
				return err
			}
			for _, issue := range schema.Check(a.form, values) {
				a.logger.Debug("schema issue", "field", issue.Field, "message", issue.Message)
			}

			result, submitErr := ctrl.Submit(ctx)
			out := cmd.OutOrStdout()
			if result.Blocked() {
				printErrors(out, a.form, result)
				return ErrInvalidRecord
			}
			if submitErr != nil && !ctrl.Status().Failed() {
				fmt.Fprintln(out, wizard.UserMessage(submitErr))
				return submitErr
			}

			receipt, _ := ctrl.Receipt()
			if err := printOutcome(cmd, a, values, ctrl.Status(), receipt); err != nil {
				return err
			}
			return submitErr
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `record document, "-" for stdin`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printErrors(out io.Writer, cfg *config.FormConfig, result wizard.Result) {
	fmt.Fprintf(out, "Step %d needs attention:\n", result.InvalidStep)
	for _, key := range result.Errors.Keys() {
		fmt.Fprintf(out, "  %s (step %d): %s\n", key, cfg.StepOf(key), result.Errors.Field(key))
	}
}

func printOutcome(cmd *cobra.Command, a *app, values model.Values, status state.Status, receipt store.Receipt) error {
	opts := render.RenderOptions{Status: status, Variant: a.settings.Variant}
	if receipt.ID != "" {
		opts.Receipt = &receipt
	}
	output, err := quoteform.RenderSummary(cmd.Context(), quoteform.FormatText, a.form, values, opts)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(output)
	return err
}
