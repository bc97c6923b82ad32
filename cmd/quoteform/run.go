package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-quoteform/pkg/renderers/text"
	"github.com/goliatone/go-quoteform/pkg/renderers/tui"
)

func newRunCmd(a *app) *cobra.Command {
	var noConfirm bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill in a quote request interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			summary, err := text.New()
			if err != nil {
				return err
			}
			w := tui.New(
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithSummaryRenderer(summary),
				tui.WithLogger(a.logger),
				tui.WithConfirmSubmit(!noConfirm),
			)

			if _, err := w.Run(ctx, ctrl); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), "Quote request cancelled.")
					return nil
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noConfirm, "yes", false, "submit without the review confirmation")
	return cmd
}
