package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the form definition and settings",
	}
	cmd.AddCommand(newConfigCheckCmd(a))
	cmd.AddCommand(newConfigShowCmd(a))
	return cmd
}

func newConfigCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the form definition and its theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.form.RendererConfig(a.settings.Variant); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "form %s ok: %d steps, %d fields, table %s\n",
				a.form.ID, a.form.StepCount(), len(a.form.GovernedKeys()), a.form.Table)
			return nil
		},
	}
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shown := *a.settings
			if shown.Store.REST.APIKey != "" {
				shown.Store.REST.APIKey = "********"
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(shown); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
