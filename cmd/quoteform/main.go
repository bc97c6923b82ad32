// Command quoteform runs the FFU quote wizard in the terminal and renders,
// checks or submits quote records.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "quoteform:", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	settingsFile string
	form         string
	logLevel     string
	store        string
	variant      string
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		a     = &app{}
	)

	rootCmd := &cobra.Command{
		Use:           "quoteform",
		Short:         "Fan filter unit quote wizard",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `quoteform collects cleanroom fan filter unit quote requests through a
three step wizard, validates every step and stores the finished record.

Settings come from quoteform.yaml, QUOTEFORM_ environment variables and the
flags below, in increasing order of precedence.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.settingsFile, "config", "", "settings file (default ./quoteform.yaml when present)")
	pf.StringVar(&flags.form, "form", "", "form definition file (default embedded FFU form)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.store, "store", "", "record store driver")
	pf.StringVar(&flags.variant, "variant", "", "theme variant")

	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newSubmitCmd(a))
	rootCmd.AddCommand(newSchemaCmd(a))
	rootCmd.AddCommand(newPreviewCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	return rootCmd
}
