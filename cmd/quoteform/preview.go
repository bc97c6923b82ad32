package main

import (
	"github.com/spf13/cobra"

	quoteform "github.com/goliatone/go-quoteform"
	"github.com/goliatone/go-quoteform/pkg/render"
	"github.com/goliatone/go-quoteform/pkg/validation"
)

type previewFlags struct {
	file     string
	format   string
	step     int
	steps    []int
	validate bool
}

func newPreviewCmd(a *app) *cobra.Command {
	var flags previewFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the review summary of a quote record",
		Example: `  quoteform preview --file lead.json
  quoteform preview --file lead.yaml --format html --variant dark --validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			partial, err := readPartial(flags.file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			values, err := valuesFor(partial)
			if err != nil {
				return err
			}

			opts := render.RenderOptions{
				Step:    flags.step,
				Steps:   flags.steps,
				Variant: a.settings.Variant,
			}
			if flags.validate {
				var errs validation.Errors
				validate := a.form.Validator()
				for n := 1; n <= a.form.StepCount(); n++ {
					errs = errs.Merge(validate(n, values))
				}
				opts.Errors = render.ValidationPayload(errs)
			}

			output, err := quoteform.RenderSummary(cmd.Context(), flags.format, a.form, values, opts)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.file, "file", "f", "", `record document, "-" for stdin (default blank record)`)
	f.StringVar(&flags.format, "format", "text", "output format: text or html")
	f.IntVar(&flags.step, "step", 0, "mark this step as current")
	f.IntSliceVar(&flags.steps, "steps", nil, "only render these steps")
	f.BoolVar(&flags.validate, "validate", false, "attach validation messages to the summary")
	return cmd
}
