package cli

import (
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		output string
		fmat   string
	)

	cmd := &cobra.Command{
		Use:   "export -o OUTPUT SOURCES...",
		Short: "Combine sources and write them to a csv file",
		Example: `  rdb2csv export -o all.csv logs/
  rdb2csv export -o - --format json 'logs/*.rdb'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, faults, err := a.handler.Load(cmd.Context(), args)
			if err != nil {
				return err
			}
			a.reportFaults(cmd, faults)

			return a.handler.Export(fmat, output)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", `output file ("-" for stdout)`)
	flags.StringVar(&fmat, "format", "csv", "output format (csv, json, table)")
	flags.Bool("allow-empty", false, "write a file even when no rows were loaded")
	_ = cmd.MarkFlagRequired("output")
	a.bind(flags, "export.allow_empty", "allow-empty")

	return cmd
}
