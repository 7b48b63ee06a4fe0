package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newViewCmd(a *app) *cobra.Command {
	var from, to int

	cmd := &cobra.Command{
		Use:   "view SOURCES...",
		Short: "Combine sources and print them as a table",
		Example: `  rdb2csv view logs/
  rdb2csv view --from=-21 a.rdb b.rdb`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, faults, err := a.handler.Load(cmd.Context(), args)
			if err != nil {
				return err
			}
			a.reportFaults(cmd, faults)

			total, err := a.handler.Preview(from, to)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%d rows, %d columns from %d sources\n",
				total, ds.Width(), len(ds.Sources()))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&from, "from", 0, "first row to show (negative counts from the end)")
	flags.IntVar(&to, "to", -1, "row after the last one to show (-1 for the end)")

	return cmd
}
