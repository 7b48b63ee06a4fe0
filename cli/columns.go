package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newColumnsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "columns SOURCES...",
		Short: "Print the declared columns of every source",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			described, err := a.handler.Describe(cmd.Context(), args)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range described {
				fmt.Fprintf(w, "%s\n", d.Source)
				if d.Err != nil {
					fmt.Fprintf(w, "\terror: %s\n", d.Err)
					continue
				}
				for _, c := range d.Columns {
					fmt.Fprintf(w, "\t%s\t%s\n", c.Name, c.Type)
				}
			}

			return w.Flush()
		},
	}
}
