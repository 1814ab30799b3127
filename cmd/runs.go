package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/tokyomaps/companymaps/internal/runlog"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded generation runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		rl, err := runlog.Open(cfg.RunLog.Path)
		if err != nil {
			return eris.Wrap(err, "runs: open run log")
		}
		defer rl.Close() //nolint:errcheck

		entries, err := rl.List(ctx)
		if err != nil {
			return eris.Wrap(err, "runs: list")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tSTARTED\tJAPAN\tFOREIGN\tERROR")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				e.ID, e.Status, e.StartedAt.Format("2006-01-02 15:04:05"),
				e.JapanRows, e.ForeignRows, e.Error)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
