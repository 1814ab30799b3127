package main

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tokyomaps/companymaps/internal/export"
)

var foreignCmd = &cobra.Command{
	Use:   "foreign",
	Short: "Generate only the Foreign Tokyo-office CSV",
	Long: `Cross-references the S&P 500 member list with the job-board directory and
writes the foreign-companies file. Without the Japan list in the same run
there is no market-cap exclusion set, so the two commands can disagree
where a company appears on both lists; use generate for the paired output.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		p, cleanup, err := buildPipeline(false)
		if err != nil {
			return err
		}
		defer cleanup()

		rows := p.BuildForeign(ctx, nil)
		path := filepath.Join(cfg.Output.Dir, cfg.Output.ForeignFile)
		if err := export.WriteFile(path, rows); err != nil {
			return eris.Wrap(err, "foreign")
		}

		zap.L().Info("foreign list written", zap.Int("rows", len(rows)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(foreignCmd)
}
