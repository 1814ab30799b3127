package main

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tokyomaps/companymaps/internal/export"
)

var japanCmd = &cobra.Command{
	Use:   "japan",
	Short: "Generate only the Japan Top-200 CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		p, cleanup, err := buildPipeline(false)
		if err != nil {
			return err
		}
		defer cleanup()

		rows := p.BuildJapanTop(ctx)
		path := filepath.Join(cfg.Output.Dir, cfg.Output.JapanFile)
		if err := export.WriteFile(path, rows); err != nil {
			return eris.Wrap(err, "japan")
		}

		zap.L().Info("japan list written", zap.Int("rows", len(rows)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(japanCmd)
}
