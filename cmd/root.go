package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tokyomaps/companymaps/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "companymaps",
	Short: "Generate My Maps import CSVs of Tokyo company locations",
	Long:  "Fetches public company listings, cross-references the S&P 500 against a Tokyo job-board directory, and emits Japan Top-200 and Foreign Tokyo-office CSVs for Google My Maps import.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
