package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tokyomaps/companymaps/internal/fetcher"
	"github.com/tokyomaps/companymaps/internal/lists"
	"github.com/tokyomaps/companymaps/internal/pipeline"
	"github.com/tokyomaps/companymaps/internal/runlog"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate both output CSVs",
	Long: `Runs the full pipeline: fetches the Japan market-cap ranking, the S&P 500
member list, and the job-board global-offices directory, cross-references
them, and writes both My Maps import files. A failed source degrades to an
empty or under-quota list; both files are always written.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		p, cleanup, err := buildPipeline(true)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := p.Run(ctx); err != nil {
			return eris.Wrap(err, "generate")
		}

		zap.L().Info("generation complete")
		return nil
	},
}

// buildPipeline wires the fetcher, curated lists, and (optionally) the
// run log into a Pipeline. The returned cleanup closes the run log.
func buildPipeline(withRunLog bool) (*pipeline.Pipeline, func(), error) {
	l, err := lists.Load(cfg.Lists.Path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "load curated lists")
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:         cfg.Fetch.UserAgent,
		Timeout:           cfg.Fetch.Timeout(),
		MaxRetries:        cfg.Fetch.MaxRetries,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		DebugDir:          cfg.Fetch.DebugDir,
	})

	var rl *runlog.Log
	cleanup := func() {}
	if withRunLog {
		rl, err = runlog.Open(cfg.RunLog.Path)
		if err != nil {
			// The run log is an audit convenience, never a reason to skip
			// generating the maps.
			zap.L().Warn("run log disabled", zap.Error(err))
			rl = nil
		} else {
			cleanup = func() { _ = rl.Close() }
		}
	}

	return pipeline.New(cfg, f, l, rl), cleanup, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
