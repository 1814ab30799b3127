// Package pipeline runs the sequential fetch → match → classify →
// backfill → assemble → export flow for one generation run.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tokyomaps/companymaps/internal/assemble"
	"github.com/tokyomaps/companymaps/internal/config"
	"github.com/tokyomaps/companymaps/internal/export"
	"github.com/tokyomaps/companymaps/internal/lists"
	"github.com/tokyomaps/companymaps/internal/model"
	"github.com/tokyomaps/companymaps/internal/resolve"
	"github.com/tokyomaps/companymaps/internal/runlog"
	"github.com/tokyomaps/companymaps/internal/source"
)

// Pipeline orchestrates one generation run. All stages are sequential;
// every collection lives only for the duration of the run.
type Pipeline struct {
	cfg        *config.Config
	client     source.Client
	lists      *lists.Lists
	runLog     *runlog.Log // nil disables run recording
	classifier *resolve.Classifier
}

// New assembles a Pipeline. runLog may be nil.
func New(cfg *config.Config, client source.Client, l *lists.Lists, runLog *runlog.Log) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		client:     client,
		lists:      l,
		runLog:     runLog,
		classifier: resolve.NewClassifier(l.JapaneseBlocklist),
	}
}

// Run generates both output files. A failed source degrades to an empty
// or under-quota list; both files are always written. Only output I/O
// failures are fatal.
func (p *Pipeline) Run(ctx context.Context) error {
	log := zap.L().With(zap.String("component", "pipeline"))

	runID := p.startRun(ctx)

	japanRows := p.BuildJapanTop(ctx)
	log.Info("japan list built", zap.Int("rows", len(japanRows)))
	if err := export.WriteFile(p.outputPath(p.cfg.Output.JapanFile), japanRows); err != nil {
		p.failRun(ctx, runID, err)
		return err
	}

	exclude := make(map[string]struct{}, len(japanRows))
	for _, r := range japanRows {
		exclude[strings.ToLower(r.Name)] = struct{}{}
	}

	foreignRows := p.BuildForeign(ctx, exclude)
	log.Info("foreign list built", zap.Int("rows", len(foreignRows)))
	if err := export.WriteFile(p.outputPath(p.cfg.Output.ForeignFile), foreignRows); err != nil {
		p.failRun(ctx, runID, err)
		return err
	}

	p.completeRun(ctx, runID, len(japanRows), len(foreignRows))
	return nil
}

// BuildJapanTop fetches and assembles the Japan Top-N list. A fetch
// failure is logged and yields an empty list.
func (p *Pipeline) BuildJapanTop(ctx context.Context) []model.CompanyRow {
	candidates, err := source.FetchJapanTop200(ctx, p.client, p.cfg.Sources.MarketCapURLs, p.cfg.Quota.JapanTop)
	if err != nil {
		zap.L().Error("japan top fetch failed, emitting empty list", zap.Error(err))
		return nil
	}

	rows := make([]model.CompanyRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, assemble.JapanRow(c))
	}
	return rows
}

// BuildForeign builds the foreign-companies list: S&P 500 × directory
// intersection, Japanese-origin and exclusion filtering, known-address
// overrides, then quota backfill. exclude holds case-folded names that
// must not appear (the Japan list's names).
func (p *Pipeline) BuildForeign(ctx context.Context, exclude map[string]struct{}) []model.CompanyRow {
	members := source.FetchSP500(ctx, p.client, p.cfg.Sources.SP500URL, p.lists.SP500Fallback)
	directory := source.FetchJapanDev(ctx, p.client, p.cfg.Sources.JapanDevURL)

	matches := resolve.Intersect(members, directory)
	zap.L().Info("cross-reference complete",
		zap.Int("members", len(members)),
		zap.Int("directory", len(directory)),
		zap.Int("matches", len(matches)),
	)

	seen := make(map[string]struct{})
	var rows []model.CompanyRow
	for _, m := range matches {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		low := strings.ToLower(name)
		if _, dup := seen[low]; dup {
			continue
		}
		if _, ok := exclude[low]; ok {
			continue
		}
		if p.classifier.IsJapaneseOrigin(name, m.URL) {
			continue
		}
		seen[low] = struct{}{}
		rows = append(rows, assemble.ForeignRow(m))
	}

	rows = p.applyKnownList(rows, seen, exclude)

	rows = resolve.Backfill(rows, p.cfg.Quota.ForeignTarget, p.lists.PriorityFallback, exclude, p.classifier, assemble.FallbackRow)
	if len(rows) > p.cfg.Quota.ForeignTarget {
		rows = rows[:p.cfg.Quota.ForeignTarget]
	}
	return rows
}

// applyKnownList merges the curated verified-address list. A known
// company already matched keeps its row position but gets the verified
// address, URL, and provenance; one not yet present is appended — the
// curated list is the high-confidence override for pairs the substring
// matcher cannot relate.
func (p *Pipeline) applyKnownList(rows []model.CompanyRow, seen, exclude map[string]struct{}) []model.CompanyRow {
	for _, k := range p.lists.KnownTokyo {
		low := strings.ToLower(k.Name)
		if _, ok := exclude[low]; ok {
			continue
		}
		if _, present := seen[low]; present {
			for i := range rows {
				if strings.EqualFold(rows[i].Name, k.Name) {
					rows[i] = assemble.KnownRow(k)
					break
				}
			}
			continue
		}
		seen[low] = struct{}{}
		rows = append(rows, assemble.KnownRow(k))
	}
	return rows
}

func (p *Pipeline) outputPath(file string) string {
	return filepath.Join(p.cfg.Output.Dir, file)
}

func (p *Pipeline) startRun(ctx context.Context) string {
	if p.runLog == nil {
		return ""
	}
	id, err := p.runLog.Start(ctx)
	if err != nil {
		zap.L().Warn("run log unavailable", zap.Error(err))
		return ""
	}
	return id
}

func (p *Pipeline) completeRun(ctx context.Context, id string, japanRows, foreignRows int) {
	if p.runLog == nil || id == "" {
		return
	}
	if err := p.runLog.Complete(ctx, id, japanRows, foreignRows); err != nil {
		zap.L().Warn("run log update failed", zap.Error(err))
	}
}

func (p *Pipeline) failRun(ctx context.Context, id string, cause error) {
	if p.runLog == nil || id == "" {
		return
	}
	if err := p.runLog.Fail(ctx, id, eris.ToString(cause, false)); err != nil {
		zap.L().Warn("run log update failed", zap.Error(err))
	}
}
