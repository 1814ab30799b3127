package resolve

import (
	"strings"

	"github.com/tokyomaps/companymaps/internal/model"
)

// Backfill tops up rows to target from the priority list when organic
// matching under-produces. Priority names already present in rows
// (case-insensitive), listed in exclude, or classified as Japanese-origin
// are skipped. makeRow builds the appended row for a priority name.
//
// Deterministic: identical inputs yield identical output order. The result
// never exceeds target; running out of priority names is not an error, the
// shorter list is the accepted terminal state.
func Backfill(rows []model.CompanyRow, target int, priority []string, exclude map[string]struct{}, classifier *Classifier, makeRow func(name string) model.CompanyRow) []model.CompanyRow {
	if len(rows) >= target {
		return rows[:target]
	}

	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		seen[strings.ToLower(r.Name)] = struct{}{}
	}

	out := rows
	for _, name := range priority {
		if len(out) >= target {
			break
		}
		low := strings.ToLower(name)
		if _, ok := seen[low]; ok {
			continue
		}
		if _, ok := exclude[low]; ok {
			continue
		}
		if classifier.IsJapaneseOrigin(name, "") {
			continue
		}
		seen[low] = struct{}{}
		out = append(out, makeRow(name))
	}

	return out
}
