// Package export writes the output rows as CSV in the fixed column order
// the downstream mapping-import tool expects.
package export

import (
	"encoding/csv"
	"html"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tokyomaps/companymaps/internal/model"
)

// Header is the fixed output column order. Changing it breaks the
// mapping-import tool.
var Header = []string{"Name", "Address", "Category", "Rank", "MarketCapUSD", "Ticker", "Source", "URL"}

var cellWSRe = regexp.MustCompile(`\s+`)

// WriteFile writes rows to path, creating or truncating it. An empty row
// slice still produces a file with the header: the downstream tool
// tolerates an empty import, not a missing one.
func WriteFile(path string, rows []model.CompanyRow) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := Write(f, rows); err != nil {
		return err
	}
	zap.L().Info("wrote csv", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

// Write writes the header and rows to w.
func Write(w io.Writer, rows []model.CompanyRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, r := range rows {
		rank := ""
		if r.Rank > 0 {
			rank = strconv.Itoa(r.Rank)
		}
		record := []string{
			cleanCell(r.Name),
			cleanCell(r.AddressQuery),
			cleanCell(string(r.Category)),
			rank,
			cleanCell(r.MarketCapUSD),
			cleanCell(r.Ticker),
			cleanCell(string(r.Source)),
			cleanCell(r.URL),
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "export: write row %s", r.Name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush")
}

// cleanCell unescapes HTML entities scraping may have left behind and
// collapses whitespace, including non-breaking spaces.
func cleanCell(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(cellWSRe.ReplaceAllString(s, " "))
}
