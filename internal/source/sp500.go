package source

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tokyomaps/companymaps/internal/model"
)

// FetchSP500 scrapes the S&P 500 member table. When the fetch or parse
// fails, the static fallback member list is returned instead so the
// cross-reference stage still has something to intersect against.
func FetchSP500(ctx context.Context, client Client, url string, fallback []string) []model.Candidate {
	log := zap.L().With(zap.String("source", "sp500"))

	body, err := client.GetString(ctx, url)
	if err != nil {
		log.Warn("fetch failed, using fallback member list", zap.Error(err))
		return sp500Fallback(fallback)
	}

	members, err := ParseSP500(body)
	if err != nil || len(members) == 0 {
		log.Warn("parse yielded no members, using fallback member list", zap.Error(err))
		return sp500Fallback(fallback)
	}

	log.Info("fetched member list", zap.Int("members", len(members)))
	return members
}

// ParseSP500 extracts member names from the constituents table: the
// second cell of each row carries the company name as an anchor.
func ParseSP500(html string) ([]model.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "sp500: parse html")
	}

	seen := make(map[string]struct{})
	var out []model.Candidate
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		name := CleanText(cells.Eq(1).Find("a").First().Text())
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, model.Candidate{Name: name})
	})
	return out, nil
}

func sp500Fallback(names []string) []model.Candidate {
	out := make([]model.Candidate, 0, len(names))
	for _, n := range names {
		out = append(out, model.Candidate{Name: n})
	}
	return out
}
