package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tokyomaps/companymaps/internal/fetcher"
	"github.com/tokyomaps/companymaps/internal/model"
)

var digitsRe = regexp.MustCompile(`\d+`)

// FetchJapanTop200 downloads the market-cap ranking CSV and returns the
// top maxRank Japan-domiciled companies ordered by rank. URLs are tried in
// order; HTML responses and bot-mitigation pages are skipped as if the
// fetch had failed.
func FetchJapanTop200(ctx context.Context, client Client, urls []string, maxRank int) ([]model.Candidate, error) {
	for _, u := range urls {
		body, err := client.GetString(ctx, u)
		if err != nil {
			zap.L().Warn("market-cap csv fetch failed", zap.String("url", u), zap.Error(err))
			continue
		}
		if fetcher.LooksLikeHTML(body) || fetcher.LooksLikeBlockPage(body) {
			zap.L().Warn("market-cap csv fetch returned a page, not csv", zap.String("url", u))
			continue
		}
		rows, err := ParseMarketCapCSV(body)
		if err != nil {
			zap.L().Warn("market-cap csv parse failed", zap.String("url", u), zap.Error(err))
			continue
		}
		if len(rows) == 0 {
			continue
		}
		return topByRank(rows, maxRank), nil
	}
	return nil, eris.New("cmcap: no market-cap source yielded a usable csv")
}

// ParseMarketCapCSV parses the CompaniesMarketCap CSV export. Header names
// vary between exports, so columns are resolved by normalized header name.
// Rows without a numeric rank or a name are dropped; duplicate ranks keep
// the first occurrence.
func ParseMarketCapCSV(csvText string) ([]model.Candidate, error) {
	csvText = strings.TrimPrefix(csvText, "\ufeff")

	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "cmcap: read csv")
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	idx := headerIndex(header)
	rankCol, ok := pick(idx, "rank")
	if !ok {
		// Not the export format we know; treat as empty rather than failing.
		return nil, nil
	}
	nameCol, _ := pick(idx, "name")
	symCol, hasSym := pick(idx, "symbol", "ticker")
	mcapCol, hasMcap := pick(idx, "marketcap", "marketcapitalization")

	seen := make(map[int]struct{})
	var out []model.Candidate
	for _, rec := range records[1:] {
		rank, ok := numericRank(field(rec, rankCol))
		if !ok {
			continue
		}
		name := CleanText(field(rec, nameCol))
		if name == "" {
			continue
		}
		if _, dup := seen[rank]; dup {
			continue
		}
		seen[rank] = struct{}{}

		c := model.Candidate{
			Name:   name,
			Rank:   rank,
			Source: model.SourceMarketCap,
		}
		if hasSym {
			c.Ticker = strings.TrimSpace(field(rec, symCol))
		}
		if hasMcap {
			c.MarketCap = FormatMarketCap(field(rec, mcapCol))
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

// FormatMarketCap renders a raw market-cap number as "$X.XX T/B/M".
// Already-formatted dollar strings pass through; unparseable input yields
// an empty string.
func FormatMarketCap(raw string) string {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "$") {
		return s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2f T", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2f B", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2f M", v/1e6)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// headerIndex maps normalized header names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "")
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

func pick(idx map[string]int, names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := idx[n]; ok {
			return i, true
		}
	}
	return -1, false
}

func field(rec []string, col int) string {
	if col < 0 || col >= len(rec) {
		return ""
	}
	return rec[col]
}

func numericRank(raw string) (int, bool) {
	m := digitsRe.FindString(raw)
	if m == "" {
		return 0, false
	}
	rank, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return rank, true
}

// topByRank keeps ranks 1..maxRank. Input is already rank-ordered and
// rank-unique.
func topByRank(rows []model.Candidate, maxRank int) []model.Candidate {
	out := make([]model.Candidate, 0, maxRank)
	for _, r := range rows {
		if r.Rank >= 1 && r.Rank <= maxRank {
			out = append(out, r)
		}
	}
	return out
}
