package source

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tokyomaps/companymaps/internal/model"
)

// FetchJapanDev scrapes the job-board's global-offices company directory.
// A fetch failure degrades to an empty list; the caller treats that as an
// under-producing source, not a fatal error.
func FetchJapanDev(ctx context.Context, client Client, url string) []model.Candidate {
	log := zap.L().With(zap.String("source", "japandev"))

	body, err := client.GetString(ctx, url)
	if err != nil {
		log.Warn("fetch failed", zap.Error(err))
		return nil
	}

	companies, err := ParseJapanDev(body, baseOf(url))
	if err != nil {
		log.Warn("parse failed", zap.Error(err))
		return nil
	}

	log.Info("fetched directory", zap.Int("companies", len(companies)))
	return companies
}

// ParseJapanDev extracts company cards: each card title is an h2 whose
// anchor links to a /companies/ profile. A leading "NEW!" badge is part of
// the anchor text and is stripped.
func ParseJapanDev(html, baseURL string) ([]model.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "japandev: parse html")
	}

	seen := make(map[string]struct{})
	var out []model.Candidate
	doc.Find("h2 a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || !strings.HasPrefix(href, "/companies/") {
			return
		}
		name := CleanText(newPrefixRe.ReplaceAllString(link.Text(), ""))
		if len([]rune(name)) <= 1 {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, model.Candidate{
			Name: name,
			URL:  baseURL + href,
			// The directory tag itself asserts a Tokyo office.
			Locator: "Tokyo",
		})
	})
	return out, nil
}

// baseOf reduces a page URL to scheme://host for absolutizing hrefs.
func baseOf(rawURL string) string {
	i := strings.Index(rawURL, "://")
	if i < 0 {
		return ""
	}
	rest := rawURL[i+3:]
	if j := strings.Index(rest, "/"); j >= 0 {
		rest = rest[:j]
	}
	return rawURL[:i+3] + rest
}
