// Package assemble builds the immutable output rows from matched,
// classified, or backfilled candidates.
package assemble

import (
	"strings"

	"github.com/tokyomaps/companymaps/internal/model"
	"github.com/tokyomaps/companymaps/internal/resolve"
)

const (
	headquartersMarker = "本社"
	tokyoOfficeMarker  = "東京オフィス"
	countryQualifier   = "日本"
)

// JapanRow builds a Japan Top-200 row. The locator targets the company's
// head office.
func JapanRow(c model.Candidate) model.CompanyRow {
	return model.CompanyRow{
		Name:         c.Name,
		Rank:         c.Rank,
		MarketCapUSD: c.MarketCap,
		Ticker:       c.Ticker,
		Category:     model.CategoryJapanTop200,
		AddressQuery: c.Name + " " + headquartersMarker,
		Source:       model.SourceMarketCap,
	}
}

// ForeignRow builds a row for a cross-referenced foreign company. The
// locator query is synthesized from the suffix-stripped display name; a
// country qualifier is appended unless the upstream locator hint already
// anchored the company to Tokyo.
func ForeignRow(m model.Match) model.CompanyRow {
	return model.CompanyRow{
		Name:         m.Name,
		Category:     model.CategoryForeignTokyoOffice,
		AddressQuery: TokyoOfficeQuery(m.Name, m.Locator),
		Source:       m.Source,
		URL:          m.URL,
	}
}

// FallbackRow builds a row for a company backfilled from the priority
// list. No upstream locator hint exists for these.
func FallbackRow(name string) model.CompanyRow {
	return model.CompanyRow{
		Name:         name,
		Category:     model.CategoryForeignTokyoOffice,
		AddressQuery: TokyoOfficeQuery(name, ""),
		Source:       model.SourceFallback,
	}
}

// KnownRow builds a row from the curated known-address list. The verified
// address is used verbatim, never synthesized.
func KnownRow(k model.KnownCompany) model.CompanyRow {
	return model.CompanyRow{
		Name:         k.Name,
		Category:     model.CategoryForeignTokyoOffice,
		AddressQuery: k.Address,
		Source:       model.SourceKnownList,
		URL:          k.URL,
	}
}

// TokyoOfficeQuery synthesizes the geocoding query for a foreign company's
// Tokyo office. Corporate suffixes are stripped so "Inc."/"Corp." tokens
// don't confuse geocoding.
func TokyoOfficeQuery(name, locatorHint string) string {
	query := resolve.StripEntitySuffix(name) + " " + tokyoOfficeMarker
	if !mentionsTokyo(locatorHint) {
		query += " " + countryQualifier
	}
	return query
}

func mentionsTokyo(locator string) bool {
	if locator == "" {
		return false
	}
	return strings.Contains(strings.ToLower(locator), "tokyo") ||
		strings.Contains(locator, "東京")
}
