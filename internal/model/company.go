// Package model defines the value objects passed between pipeline stages.
package model

// Category classifies a company row in the output.
type Category string

const (
	CategoryJapanTop200        Category = "JapanTop200"
	CategoryForeignTokyoOffice Category = "ForeignTokyoOffice"
)

// Source identifies which upstream produced a candidate or row.
type Source string

const (
	// SourceMarketCap marks rows from the CompaniesMarketCap ranking CSV.
	SourceMarketCap Source = "CompaniesMarketCap"
	// SourceCrossRef marks rows produced by intersecting the S&P 500 member
	// list with the job-board global-offices directory.
	SourceCrossRef Source = "S&P500 × JapanDev"
	// SourceFallback marks rows backfilled from the priority member list.
	SourceFallback Source = "S&P500 (Top)"
	// SourceKnownList marks rows from the curated verified-address list.
	SourceKnownList Source = "KnownList"
)

// Candidate is a raw company name plus optional metadata from one data
// source, not yet classified or deduplicated. Candidates are consumed once
// by the matcher and discarded after row assembly.
type Candidate struct {
	Name      string
	Rank      int // 0 = unranked
	Ticker    string
	MarketCap string // formatted, e.g. "$1.23 T"
	Locator   string // free-text address or city hint
	URL       string
	Source    Source
}

// Match is a cross-referenced company: the display name from the member
// list, the locator and URL from the directory list.
type Match struct {
	Name    string
	Locator string
	URL     string
	Source  Source
}

// CompanyRow is one output record, immutable once assembled. Within one
// output list the name is unique case-insensitively.
type CompanyRow struct {
	Name         string
	Rank         int // 0 = unranked, rendered as empty
	MarketCapUSD string
	Ticker       string
	Category     Category
	AddressQuery string
	Source       Source
	URL          string
}

// KnownCompany is one entry of the curated list of foreign companies with
// verified Tokyo addresses, used as a high-confidence override source.
type KnownCompany struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	URL     string `yaml:"url"`
}
