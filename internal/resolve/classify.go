package resolve

import (
	"net/url"
	"strings"
)

// japaneseEntityMarkers are corporate-entity tokens that only appear in the
// names of Japan-domiciled companies.
var japaneseEntityMarkers = []string{
	"株式会社", "有限会社", "合同会社", "ホールディングス", "銀行", "証券",
}

// Classifier decides whether a company is Japan-domiciled and must be
// excluded from the foreign-companies output. It is a conservative filter:
// false negatives are accepted, false positives against the curated
// blocklist are not.
type Classifier struct {
	blocklist map[string]struct{}
}

// NewClassifier builds a Classifier from the curated blocklist of known
// Japan-domiciled company names. Matching against the blocklist is
// case-insensitive and exact.
func NewClassifier(blocklist []string) *Classifier {
	set := make(map[string]struct{}, len(blocklist))
	for _, name := range blocklist {
		set[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	return &Classifier{blocklist: set}
}

// IsJapaneseOrigin reports whether the company is Japan-domiciled.
// sourceURL may be empty. Deterministic, no external calls.
func (c *Classifier) IsJapaneseOrigin(name, sourceURL string) bool {
	if _, ok := c.blocklist[strings.ToLower(strings.TrimSpace(name))]; ok {
		return true
	}
	for _, marker := range japaneseEntityMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	if sourceURL != "" && hasJapaneseCommercialDomain(sourceURL) {
		return true
	}
	return false
}

// hasJapaneseCommercialDomain reports whether the URL's host is under the
// Japanese commercial top-level domain.
func hasJapaneseCommercialDomain(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return strings.HasSuffix(host, ".co.jp")
}
