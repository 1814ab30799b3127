// Package resolve normalizes company names and cross-references the
// differently formatted company lists the sources produce.
package resolve

import (
	"regexp"
	"strings"
)

// entitySuffixes lists corporate-entity suffixes stripped during
// normalization. At most one trailing suffix is removed per call; longer
// forms come first so "Co., Ltd." wins over "Ltd.".
var entitySuffixes = []string{
	" co., ltd.", " co., ltd", " co. ltd.", " co. ltd",
	" corporation", ", inc.", ", inc",
	" inc.", " inc",
	" corp.", " corp",
	" ltd.", " ltd",
	" llc", " plc",
	" (the)",
}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// Normalize standardizes a company name into its comparison key:
//  1. Lowercase
//  2. Strip one trailing corporate-entity suffix (Inc., Corp., Ltd., ...)
//  3. Collapse whitespace runs and trim
//
// Pure and total; empty input yields empty output. Idempotent.
func Normalize(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return ""
	}

	for _, suffix := range entitySuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}

	name = multiSpaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(strings.TrimRight(name, " ,"))
}

// StripEntitySuffix removes one trailing corporate-entity suffix while
// preserving the original casing. Used when synthesizing geocoding queries
// so "Inc."/"Corp." tokens don't pollute the query string.
func StripEntitySuffix(raw string) string {
	name := strings.TrimSpace(raw)
	lower := strings.ToLower(name)
	for _, suffix := range entitySuffixes {
		if strings.HasSuffix(lower, suffix) {
			name = strings.TrimSpace(name[:len(name)-len(suffix)])
			name = strings.TrimRight(name, " ,")
			break
		}
	}
	return name
}
