package source

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var (
	wsRunRe        = regexp.MustCompile(`\s+`)
	trailingSepRe  = regexp.MustCompile(`[\s\-–—:]+$`)
	newPrefixRe    = regexp.MustCompile(`(?i)^NEW!\s*`)
	nbspReplacer   = strings.NewReplacer(" ", " ", "　", " ")
)

// CleanText sanitizes scraped text: canonical width folding (full-width
// Latin to ASCII, half-width katakana to standard), NBSP and ideographic
// space replacement, whitespace collapse, and removal of trailing
// separator runs left behind by card layouts.
func CleanText(s string) string {
	s = width.Fold.String(s)
	s = nbspReplacer.Replace(s)
	s = wsRunRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.TrimSpace(trailingSepRe.ReplaceAllString(s, ""))
}
