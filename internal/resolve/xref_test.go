package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokyomaps/companymaps/internal/model"
)

func candidates(names ...string) []model.Candidate {
	out := make([]model.Candidate, 0, len(names))
	for _, n := range names {
		out = append(out, model.Candidate{Name: n})
	}
	return out
}

func TestIntersect_ExactMatchAfterNormalization(t *testing.T) {
	a := candidates("Salesforce, Inc.")
	b := []model.Candidate{{Name: "Salesforce", URL: "https://example.com/salesforce"}}

	matches := Intersect(a, b)
	require.Len(t, matches, 1)
	// Display name comes from list A, the URL from list B.
	assert.Equal(t, "Salesforce, Inc.", matches[0].Name)
	assert.Equal(t, "https://example.com/salesforce", matches[0].URL)
	assert.Equal(t, model.SourceCrossRef, matches[0].Source)
}

func TestIntersect_SubstringMatch(t *testing.T) {
	a := candidates("JPMorgan Chase & Co.")
	b := candidates("JPMorgan Chase")

	matches := Intersect(a, b)
	require.Len(t, matches, 1)
	assert.Equal(t, "JPMorgan Chase & Co.", matches[0].Name)
}

func TestIntersect_NoMatchForUnrelatedNames(t *testing.T) {
	// "Alphabet" vs "Google": neither normalized key contains the other,
	// so no match — such pairs need a curated known-list entry.
	a := candidates("Alphabet Inc.")
	b := []model.Candidate{{Name: "Google", URL: "https://example.com/google"}}

	assert.Empty(t, Intersect(a, b))
}

func TestIntersect_EmptyKeyNeverMatches(t *testing.T) {
	a := candidates("")
	b := candidates("Anything")
	assert.Empty(t, Intersect(a, b))

	// A name that normalizes to empty must not match everything either.
	a = candidates("Inc.")
	b = candidates("Anything")
	assert.Empty(t, Intersect(a, b))

	a = candidates("Anything")
	b = candidates("  ")
	assert.Empty(t, Intersect(a, b))
}

func TestIntersect_EmptyLists(t *testing.T) {
	assert.Empty(t, Intersect(nil, candidates("Acme")))
	assert.Empty(t, Intersect(candidates("Acme"), nil))
	assert.Empty(t, Intersect(nil, nil))
}

func TestIntersect_ListAKeyConsumedOnce(t *testing.T) {
	// Both B entries would substring-match the same A entry; only the
	// first may take it.
	a := candidates("Acme Global Holdings")
	b := candidates("Acme Global", "Acme Global Holdings Group")

	matches := Intersect(a, b)
	require.Len(t, matches, 1)
	assert.Equal(t, "Acme Global Holdings", matches[0].Name)
}

func TestIntersect_NoDuplicateConsumption(t *testing.T) {
	a := candidates("Alpha Systems", "Beta Works", "Gamma Labs")
	b := candidates("Alpha", "Alpha Systems", "Beta", "Gamma Labs Inc.")

	matches := Intersect(a, b)
	used := make(map[string]int)
	for _, m := range matches {
		used[strings.ToLower(m.Name)]++
	}
	for name, n := range used {
		assert.Equal(t, 1, n, "list-A entry %q consumed more than once", name)
	}
}

func TestIntersect_ExactBeatsSubstring(t *testing.T) {
	// "Visa" exactly matches A's "Visa" even though it is also a
	// substring of "Visa International".
	a := candidates("Visa International", "Visa")
	b := candidates("Visa")

	matches := Intersect(a, b)
	require.Len(t, matches, 1)
	assert.Equal(t, "Visa", matches[0].Name)
}

func TestIntersect_FirstSubstringCandidateWins(t *testing.T) {
	a := candidates("Orion Data Systems", "Orion Data")
	b := candidates("Orion")

	matches := Intersect(a, b)
	require.Len(t, matches, 1)
	// Tie-break: first in list-A natural order.
	assert.Equal(t, "Orion Data Systems", matches[0].Name)
}

func TestIntersect_SymmetricInContent(t *testing.T) {
	a := candidates("JPMorgan Chase & Co.", "Adobe Inc.", "Unrelated Corp.")
	b := candidates("JPMorgan Chase", "Adobe")

	ab := Intersect(a, b)
	ba := Intersect(b, a)
	require.Len(t, ab, 2)
	require.Len(t, ba, 2)

	// The same normalized pairs match in both directions; only the chosen
	// display name differs.
	abKeys := make(map[string]struct{})
	for _, m := range ab {
		abKeys[Normalize(m.Name)] = struct{}{}
	}
	for _, m := range ba {
		key := Normalize(m.Name)
		found := false
		for k := range abKeys {
			if strings.Contains(k, key) || strings.Contains(key, k) {
				found = true
				break
			}
		}
		assert.True(t, found, "match %q has no counterpart", m.Name)
	}
}

func TestIntersect_LocatorCarriedFromListB(t *testing.T) {
	a := candidates("Adobe Inc.")
	b := []model.Candidate{{Name: "Adobe", Locator: "Tokyo"}}

	matches := Intersect(a, b)
	require.Len(t, matches, 1)
	assert.Equal(t, "Tokyo", matches[0].Locator)
}
