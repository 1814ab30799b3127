package resolve

import (
	"strings"

	"github.com/tokyomaps/companymaps/internal/model"
)

// keyedList is one input list indexed by normalized key, preserving the
// list's natural order. Duplicate keys within one list keep the first
// occurrence.
type keyedList struct {
	keys    []string
	entries map[string]model.Candidate
}

func buildKeyedList(candidates []model.Candidate) keyedList {
	kl := keyedList{entries: make(map[string]model.Candidate, len(candidates))}
	for _, c := range candidates {
		key := Normalize(c.Name)
		// An empty key is a substring of everything; admitting it would
		// match every entry of the other list.
		if key == "" {
			continue
		}
		if _, ok := kl.entries[key]; ok {
			continue
		}
		kl.keys = append(kl.keys, key)
		kl.entries[key] = c
	}
	return kl
}

// Intersect cross-references two candidate lists on their normalized keys.
// Pass 1 per list-B key is an exact match against a not-yet-consumed
// list-A key; pass 2 scans list-A keys in natural order and matches if
// either key is a substring of the other. Each list-A key is consumed at
// most once, first match wins.
//
// The matched company keeps list A's display name and takes its locator
// and URL from list B. Substring matching is the only fuzziness: renamed
// parents ("Alphabet" vs its "Google" brand) do not match and need a
// curated known-list entry instead.
func Intersect(listA, listB []model.Candidate) []model.Match {
	a := buildKeyedList(listA)
	b := buildKeyedList(listB)

	consumed := make(map[string]struct{}, len(a.keys))
	matches := make([]model.Match, 0, len(b.keys))

	record := func(aKey string, bc model.Candidate) {
		consumed[aKey] = struct{}{}
		matches = append(matches, model.Match{
			Name:    a.entries[aKey].Name,
			Locator: bc.Locator,
			URL:     bc.URL,
			Source:  model.SourceCrossRef,
		})
	}

	for _, bKey := range b.keys {
		bc := b.entries[bKey]

		if _, ok := a.entries[bKey]; ok {
			if _, used := consumed[bKey]; !used {
				record(bKey, bc)
				continue
			}
		}

		for _, aKey := range a.keys {
			if _, used := consumed[aKey]; used {
				continue
			}
			if strings.Contains(aKey, bKey) || strings.Contains(bKey, aKey) {
				record(aKey, bc)
				break
			}
		}
	}

	return matches
}
