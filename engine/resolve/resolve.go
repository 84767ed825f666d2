// Package resolve matches free-text fragments against named entities.
// Players type partial, reordered, or single-word references ("take
// key", "key old"); scoring prefers precise full matches over loose
// single-word guesses, and shorter names on ties.
package resolve

import (
	"strings"

	"github.com/nathoo/cavecore/engine/state"
	"github.com/nathoo/cavecore/types"
)

// Item resolves a query against the items named by ids, returning the
// single best match or ok=false.
//
// An exact case-insensitive name match wins immediately. Otherwise
// every candidate is scored: a full-phrase substring match scores
// 2×len(query); all query words individually appearing in the name
// scores the concatenated word length; a single query word equal to a
// whole word of the name scores half the word length. Ties go to the
// shorter display name, assumed more specific.
func Item(query string, ids []string, defs *state.Defs) (types.Item, bool) {
	target := strings.ToLower(strings.TrimSpace(query))
	if target == "" {
		return types.Item{}, false
	}

	candidates := make([]types.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := defs.Items[id]; ok {
			candidates = append(candidates, item)
		}
	}

	for _, item := range candidates {
		if strings.ToLower(item.Name) == target {
			return item, true
		}
	}

	words := strings.Fields(target)

	var best types.Item
	bestScore := 0
	for _, item := range candidates {
		name := strings.ToLower(item.Name)
		score := 0

		// Full phrase substring: "old key" in "very old key".
		if strings.Contains(name, target) {
			score = len(target) * 2
		}

		// Every query word occurs somewhere in the name: "key old"
		// matches "old key".
		if allWordsIn(words, name) {
			if n := joinedLen(words); n > score {
				score = n
			}
		}

		// A bare word must match a whole word of the name, not just a
		// substring, to claim the weakest tier: "key" for "Old Key".
		if len(words) == 1 {
			for _, w := range strings.Fields(name) {
				if w == words[0] {
					if n := len(words[0]) / 2; n > score {
						score = n
					}
					break
				}
			}
		}

		switch {
		case score > bestScore:
			best = item
			bestScore = score
		case score == bestScore && bestScore > 0 && len(item.Name) < len(best.Name):
			best = item
		}
	}

	if bestScore == 0 {
		return types.Item{}, false
	}
	return best, true
}

// Feature resolves a query against a location's features: exact name
// match first, else the first feature whose name contains the query.
// Deliberately less permissive than item resolution — feature sets are
// small and rarely ambiguous.
func Feature(query string, features []types.Feature) (types.Feature, bool) {
	target := strings.ToLower(strings.TrimSpace(query))
	if target == "" {
		return types.Feature{}, false
	}

	for _, f := range features {
		if strings.ToLower(f.Name) == target {
			return f, true
		}
	}
	for _, f := range features {
		if strings.Contains(strings.ToLower(f.Name), target) {
			return f, true
		}
	}
	return types.Feature{}, false
}

func allWordsIn(words []string, name string) bool {
	for _, w := range words {
		if !strings.Contains(name, w) {
			return false
		}
	}
	return true
}

func joinedLen(words []string) int {
	n := 0
	for _, w := range words {
		n += len(w)
	}
	return n
}
