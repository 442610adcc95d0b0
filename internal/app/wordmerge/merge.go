// Package wordmerge merges the legacy word list and the root/forms
// dictionary into one flat, sorted, deduplicated word list.
package wordmerge

import (
	"slices"

	"github.com/akenore24/sawasew-keyboard/internal/domain"
)

// CollectNewWords gathers every normalized, non-empty root and form of the
// new dictionary entries, deduplicated in first-seen order.
func CollectNewWords(entries []domain.Entry, n domain.Normalizer) []string {
	seen := make(map[string]struct{}, len(entries))
	words := make([]string, 0, len(entries))

	add := func(w string) {
		w = n.Clean(w)
		if w == "" {
			return
		}
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	for _, e := range entries {
		add(e.Root)
		for _, f := range e.Forms {
			add(f)
		}
	}
	return words
}

// Merge normalizes both word lists, drops empty results, and returns their
// union sorted by code point.
func Merge(oldWords, newWords []string, n domain.Normalizer) []string {
	set := make(map[string]struct{}, len(oldWords)+len(newWords))
	for _, words := range [][]string{oldWords, newWords} {
		for _, w := range words {
			if w = n.Clean(w); w != "" {
				set[w] = struct{}{}
			}
		}
	}

	merged := make([]string, 0, len(set))
	for w := range set {
		merged = append(merged, w)
	}
	// Byte order of UTF-8 strings equals code point order.
	slices.Sort(merged)
	return merged
}
