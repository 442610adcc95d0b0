// Package rootforms builds the root → forms map used for autocomplete from
// the root/forms dictionary and overlays the legacy word list on it.
package rootforms

import (
	"slices"

	"github.com/akenore24/sawasew-keyboard/internal/domain"
)

// BuildStats describes the new-dictionary stage.
type BuildStats struct {
	Entries     int
	EmptyRoots  int
	Overwritten int
}

// OverlayStats describes the old-dictionary stage.
type OverlayStats struct {
	Skipped  int
	Added    int
	Appended int
}

// Build maps each normalized root to the sorted, deduplicated set of its
// normalized forms plus the root itself. A later entry with the same root
// replaces the earlier one. Entries whose root normalizes to "" are skipped.
func Build(entries []domain.Entry, n domain.Normalizer) (*domain.RootFormsMap, BuildStats) {
	m := domain.NewRootFormsMap()
	stats := BuildStats{Entries: len(entries)}

	for _, e := range entries {
		root := n.Clean(e.Root)
		if root == "" {
			stats.EmptyRoots++
			continue
		}
		if m.Set(root, formsOf(root, e.Forms, n)) {
			stats.Overwritten++
		}
	}
	return m, stats
}

func formsOf(root string, raw []string, n domain.Normalizer) []string {
	forms := make([]string, 0, len(raw)+1)
	forms = append(forms, root)
	for _, f := range raw {
		if f = n.Clean(f); f != "" {
			forms = append(forms, f)
		}
	}
	slices.Sort(forms)
	return slices.Compact(forms)
}

// Overlay merges old words into m. An unknown word becomes its own root
// with a single form. A known word is appended to the forms of the root
// with the same spelling if missing there; appended forms are not re-sorted.
func Overlay(m *domain.RootFormsMap, oldWords []string, n domain.Normalizer) OverlayStats {
	var stats OverlayStats
	for _, w := range oldWords {
		w = n.Clean(w)
		if w == "" {
			stats.Skipped++
			continue
		}

		forms, ok := m.Forms(w)
		if !ok {
			m.Set(w, []string{w})
			stats.Added++
			continue
		}
		// Build always puts the root in its own forms, so this only fires for
		// maps assembled elsewhere.
		if !slices.Contains(forms, w) {
			m.Append(w, w)
			stats.Appended++
		}
	}
	return stats
}
