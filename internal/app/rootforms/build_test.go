package rootforms

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akenore24/sawasew-keyboard/internal/domain"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	n := domain.DefaultNormalizer()
	tests := []struct {
		name      string
		entries   []domain.Entry
		wantKeys  []string
		wantForms map[string][]string
		wantStats BuildStats
	}{
		{
			name:      "root added to its forms",
			entries:   []domain.Entry{{Root: "ፍቅር", Forms: []string{"ፍቅረኛ"}}},
			wantKeys:  []string{"ፍቅር"},
			wantForms: map[string][]string{"ፍቅር": {"ፍቅረኛ", "ፍቅር"}},
			wantStats: BuildStats{Entries: 1},
		},
		{
			name:      "forms absent",
			entries:   []domain.Entry{{Root: "ቤት፡"}},
			wantKeys:  []string{"ቤት"},
			wantForms: map[string][]string{"ቤት": {"ቤት"}},
			wantStats: BuildStats{Entries: 1},
		},
		{
			name:      "forms cleaned sorted and deduplicated",
			entries:   []domain.Entry{{Root: "ሰላም", Forms: []string{"ሰላምታ።", "ሰላም፡", "", "፣", "ሰላምታ"}}},
			wantKeys:  []string{"ሰላም"},
			wantForms: map[string][]string{"ሰላም": {"ሰላም", "ሰላምታ"}},
			wantStats: BuildStats{Entries: 1},
		},
		{
			name: "last entry wins and keeps position",
			entries: []domain.Entry{
				{Root: "ሰላም", Forms: []string{"ሰላምታ"}},
				{Root: "ውሃ"},
				{Root: "ሰላም፡", Forms: []string{"ሰላማዊ"}},
			},
			wantKeys:  []string{"ሰላም", "ውሃ"},
			wantForms: map[string][]string{"ሰላም": {"ሰላማዊ", "ሰላም"}, "ውሃ": {"ውሃ"}},
			wantStats: BuildStats{Entries: 3, Overwritten: 1},
		},
		{
			name:      "empty root skipped",
			entries:   []domain.Entry{{Root: "፡", Forms: []string{"ፍቅር"}}, {Root: ""}},
			wantForms: map[string][]string{},
			wantStats: BuildStats{Entries: 2, EmptyRoots: 2},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, stats := Build(tt.entries, n)
			assert.Equal(t, tt.wantStats, stats)
			assert.Equal(t, tt.wantKeys, m.Keys())
			for root, want := range tt.wantForms {
				got, ok := m.Forms(root)
				require.True(t, ok, "missing root %q", root)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestBuild_Invariants(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{
		{Root: "ፍቅር", Forms: []string{"ፍቅረኛ", "ፍቅር።", "ፍቅረኛ"}},
		{Root: " ሰላም ", Forms: []string{"", "ሰላምታ", "፤"}},
		{Root: "ቤት", Forms: []string{"ቤቶች", "ቤቱ", "ቤት"}},
	}
	m, _ := Build(entries, domain.DefaultNormalizer())

	for _, root := range m.Keys() {
		forms, _ := m.Forms(root)
		assert.NotEmpty(t, root)
		assert.Contains(t, forms, root)
		assert.True(t, slices.IsSorted(forms), "forms of %q not sorted: %v", root, forms)
		assert.Equal(t, len(forms), len(slices.Compact(slices.Clone(forms))), "forms of %q not unique", root)
		assert.NotContains(t, forms, "")
	}
}

func TestOverlay(t *testing.T) {
	t.Parallel()

	n := domain.DefaultNormalizer()
	m, _ := Build([]domain.Entry{{Root: "ፍቅር", Forms: []string{"ፍቅረኛ"}}}, n)

	stats := Overlay(m, []string{"ሰላም", "ፍቅር፡", "፡", "ሰላም።", "ውሃ"}, n)

	assert.Equal(t, OverlayStats{Skipped: 1, Added: 2}, stats)
	assert.Equal(t, []string{"ፍቅር", "ሰላም", "ውሃ"}, m.Keys())

	forms, _ := m.Forms("ፍቅር")
	assert.Equal(t, []string{"ፍቅረኛ", "ፍቅር"}, forms)
	forms, _ = m.Forms("ሰላም")
	assert.Equal(t, []string{"ሰላም"}, forms)
}

func TestOverlay_AppendsWithoutResort(t *testing.T) {
	t.Parallel()

	m := domain.NewRootFormsMap()
	m.Set("ሰላም", []string{"ሰላምታ", "ሰላማዊ"})

	stats := Overlay(m, []string{"ሰላም", "ሰላም፡"}, domain.DefaultNormalizer())

	assert.Equal(t, OverlayStats{Appended: 1}, stats)
	forms, _ := m.Forms("ሰላም")
	assert.Equal(t, []string{"ሰላምታ", "ሰላማዊ", "ሰላም"}, forms)
}

func TestBuildOverlay_OldWordBecomesRoot(t *testing.T) {
	t.Parallel()

	n := domain.DefaultNormalizer()
	m, _ := Build([]domain.Entry{{Root: "ፍቅር", Forms: []string{"ፍቅረኛ"}}}, n)
	Overlay(m, []string{"ሰላም"}, n)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	// ረ (U+1228) sorts before ር (U+122D).
	assert.Equal(t, `{"ፍቅር":["ፍቅረኛ","ፍቅር"],"ሰላም":["ሰላም"]}`, string(data))
}
