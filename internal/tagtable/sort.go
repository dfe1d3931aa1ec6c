package tagtable

import (
	"sort"

	"github.com/rcliao/exifnaming/internal/model"
)

// SortKeys returns the date columns t is ordered by, most significant first:
// capture date (+ sub-second) when present, else modification date.
func SortKeys(t *model.Table) []string {
	if t.Has(string(model.KeyDateTimeOriginal)) {
		keys := []string{string(model.KeyDateTimeOriginal)}
		if t.Has(string(model.KeySubSecTimeOriginal)) {
			keys = append(keys, string(model.KeySubSecTimeOriginal))
		}
		return keys
	}
	if t.Has(string(model.KeyModifyDate)) {
		return []string{string(model.KeyModifyDate)}
	}
	return nil
}

// Sort orders the rows of t by date and returns t.
func Sort(t *model.Table) *model.Table {
	SortBy(t, SortKeys(t))
	return t
}

// SortBy stable-sorts the rows of t by the textual values of keys, most
// significant first. Unknown keys are ignored.
func SortBy(t *model.Table, keys []string) {
	perm := make([]int, t.Len())
	for i := range perm {
		perm[i] = i
	}
	// Least significant key first, so the last stable pass dominates.
	for k := len(keys) - 1; k >= 0; k-- {
		col := t.Column(keys[k])
		if col == nil {
			continue
		}
		sort.SliceStable(perm, func(a, b int) bool {
			return col[perm[a]] < col[perm[b]]
		})
	}
	t.Permute(perm)
}
