package model

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// SortField defines what to sort by.
type SortField int

const (
	SortByName SortField = iota
	SortBySize
	SortByMtime
)

// SortOrder defines ascending or descending.
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// SortConfig holds sort preferences.
type SortConfig struct {
	Field SortField
	Order SortOrder
}

// DefaultSort returns the default sort config (name ascending).
func DefaultSort() SortConfig {
	return SortConfig{Field: SortByName, Order: SortAsc}
}

// SortEntries sorts entries in place according to config. Ties fall back
// to the natural path order so the result is deterministic.
func SortEntries(entries []Entry, cfg SortConfig) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		// For descending order, swap a and b so the same less-than
		// comparisons produce the reverse result. This preserves
		// strict weak ordering (equal items return false, not true).
		if cfg.Order == SortDesc {
			a, b = b, a
		}

		switch cfg.Field {
		case SortBySize:
			if a.Size != b.Size {
				return a.Size < b.Size
			}
		case SortByMtime:
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.Before(b.ModTime)
			}
		}
		return natural.Less(strings.ToLower(a.Path), strings.ToLower(b.Path))
	})
}
