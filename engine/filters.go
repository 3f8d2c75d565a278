package engine

import (
	"strings"
)

// ============================================================================
// FILTERS: Dimension, Measure and Span Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL constraints per record in one loop.
// Returns a SubView (index list into parent): zero data copy.
// ============================================================================

// ApplyFilters returns a view of records matching all filters.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}
	return newSubView(view, MatchingIndices(view, filters))
}

// MatchingIndices returns the positions in view of records passing filters.
func MatchingIndices(view RecordView, filters Filters) []int {
	// Pre-build lowercase lookup sets for each dimension filter
	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			sets[dim] = toLowerSet(allowed)
		}
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if matches(view, i, sets, filters) {
			indices = append(indices, i)
		}
	}
	return indices
}

func matches(view RecordView, i int, sets map[string]map[string]bool, filters Filters) bool {
	for dim, set := range sets {
		if !set[strings.ToLower(view.Dimension(i, dim))] {
			return false
		}
	}
	for measure, r := range filters.Measures {
		if !r.Contains(view.Measure(i, measure)) {
			return false
		}
	}
	for dim, span := range filters.Spans {
		if !span.Contains(view.Dimension(i, dim)) {
			return false
		}
	}
	return true
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
