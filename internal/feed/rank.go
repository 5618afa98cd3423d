package feed

import "sort"

// MergeAndRank concatenates event sequences into one timeline ordered by the
// composite key (score desc, date asc, time asc). The sort is stable: events
// with equal keys keep their relative input order, which makes repeated
// builds over the same snapshot byte-identical and keeps UI ordering steady
// across re-renders.
//
// The inputs are never mutated; the result is a fresh slice.
func MergeAndRank(sources ...[]UnifiedEvent) []UnifiedEvent {
	var total int
	for _, src := range sources {
		total += len(src)
	}

	merged := make([]UnifiedEvent, 0, total)
	for _, src := range sources {
		merged = append(merged, src...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Time < b.Time
	})
	return merged
}
