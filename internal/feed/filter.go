package feed

import "strings"

// Group selects a category slice of the feed.
type Group string

// Filter groups.
const (
	GroupAll        Group = "all"
	GroupMusic      Group = "music"
	GroupActivities Group = "activities"
)

// Criteria describes a feed filter. Zero values mean "no constraint";
// all set predicates AND together.
type Criteria struct {
	// VenueID keeps only events at the given venue.
	VenueID string

	// SearchText keeps only events whose title or venue name contains the
	// text, case-insensitively.
	SearchText string

	// Group keeps only events in a category group: "music" keeps live
	// events, "activities" keeps play and karaoke. "all" (or empty) keeps
	// everything.
	Group Group
}

// Filter applies the criteria to an already-ranked feed. The input is never
// mutated or reordered; the ranking from MergeAndRank is preserved.
func Filter(events []UnifiedEvent, c Criteria) []UnifiedEvent {
	search := strings.ToLower(c.SearchText)

	out := make([]UnifiedEvent, 0, len(events))
	for _, ev := range events {
		if c.VenueID != "" && ev.VenueID != c.VenueID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(ev.Title), search) &&
			!strings.Contains(strings.ToLower(ev.VenueName), search) {
			continue
		}
		if !matchesGroup(ev.Category, c.Group) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func matchesGroup(cat Category, g Group) bool {
	switch g {
	case GroupMusic:
		return cat == CategoryLive
	case GroupActivities:
		return cat == CategoryPlay || cat == CategoryKaraoke
	default:
		return true
	}
}
