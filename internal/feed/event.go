package feed

import "strings"

// Category classifies a unified event for group filtering.
type Category string

// Event categories.
const (
	CategoryLive    Category = "live"
	CategoryPlay    Category = "play"
	CategoryEvent   Category = "event"
	CategoryKaraoke Category = "karaoke"
)

// Scores for the three ranking tiers. Featured specials always outrank
// ordinary specials, which always outrank ritual instances.
const (
	ScoreFeaturedSpecial = 100
	ScoreSpecial         = 10
	ScoreRitual          = 5
)

// DefaultRitualTime is the start time assigned to ritual instances; the
// weekly schedule carries no per-activity times.
const DefaultRitualTime = "19:00"

// UnifiedEvent is the common shape produced by both the schedule expander
// and the special event normalizer. Date is an ISO calendar date and Time a
// 24h "HH:mm" string; both sort lexicographically. Events are constructed
// fresh on every feed build and never persisted.
type UnifiedEvent struct {
	ID          string   `json:"id"`
	VenueID     string   `json:"venue_id"`
	VenueName   string   `json:"venue_name"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	IsFeatured  bool     `json:"is_featured"`
	Score       int      `json:"score"`
	IsRecurring bool     `json:"is_recurring"`
}

// ClassifyActivity maps a free-text activity label to a category. This is a
// best-effort substring heuristic, not an exhaustive taxonomy; anything
// unrecognized falls back to CategoryEvent.
func ClassifyActivity(label string) Category {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "trivia"), strings.Contains(l, "bingo"), strings.Contains(l, "quiz"):
		return CategoryPlay
	case strings.Contains(l, "karaoke"):
		return CategoryKaraoke
	case strings.Contains(l, "music"), strings.Contains(l, "jazz"):
		return CategoryLive
	default:
		return CategoryEvent
	}
}

// ClassifyEventType maps a special event's source type to a category.
func ClassifyEventType(eventType string) Category {
	if strings.EqualFold(eventType, "music") {
		return CategoryLive
	}
	return CategoryEvent
}
