package api

import (
	"net/http"

	"github.com/olybars/olybars/internal/feed"
)

// FeedHandlers holds dependencies for feed HTTP handlers.
type FeedHandlers struct {
	svc *feed.Service
}

// NewFeedHandlers creates a new FeedHandlers instance.
func NewFeedHandlers(svc *feed.Service) *FeedHandlers {
	return &FeedHandlers{svc: svc}
}

// FeedResponse is the response body for GET /feed.
type FeedResponse struct {
	Events []feed.UnifiedEvent `json:"events"`
	Count  int                 `json:"count"`
}

// GetFeed handles GET /feed. Query parameters:
//
//	venue_id  keep only events at this venue
//	q         case-insensitive substring over title and venue name
//	group     all | music | activities
//
// Feed building never fails the request: a broken venue store yields an
// empty feed (logged server-side).
func (h *FeedHandlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errorWithCode(w, r, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	q := r.URL.Query()
	group := feed.Group(q.Get("group"))
	switch group {
	case "", feed.GroupAll, feed.GroupMusic, feed.GroupActivities:
	default:
		errorWithCode(w, r, http.StatusBadRequest, ErrCodeValidation,
			"group must be one of: all, music, activities")
		return
	}

	events := h.svc.Build(r.Context(), feed.Criteria{
		VenueID:    q.Get("venue_id"),
		SearchText: q.Get("q"),
		Group:      group,
	})

	writeJSON(w, r.Context(), http.StatusOK, FeedResponse{
		Events: events,
		Count:  len(events),
	})
}
