package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olybars/olybars/internal/feed"
	"github.com/olybars/olybars/internal/venue"
)

var handlerNow = time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC) // a Friday

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFeedService(t *testing.T) *feed.Service {
	t.Helper()

	repo := venue.NewInMemoryVenueRepository()
	err := repo.Create(context.Background(), &venue.Venue{
		ID:   "well-80",
		Name: "Well 80",
		WeeklySchedule: map[string][]string{
			"friday": {"Trivia Night"},
		},
		SpecialEvents: []venue.SpecialEvent{
			{Date: "2026-01-02", Title: "Anniversary Party", IsFeatured: true},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}
	return feed.NewService(repo, func() time.Time { return handlerNow }, testLogger(), nil)
}

func TestGetFeed(t *testing.T) {
	h := NewFeedHandlers(newTestFeedService(t))

	rec := httptest.NewRecorder()
	h.GetFeed(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp FeedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 2 || len(resp.Events) != 2 {
		t.Fatalf("expected 2 events, got count=%d len=%d", resp.Count, len(resp.Events))
	}
	if resp.Events[0].Title != "Anniversary Party" {
		t.Errorf("expected featured special first, got %q", resp.Events[0].Title)
	}
}

func TestGetFeedFilters(t *testing.T) {
	h := NewFeedHandlers(newTestFeedService(t))

	rec := httptest.NewRecorder()
	h.GetFeed(rec, httptest.NewRequest(http.MethodGet, "/feed?group=activities", nil))

	var resp FeedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 1 || resp.Events[0].Category != feed.CategoryPlay {
		t.Errorf("expected only the trivia ritual, got %+v", resp.Events)
	}
}

func TestGetFeedInvalidGroup(t *testing.T) {
	h := NewFeedHandlers(newTestFeedService(t))

	rec := httptest.NewRecorder()
	h.GetFeed(rec, httptest.NewRequest(http.MethodGet, "/feed?group=sports", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if resp.Error.Code != ErrCodeValidation {
		t.Errorf("expected %s, got %s", ErrCodeValidation, resp.Error.Code)
	}
}

func TestGetFeedMethodNotAllowed(t *testing.T) {
	h := NewFeedHandlers(newTestFeedService(t))

	rec := httptest.NewRecorder()
	h.GetFeed(rec, httptest.NewRequest(http.MethodPost, "/feed", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
