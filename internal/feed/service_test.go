package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/olybars/olybars/internal/venue"
)

// failingVenueRepo always errors, standing in for an unreachable database.
type failingVenueRepo struct{}

func (failingVenueRepo) Create(ctx context.Context, v *venue.Venue) error { return errors.New("down") }
func (failingVenueRepo) Update(ctx context.Context, v *venue.Venue) error { return errors.New("down") }
func (failingVenueRepo) GetByID(ctx context.Context, id string) (*venue.Venue, error) {
	return nil, errors.New("down")
}
func (failingVenueRepo) ListAll(ctx context.Context) ([]*venue.Venue, error) {
	return nil, errors.New("down")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServiceBuildDegradesToEmptyFeed(t *testing.T) {
	svc := NewService(failingVenueRepo{}, func() time.Time { return aFriday }, quietLogger(), nil)

	events := svc.Build(context.Background(), Criteria{})
	if events == nil {
		t.Fatal("expected an empty slice, not nil")
	}
	if len(events) != 0 {
		t.Fatalf("expected empty feed on store failure, got %d events", len(events))
	}
}

func TestServiceBuildMergesSourcesRanked(t *testing.T) {
	repo := venue.NewInMemoryVenueRepository()
	err := repo.Create(context.Background(), &venue.Venue{
		ID:   "well-80",
		Name: "Well 80",
		WeeklySchedule: map[string][]string{
			"friday": {"Trivia Night"},
		},
		SpecialEvents: []venue.SpecialEvent{
			{Date: "2026-01-02", Title: "Anniversary Party", IsFeatured: true},
			{Date: "2025-12-31", Title: "Expired Party"},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}

	svc := NewService(repo, func() time.Time { return aFriday }, quietLogger(), nil)
	events := svc.Build(context.Background(), Criteria{})

	if len(events) != 2 {
		t.Fatalf("expected 2 events (special + ritual), got %d", len(events))
	}
	if events[0].Title != "Anniversary Party" {
		t.Errorf("expected featured special first, got %q", events[0].Title)
	}
	if events[1].Title != "Trivia Night (Tonight)" {
		t.Errorf("expected tonight's ritual second, got %q", events[1].Title)
	}
}

func TestServiceBuildAppliesCriteria(t *testing.T) {
	repo := venue.NewInMemoryVenueRepository()
	seed := []*venue.Venue{
		{
			ID:             "well-80",
			Name:           "Well 80",
			WeeklySchedule: map[string][]string{"friday": {"Trivia Night"}},
		},
		{
			ID:             "rhythm-rye",
			Name:           "Rhythm & Rye",
			WeeklySchedule: map[string][]string{"friday": {"Live Music"}},
		},
	}
	for _, v := range seed {
		if err := repo.Create(context.Background(), v); err != nil {
			t.Fatalf("failed to seed venue: %v", err)
		}
	}

	svc := NewService(repo, func() time.Time { return aFriday }, quietLogger(), nil)

	music := svc.Build(context.Background(), Criteria{Group: GroupMusic})
	if len(music) != 1 || music[0].VenueID != "rhythm-rye" {
		t.Errorf("expected only the live music event, got %v", music)
	}

	byVenue := svc.Build(context.Background(), Criteria{VenueID: "well-80"})
	if len(byVenue) != 1 || byVenue[0].VenueID != "well-80" {
		t.Errorf("expected only well-80 events, got %v", byVenue)
	}
}

func TestServiceBuildStableAcrossTiedVenues(t *testing.T) {
	repo := venue.NewInMemoryVenueRepository()
	// Five venues with identical friday rituals: every event ties on
	// score, date, and time, so ordering falls through to the venue order.
	names := map[string]string{
		"v1": "Brotherhood",
		"v2": "Cryptatropa",
		"v3": "Hannah's",
		"v4": "McCoy's",
		"v5": "Well 80",
	}
	for id, name := range names {
		err := repo.Create(context.Background(), &venue.Venue{
			ID:             id,
			Name:           name,
			WeeklySchedule: map[string][]string{"friday": {"Trivia"}},
		})
		if err != nil {
			t.Fatalf("failed to seed venue: %v", err)
		}
	}

	svc := NewService(repo, func() time.Time { return aFriday }, quietLogger(), nil)

	first := svc.Build(context.Background(), Criteria{})
	if len(first) != 5 {
		t.Fatalf("expected 5 events, got %d", len(first))
	}
	for i := 0; i < 50; i++ {
		got := svc.Build(context.Background(), Criteria{})
		for j := range got {
			if got[j].VenueID != first[j].VenueID {
				t.Fatalf("build %d reordered tied events: position %d was %s, now %s",
					i, j, first[j].VenueID, got[j].VenueID)
			}
		}
	}
}

func TestServiceBuildDeterministic(t *testing.T) {
	repo := venue.NewInMemoryVenueRepository()
	err := repo.Create(context.Background(), &venue.Venue{
		ID:   "v1",
		Name: "Venue",
		WeeklySchedule: map[string][]string{
			"monday":    {"Trivia"},
			"wednesday": {"Karaoke"},
			"friday":    {"Jazz Jam"},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}

	svc := NewService(repo, func() time.Time { return aFriday }, quietLogger(), nil)

	first := svc.Build(context.Background(), Criteria{})
	for i := 0; i < 5; i++ {
		got := svc.Build(context.Background(), Criteria{})
		if len(got) != len(first) {
			t.Fatalf("build %d: length changed from %d to %d", i, len(first), len(got))
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("build %d: event %d differs: %+v vs %+v", i, j, got[j], first[j])
			}
		}
	}
}
