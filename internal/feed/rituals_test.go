package feed

import (
	"reflect"
	"testing"
	"time"

	"github.com/olybars/olybars/internal/venue"
)

// aFriday is 2026-01-02, a Friday, at 18:00 UTC.
var aFriday = time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC)

func TestExpandRitualsTonight(t *testing.T) {
	venues := []*venue.Venue{
		{
			ID:   "well-80",
			Name: "Well 80",
			WeeklySchedule: map[string][]string{
				"friday": {"Trivia Night"},
			},
		},
	}

	events := ExpandRituals(venues, aFriday)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	ev := events[0]
	if ev.Date != "2026-01-02" {
		t.Errorf("expected date 2026-01-02, got %s", ev.Date)
	}
	if ev.Title != "Trivia Night (Tonight)" {
		t.Errorf("expected tonight suffix, got %q", ev.Title)
	}
	if ev.Category != CategoryPlay {
		t.Errorf("expected category play, got %s", ev.Category)
	}
	if ev.Score != ScoreRitual {
		t.Errorf("expected score %d, got %d", ScoreRitual, ev.Score)
	}
	if ev.Time != DefaultRitualTime {
		t.Errorf("expected default time %s, got %s", DefaultRitualTime, ev.Time)
	}
	if !ev.IsRecurring {
		t.Error("expected IsRecurring to be true")
	}
}

func TestExpandRitualsNextOccurrence(t *testing.T) {
	tests := []struct {
		name     string
		day      string
		wantDate string
	}{
		{"same day", "friday", "2026-01-02"},
		{"next day", "saturday", "2026-01-03"},
		{"wraps past the weekend", "monday", "2026-01-05"},
		{"day before wraps a full week minus one", "thursday", "2026-01-08"},
		{"mixed case key", "SUNDAY", "2026-01-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venues := []*venue.Venue{
				{
					ID:             "v1",
					Name:           "Venue",
					WeeklySchedule: map[string][]string{tt.day: {"Karaoke"}},
				},
			}

			events := ExpandRituals(venues, aFriday)
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Date != tt.wantDate {
				t.Errorf("expected date %s, got %s", tt.wantDate, events[0].Date)
			}
		})
	}
}

func TestExpandRitualsTonightSuffixOnlyToday(t *testing.T) {
	venues := []*venue.Venue{
		{
			ID:             "v1",
			Name:           "Venue",
			WeeklySchedule: map[string][]string{"saturday": {"Trivia"}},
		},
	}

	events := ExpandRituals(venues, aFriday)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Title != "Trivia" {
		t.Errorf("expected plain title for a future day, got %q", events[0].Title)
	}
}

func TestExpandRitualsSkipsUnknownWeekday(t *testing.T) {
	venues := []*venue.Venue{
		{
			ID:   "v1",
			Name: "Venue",
			WeeklySchedule: map[string][]string{
				"funday": {"Mystery Event"},
				"monday": {"Trivia"},
			},
		},
	}

	events := ExpandRituals(venues, aFriday)
	if len(events) != 1 {
		t.Fatalf("expected only the valid weekday to expand, got %d events", len(events))
	}
	if events[0].Title != "Trivia" {
		t.Errorf("expected Trivia, got %q", events[0].Title)
	}
}

func TestExpandRitualsMultipleLabelsPerDay(t *testing.T) {
	venues := []*venue.Venue{
		{
			ID:   "v1",
			Name: "Venue",
			WeeklySchedule: map[string][]string{
				"friday": {"Trivia Night", "Karaoke"},
			},
		},
	}

	events := ExpandRituals(venues, aFriday)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Labels keep their schedule order.
	if events[0].Title != "Trivia Night (Tonight)" || events[1].Title != "Karaoke (Tonight)" {
		t.Errorf("unexpected label order: %q, %q", events[0].Title, events[1].Title)
	}
}

func TestExpandRitualsDeterministic(t *testing.T) {
	venues := []*venue.Venue{
		{
			ID:   "v1",
			Name: "Venue",
			WeeklySchedule: map[string][]string{
				"wednesday": {"Open Mic"},
				"monday":    {"Trivia"},
				"friday":    {"Karaoke"},
				"sunday":    {"Bingo"},
			},
		},
	}

	first := ExpandRituals(venues, aFriday)
	for i := 0; i < 10; i++ {
		if got := ExpandRituals(venues, aFriday); !reflect.DeepEqual(first, got) {
			t.Fatal("repeated expansion of the same snapshot produced different output")
		}
	}

	// Canonical weekday order, not map order.
	wantOrder := []string{"Bingo", "Trivia", "Open Mic", "Karaoke (Tonight)"}
	for i, want := range wantOrder {
		if first[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, first[i].Title)
		}
	}
}

func TestExpandRitualsStableIDs(t *testing.T) {
	venues := []*venue.Venue{
		{
			ID:             "well-80",
			Name:           "Well 80",
			WeeklySchedule: map[string][]string{"friday": {"Trivia Night"}},
		},
	}

	events := ExpandRituals(venues, aFriday)
	want := "ritual-well-80-5-trivia-night"
	if events[0].ID != want {
		t.Errorf("expected id %q, got %q", want, events[0].ID)
	}

	// Same schedule a week later expands to the same ID.
	later := ExpandRituals(venues, aFriday.AddDate(0, 0, 7))
	if later[0].ID != want {
		t.Errorf("expected stable id across weeks, got %q", later[0].ID)
	}
}
