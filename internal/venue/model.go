// Package venue provides models and repository for managing venues,
// their recurring weekly schedules, and one-off special events.
package venue

import (
	"errors"
	"time"
)

// Common errors for venue operations.
var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrEmptyVenueID  = errors.New("venue id cannot be empty")
)

// Category classifies the kind of venue.
type Category string

// Venue categories.
const (
	CategoryBar     Category = "bar"
	CategoryBrewery Category = "brewery"
	CategoryClub    Category = "club"
	CategoryLounge  Category = "lounge"
	CategoryPub     Category = "pub"
	CategoryRooftop Category = "rooftop"
)

// SpecialEvent is a one-off, explicitly dated event attached to a venue.
// Date is an ISO calendar date ("2006-01-02") and StartTime a 24h "HH:mm"
// string; both are compared lexicographically throughout the feed engine.
type SpecialEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	Description string `json:"description,omitempty"`
	EventType   string `json:"event_type,omitempty"`
	IsFeatured  bool   `json:"is_featured"`
}

// Venue represents a place in the directory. The weekly schedule maps a
// weekday name (e.g. "friday", matched case-insensitively) to the free-text
// activity labels recurring on that day.
type Venue struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Category       Category            `json:"category"`
	Address        string              `json:"address,omitempty"`
	WeeklySchedule map[string][]string `json:"weekly_schedule,omitempty"`
	SpecialEvents  []SpecialEvent      `json:"special_events,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
