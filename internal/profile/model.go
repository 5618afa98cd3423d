// Package profile provides the private user profile model and its
// privacy-filtered public projection.
package profile

import (
	"errors"
	"time"
)

// Common errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmptyUserID     = errors.New("user id cannot be empty")
)

// Activity status constants for the public projection. Any non-empty private
// status collapses to StatusActive; precise venue/location status never
// leaves the private document.
const (
	StatusActive  = "Active on OlyBars"
	StatusOffline = "Offline"
)

// DefaultHandle is shown publicly when a member has not set a handle.
const DefaultHandle = "Anonymous"

// LeagueStats is the public points/rank pair. Rank is a display string
// ("Unranked" or "#<n>").
type LeagueStats struct {
	Points int    `json:"points"`
	Rank   string `json:"rank"`
}

// PrivateProfile is the full user profile document. Only the projector may
// derive public data from it; nothing else ever serializes it outward.
type PrivateProfile struct {
	UserID        string `json:"user_id"`
	Handle        string `json:"handle,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	CurrentStatus string `json:"current_status,omitempty"`
	HomeVenueID   string `json:"home_venue_id,omitempty"`

	// Stats is a cached copy of the ledger-derived totals, kept for cheap
	// display. Rank computation never reads it; the ledger is the source
	// of truth.
	Stats LeagueStats `json:"stats"`

	// IsHQ marks house accounts used for announcements.
	IsHQ bool `json:"is_hq,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicProfile is the privacy-filtered projection of a private profile.
// Invariant: it carries only the fields below — never email, phone, or the
// precise status. SyncedAt is server-set at projection time.
type PublicProfile struct {
	UserID         string      `json:"user_id"`
	Handle         string      `json:"handle"`
	AvatarURL      string      `json:"avatar_url,omitempty"`
	LeagueStats    LeagueStats `json:"league_stats"`
	ActivityStatus string      `json:"activity_status"`
	IsHQ           bool        `json:"is_hq"`
	SyncedAt       time.Time   `json:"synced_at"`
}
