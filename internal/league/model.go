// Package league implements the gamified points layer: the append-only
// activity ledger, season-point rank computation, and the periodic
// leaderboard snapshot.
package league

import (
	"errors"
	"time"
)

// GuestUserID identifies an unauthenticated caller. Guests can browse the
// feed but never earn points.
const GuestUserID = "guest"

// Common errors for league operations.
var (
	// ErrAuthRequired is returned when a guest attempts a point-bearing
	// action. Callers must surface it (prompt to sign in), never swallow it.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidPoints is returned when an activity carries negative points.
	ErrInvalidPoints = errors.New("points must be a non-negative integer")

	// ErrUnknownActivity is returned for an unrecognized activity type.
	ErrUnknownActivity = errors.New("unknown activity type")

	// ErrNoSnapshot is returned when no leaderboard snapshot has been
	// written yet.
	ErrNoSnapshot = errors.New("leaderboard snapshot not found")
)

// ActivityType identifies a point-bearing user action.
type ActivityType string

// Activity types.
const (
	ActivityCheckIn     ActivityType = "check_in"
	ActivityVibe        ActivityType = "vibe"
	ActivityPhoto       ActivityType = "photo"
	ActivityPlay        ActivityType = "play"
	ActivitySocialShare ActivityType = "social_share"
)

// DefaultPoints maps each activity type to its default point award. Callers
// may override per entry; the ledger only validates non-negativity.
var DefaultPoints = map[ActivityType]int{
	ActivityCheckIn:     10,
	ActivityVibe:        2,
	ActivityPhoto:       5,
	ActivityPlay:        5,
	ActivitySocialShare: 5,
}

// VerificationMethod records how a check-in was verified.
type VerificationMethod string

// Verification methods.
const (
	VerificationGPS VerificationMethod = "gps"
	VerificationQR  VerificationMethod = "qr"
)

// ActivityLogEntry is one immutable, append-only ledger record. The sum of
// Points across a user's entries defines their season-point total; entries
// are never edited or deleted.
type ActivityLogEntry struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"user_id"`
	Type               ActivityType       `json:"type"`
	VenueID            string             `json:"venue_id,omitempty"`
	Points             int                `json:"points"`
	Timestamp          time.Time          `json:"timestamp"`
	VerificationMethod VerificationMethod `json:"verification_method,omitempty"`
	Metadata           map[string]string  `json:"metadata,omitempty"`
}

// LeaderboardEntry is one row of the leaderboard snapshot: the public slice
// of a member plus their season points and computed rank.
type LeaderboardEntry struct {
	UserID    string `json:"user_id"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Points    int    `json:"points"`
	Rank      int    `json:"rank"`
}

// Snapshot is the single cached leaderboard document: the top-N entries by
// season points, the total member count, and a server-set rebuild timestamp.
// It is rebuilt wholesale on a fixed interval and never partially patched.
type Snapshot struct {
	Entries      []LeaderboardEntry `json:"entries"`
	TotalMembers int                `json:"total_members"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
