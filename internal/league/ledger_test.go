package league

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 21, 0, 0, 0, time.UTC)
}

func TestLogActivityRejectsGuest(t *testing.T) {
	store := NewInMemoryLeagueStore()
	ledger := NewLedger(store, fixedClock, quietLogger(), nil)

	for _, userID := range []string{GuestUserID, ""} {
		entry, err := ledger.LogActivity(context.Background(), userID, ActivityRequest{Type: ActivityCheckIn})
		if !errors.Is(err, ErrAuthRequired) {
			t.Errorf("userID %q: expected ErrAuthRequired, got %v", userID, err)
		}
		if entry != nil {
			t.Errorf("userID %q: expected nil entry, got %+v", userID, entry)
		}
	}

	// The guest rejection happens before the store is touched.
	if got := len(store.Entries()); got != 0 {
		t.Errorf("expected zero store writes for guest attempts, got %d", got)
	}
}

func TestLogActivityDefaultPoints(t *testing.T) {
	tests := []struct {
		activityType ActivityType
		wantPoints   int
	}{
		{ActivityCheckIn, 10},
		{ActivityVibe, 2},
		{ActivityPhoto, 5},
		{ActivityPlay, 5},
		{ActivitySocialShare, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.activityType), func(t *testing.T) {
			store := NewInMemoryLeagueStore()
			ledger := NewLedger(store, fixedClock, quietLogger(), nil)

			entry, err := ledger.LogActivity(context.Background(), "user-1", ActivityRequest{Type: tt.activityType})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.Points != tt.wantPoints {
				t.Errorf("expected %d points, got %d", tt.wantPoints, entry.Points)
			}
		})
	}
}

func TestLogActivityPointOverride(t *testing.T) {
	store := NewInMemoryLeagueStore()
	ledger := NewLedger(store, fixedClock, quietLogger(), nil)

	override := 25
	entry, err := ledger.LogActivity(context.Background(), "user-1", ActivityRequest{
		Type:   ActivityCheckIn,
		Points: &override,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Points != 25 {
		t.Errorf("expected override of 25 points, got %d", entry.Points)
	}

	zero := 0
	entry, err = ledger.LogActivity(context.Background(), "user-1", ActivityRequest{
		Type:   ActivityVibe,
		Points: &zero,
	})
	if err != nil {
		t.Fatalf("zero points must be allowed: %v", err)
	}
	if entry.Points != 0 {
		t.Errorf("expected 0 points, got %d", entry.Points)
	}
}

func TestLogActivityRejectsNegativePoints(t *testing.T) {
	store := NewInMemoryLeagueStore()
	ledger := NewLedger(store, fixedClock, quietLogger(), nil)

	negative := -5
	_, err := ledger.LogActivity(context.Background(), "user-1", ActivityRequest{
		Type:   ActivityCheckIn,
		Points: &negative,
	})
	if !errors.Is(err, ErrInvalidPoints) {
		t.Errorf("expected ErrInvalidPoints, got %v", err)
	}
	if got := len(store.Entries()); got != 0 {
		t.Errorf("expected zero store writes, got %d", got)
	}
}

func TestLogActivityRejectsUnknownTypeWithoutPoints(t *testing.T) {
	store := NewInMemoryLeagueStore()
	ledger := NewLedger(store, fixedClock, quietLogger(), nil)

	_, err := ledger.LogActivity(context.Background(), "user-1", ActivityRequest{Type: "teleport"})
	if !errors.Is(err, ErrUnknownActivity) {
		t.Errorf("expected ErrUnknownActivity, got %v", err)
	}
}

func TestLogActivityUnlistedTypeWithExplicitPoints(t *testing.T) {
	store := NewInMemoryLeagueStore()
	ledger := NewLedger(store, fixedClock, quietLogger(), nil)

	// A one-off event type outside the default table is fine as long as
	// the caller says what it is worth.
	points := 5
	entry, err := ledger.LogActivity(context.Background(), "user-1", ActivityRequest{
		Type:   "photo_contest",
		Points: &points,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Points != 5 {
		t.Errorf("expected 5 points, got %d", entry.Points)
	}
	if entry.Type != "photo_contest" {
		t.Errorf("expected type kept, got %q", entry.Type)
	}
	if got := len(store.Entries()); got != 1 {
		t.Errorf("expected 1 stored entry, got %d", got)
	}
}

func TestLogActivityPopulatesEntry(t *testing.T) {
	store := NewInMemoryLeagueStore()
	ledger := NewLedger(store, fixedClock, quietLogger(), nil)

	entry, err := ledger.LogActivity(context.Background(), "user-1", ActivityRequest{
		Type:               ActivityCheckIn,
		VenueID:            "well-80",
		VerificationMethod: VerificationGPS,
		Metadata:           map[string]string{"lat": "47.04"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.ID == "" {
		t.Error("expected a generated entry ID")
	}
	if entry.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", entry.UserID)
	}
	if entry.VenueID != "well-80" {
		t.Errorf("expected venue well-80, got %s", entry.VenueID)
	}
	if entry.VerificationMethod != VerificationGPS {
		t.Errorf("expected gps verification, got %s", entry.VerificationMethod)
	}
	if !entry.Timestamp.Equal(fixedClock()) {
		t.Errorf("expected clock timestamp, got %v", entry.Timestamp)
	}
}

type failingActivityStore struct{}

func (failingActivityStore) Append(ctx context.Context, entry *ActivityLogEntry) error {
	return errors.New("disk full")
}

func TestLogActivityPropagatesStoreError(t *testing.T) {
	ledger := NewLedger(failingActivityStore{}, fixedClock, quietLogger(), nil)

	_, err := ledger.LogActivity(context.Background(), "user-1", ActivityRequest{Type: ActivityCheckIn})
	if err == nil {
		t.Fatal("expected store error to propagate, got nil")
	}
}

func TestLedgerSumIsSourceOfTruth(t *testing.T) {
	store := NewInMemoryLeagueStore()
	ledger := NewLedger(store, fixedClock, quietLogger(), nil)

	awards := []ActivityRequest{
		{Type: ActivityCheckIn},    // 10
		{Type: ActivityVibe},       // 2
		{Type: ActivityPhoto},      // 5
		{Type: ActivityCheckIn},    // 10
	}
	for _, req := range awards {
		if _, err := ledger.LogActivity(context.Background(), "user-1", req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries := store.Entries()
	if len(entries) != len(awards) {
		t.Fatalf("expected %d entries, got %d", len(awards), len(entries))
	}

	sum := 0
	for _, e := range entries {
		sum += e.Points
	}
	if sum != 27 {
		t.Errorf("expected ledger sum 27, got %d", sum)
	}

	rows, err := store.TopByPoints(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Points != 27 {
		t.Errorf("expected derived total 27, got %+v", rows)
	}
}
