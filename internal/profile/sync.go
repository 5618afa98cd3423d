package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Syncer keeps the public collection in lockstep with private profile
// writes. It is triggered synchronously on every private create, update, and
// delete. Both operations are idempotent: replaying the same trigger twice
// produces the same public document (modulo SyncedAt).
type Syncer struct {
	public PublicProfileStore
	clock  func() time.Time
	logger *slog.Logger
}

// NewSyncer creates a profile syncer. clock may be nil (defaults to time.Now).
func NewSyncer(public PublicProfileStore, clock func() time.Time, logger *slog.Logger) *Syncer {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		public: public,
		clock:  clock,
		logger: logger,
	}
}

// OnWrite projects the private profile and upserts the public document.
func (s *Syncer) OnWrite(ctx context.Context, p *PrivateProfile) error {
	projected := Project(p, s.clock())
	if err := s.public.Upsert(ctx, &projected); err != nil {
		return fmt.Errorf("upsert public profile %s: %w", p.UserID, err)
	}
	s.logger.DebugContext(ctx, "public profile synced", "user_id", p.UserID)
	return nil
}

// OnDelete removes the corresponding public document.
func (s *Syncer) OnDelete(ctx context.Context, userID string) error {
	if err := s.public.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete public profile %s: %w", userID, err)
	}
	s.logger.DebugContext(ctx, "public profile deleted", "user_id", userID)
	return nil
}
