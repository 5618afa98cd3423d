package league

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/olybars/olybars/internal/tracing"
)

// SnapshotSize is the number of leaderboard entries kept in the snapshot.
const SnapshotSize = 50

// Aggregator rebuilds the cached leaderboard snapshot from the ledger-derived
// season-point totals. It is run as a singleton periodic job; if two runs
// ever race, the full-replace write makes the outcome last-writer-wins,
// which is fine for a cache.
type Aggregator struct {
	users     UserStore
	snapshots SnapshotStore
	clock     func() time.Time
	logger    *slog.Logger
}

// NewAggregator creates a snapshot aggregator. clock may be nil (defaults to
// time.Now).
func NewAggregator(users UserStore, snapshots SnapshotStore, clock func() time.Time, logger *slog.Logger) *Aggregator {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		users:     users,
		snapshots: snapshots,
		clock:     clock,
		logger:    logger,
	}
}

// Rebuild reads the top members and member count and overwrites the snapshot
// document wholesale with a fresh timestamp. On any failure the prior
// snapshot stays in place: stale-but-available beats empty.
func (a *Aggregator) Rebuild(ctx context.Context) error {
	ctx, span := tracing.StartSnapshotSpan(ctx)
	defer span.End()

	entries, err := a.users.TopByPoints(ctx, SnapshotSize)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("read top members: %w", err)
	}

	total, err := a.users.CountMembers(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("count members: %w", err)
	}

	snapshot := &Snapshot{
		Entries:      entries,
		TotalMembers: total,
		UpdatedAt:    a.clock(),
	}
	if err := a.snapshots.Write(ctx, snapshot); err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("write snapshot: %w", err)
	}

	span.SetAttributes(
		attribute.Int("leaderboard.entries", len(entries)),
		attribute.Int("leaderboard.total_members", total),
	)
	a.logger.InfoContext(ctx, "leaderboard snapshot rebuilt",
		"entries", len(entries),
		"total_members", total,
	)
	return nil
}
