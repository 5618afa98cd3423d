package league

import "context"

// ActivityStore persists ledger entries. Append is the only operation this
// core needs: totals are computed by the store's own aggregation queries, and
// nothing ever reads an entry back to modify it.
type ActivityStore interface {
	// Append writes one immutable ledger entry. It either completes or
	// fails atomically; there are no partial writes.
	Append(ctx context.Context, entry *ActivityLogEntry) error
}

// UserStore exposes the ledger-derived season-point aggregates needed for
// rank computation and snapshot rebuilds. Season points are always derived
// from the ledger; any cached per-user total is a read optimization this
// core never consults.
type UserStore interface {
	// CountWithPointsAbove returns how many members have a season-point
	// total strictly greater than points.
	CountWithPointsAbove(ctx context.Context, points int) (int, error)

	// TopByPoints returns up to n members ordered by season points
	// descending, rank already assigned (strictly-greater count + 1, so
	// tied members share a rank number).
	TopByPoints(ctx context.Context, n int) ([]LeaderboardEntry, error)

	// CountMembers returns the total number of league members.
	CountMembers(ctx context.Context) (int, error)
}

// SnapshotStore holds the single cached leaderboard document. Write is a
// full replace: concurrent rebuilds race to last-writer-wins, which is
// acceptable for a cache.
type SnapshotStore interface {
	// Write replaces the snapshot document wholesale.
	Write(ctx context.Context, s *Snapshot) error

	// Read returns the current snapshot, or ErrNoSnapshot if none has been
	// written yet.
	Read(ctx context.Context) (*Snapshot, error)
}
