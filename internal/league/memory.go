package league

import (
	"context"
	"sort"
	"sync"
)

// member is the registry row backing the in-memory store.
type member struct {
	handle    string
	avatarURL string
}

// InMemoryLeagueStore is an in-memory implementation of ActivityStore and
// UserStore. Season-point totals are always re-derived from the appended
// entries, never kept in a mutable counter — the ledger is the source of
// truth. Thread-safe via RWMutex.
type InMemoryLeagueStore struct {
	mu      sync.RWMutex
	entries []*ActivityLogEntry
	members map[string]member
}

// NewInMemoryLeagueStore creates an empty in-memory league store.
func NewInMemoryLeagueStore() *InMemoryLeagueStore {
	return &InMemoryLeagueStore{
		members: make(map[string]member),
	}
}

// RegisterMember records a member's public handle and avatar for leaderboard
// rows. Members are also created implicitly by their first ledger entry.
func (s *InMemoryLeagueStore) RegisterMember(userID, handle, avatarURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[userID] = member{handle: handle, avatarURL: avatarURL}
}

// Append implements ActivityStore.
func (s *InMemoryLeagueStore) Append(ctx context.Context, entry *ActivityLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *entry
	s.entries = append(s.entries, &cp)
	if _, ok := s.members[entry.UserID]; !ok {
		s.members[entry.UserID] = member{}
	}
	return nil
}

// Entries returns a copy of all appended entries, in append order.
// Primarily useful in tests asserting append-only behavior.
func (s *InMemoryLeagueStore) Entries() []*ActivityLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*ActivityLogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		cp := *e
		out = append(out, &cp)
	}
	return out
}

// totalsLocked sums points per user from the ledger. Callers must hold at
// least a read lock.
func (s *InMemoryLeagueStore) totalsLocked() map[string]int {
	totals := make(map[string]int, len(s.members))
	for id := range s.members {
		totals[id] = 0
	}
	for _, e := range s.entries {
		totals[e.UserID] += e.Points
	}
	return totals
}

// CountWithPointsAbove implements UserStore.
func (s *InMemoryLeagueStore) CountWithPointsAbove(ctx context.Context, points int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, total := range s.totalsLocked() {
		if total > points {
			count++
		}
	}
	return count, nil
}

// TopByPoints implements UserStore. Ties share a rank number; within a tie,
// rows are ordered by user ID for determinism.
func (s *InMemoryLeagueStore) TopByPoints(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := s.totalsLocked()
	rows := make([]LeaderboardEntry, 0, len(totals))
	for id, total := range totals {
		m := s.members[id]
		rows = append(rows, LeaderboardEntry{
			UserID:    id,
			Handle:    m.handle,
			AvatarURL: m.avatarURL,
			Points:    total,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].UserID < rows[j].UserID
	})

	for i := range rows {
		if i > 0 && rows[i].Points == rows[i-1].Points {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
	}

	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

// CountMembers implements UserStore.
func (s *InMemoryLeagueStore) CountMembers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members), nil
}

// InMemorySnapshotStore is an in-memory implementation of SnapshotStore.
// Thread-safe via RWMutex.
type InMemorySnapshotStore struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewInMemorySnapshotStore creates an empty in-memory snapshot store.
func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{}
}

// Write implements SnapshotStore.
func (s *InMemorySnapshotStore) Write(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *snap
	cp.Entries = append([]LeaderboardEntry(nil), snap.Entries...)
	s.snapshot = &cp
	return nil
}

// Read implements SnapshotStore.
func (s *InMemorySnapshotStore) Read(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	cp := *s.snapshot
	cp.Entries = append([]LeaderboardEntry(nil), s.snapshot.Entries...)
	return &cp, nil
}
