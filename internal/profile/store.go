package profile

import (
	"context"
	"sync"
)

// PrivateProfileStore persists private profile documents.
type PrivateProfileStore interface {
	// Upsert creates or fully replaces a private profile.
	Upsert(ctx context.Context, p *PrivateProfile) error

	// GetByID retrieves a private profile.
	GetByID(ctx context.Context, userID string) (*PrivateProfile, error)

	// Delete removes a private profile. Deleting a missing profile is not
	// an error; the syncer must stay idempotent under replays.
	Delete(ctx context.Context, userID string) error
}

// PublicProfileStore persists the public projections, keyed by user id.
type PublicProfileStore interface {
	// Upsert merges the projection into the public collection.
	Upsert(ctx context.Context, p *PublicProfile) error

	// GetByID retrieves a public profile.
	GetByID(ctx context.Context, userID string) (*PublicProfile, error)

	// Delete removes a public profile. Missing is not an error.
	Delete(ctx context.Context, userID string) error
}

// InMemoryProfileStore is an in-memory implementation of both
// PrivateProfileStore and PublicProfileStore. Thread-safe via RWMutex.
type InMemoryProfileStore struct {
	mu      sync.RWMutex
	private map[string]*PrivateProfile
	public  map[string]*PublicProfile
}

// NewInMemoryProfileStore creates an empty in-memory profile store.
func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{
		private: make(map[string]*PrivateProfile),
		public:  make(map[string]*PublicProfile),
	}
}

// Upsert implements PrivateProfileStore.
func (s *InMemoryProfileStore) Upsert(ctx context.Context, p *PrivateProfile) error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	s.private[p.UserID] = &cp
	return nil
}

// GetByID implements PrivateProfileStore.
func (s *InMemoryProfileStore) GetByID(ctx context.Context, userID string) (*PrivateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.private[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

// Delete implements PrivateProfileStore.
func (s *InMemoryProfileStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.private, userID)
	return nil
}

// Public returns a view of the store implementing PublicProfileStore.
func (s *InMemoryProfileStore) Public() PublicProfileStore {
	return (*inMemoryPublicStore)(s)
}

// inMemoryPublicStore exposes the public half of InMemoryProfileStore under
// its own type so the two interfaces cannot be mixed up at a call site.
type inMemoryPublicStore InMemoryProfileStore

func (s *inMemoryPublicStore) Upsert(ctx context.Context, p *PublicProfile) error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	s.public[p.UserID] = &cp
	return nil
}

func (s *inMemoryPublicStore) GetByID(ctx context.Context, userID string) (*PublicProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.public[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *inMemoryPublicStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.public, userID)
	return nil
}
