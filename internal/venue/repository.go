package venue

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// VenueRepository defines the interface for venue data operations.
// The feed engine only reads; writes come from owner/admin tooling.
type VenueRepository interface {
	// Create inserts a new venue, generating an ID when none is set.
	Create(ctx context.Context, v *Venue) error

	// Update replaces an existing venue's mutable fields.
	Update(ctx context.Context, v *Venue) error

	// GetByID retrieves a venue by its ID.
	GetByID(ctx context.Context, id string) (*Venue, error)

	// ListAll retrieves every venue with its schedule and special events,
	// ordered by name then ID. The order must be stable across calls: the
	// feed ranker's sort is stable, so tied events keep their input order.
	ListAll(ctx context.Context) ([]*Venue, error)
}

// InMemoryVenueRepository is an in-memory implementation of VenueRepository.
// Thread-safe via RWMutex.
type InMemoryVenueRepository struct {
	mu     sync.RWMutex
	venues map[string]*Venue
}

// NewInMemoryVenueRepository creates an empty in-memory venue repository.
func NewInMemoryVenueRepository() *InMemoryVenueRepository {
	return &InMemoryVenueRepository{
		venues: make(map[string]*Venue),
	}
}

// Create implements VenueRepository.
func (r *InMemoryVenueRepository) Create(ctx context.Context, v *Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now

	cp := cloneVenue(v)
	r.venues[v.ID] = cp
	return nil
}

// Update implements VenueRepository.
func (r *InMemoryVenueRepository) Update(ctx context.Context, v *Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.ID == "" {
		return ErrEmptyVenueID
	}
	existing, ok := r.venues[v.ID]
	if !ok {
		return ErrVenueNotFound
	}

	v.CreatedAt = existing.CreatedAt
	v.UpdatedAt = time.Now()
	r.venues[v.ID] = cloneVenue(v)
	return nil
}

// GetByID implements VenueRepository.
func (r *InMemoryVenueRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.venues[id]
	if !ok {
		return nil, ErrVenueNotFound
	}
	return cloneVenue(v), nil
}

// ListAll implements VenueRepository.
func (r *InMemoryVenueRepository) ListAll(ctx context.Context) ([]*Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Venue, 0, len(r.venues))
	for _, v := range r.venues {
		out = append(out, cloneVenue(v))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// cloneVenue deep-copies a venue so callers never share mutable state
// with the repository.
func cloneVenue(v *Venue) *Venue {
	cp := *v
	if v.WeeklySchedule != nil {
		cp.WeeklySchedule = make(map[string][]string, len(v.WeeklySchedule))
		for day, labels := range v.WeeklySchedule {
			cp.WeeklySchedule[day] = append([]string(nil), labels...)
		}
	}
	if v.SpecialEvents != nil {
		cp.SpecialEvents = append([]SpecialEvent(nil), v.SpecialEvents...)
	}
	return &cp
}
