package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Registers the "postgres" driver with database/sql.
	_ "github.com/lib/pq"
)

// PostgresProfileStore is a PostgreSQL-backed implementation of
// PrivateProfileStore and PublicProfileStore. Private rows live in users,
// public projections in public_profiles; see the migrations.
type PostgresProfileStore struct {
	db *sql.DB
}

// NewPostgresProfileStore creates a profile store on the given database.
func NewPostgresProfileStore(db *sql.DB) *PostgresProfileStore {
	return &PostgresProfileStore{db: db}
}

// Upsert implements PrivateProfileStore.
func (s *PostgresProfileStore) Upsert(ctx context.Context, p *PrivateProfile) error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, handle, avatar_url, email, phone, current_status, home_venue_id, season_points, rank_label, is_hq, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			handle = EXCLUDED.handle,
			avatar_url = EXCLUDED.avatar_url,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			current_status = EXCLUDED.current_status,
			home_venue_id = EXCLUDED.home_venue_id,
			season_points = EXCLUDED.season_points,
			rank_label = EXCLUDED.rank_label,
			is_hq = EXCLUDED.is_hq,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.Handle, p.AvatarURL, p.Email, p.Phone, p.CurrentStatus, p.HomeVenueID,
		p.Stats.Points, p.Stats.Rank, p.IsHQ, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert private profile: %w", err)
	}
	return nil
}

// GetByID implements PrivateProfileStore.
func (s *PostgresProfileStore) GetByID(ctx context.Context, userID string) (*PrivateProfile, error) {
	var (
		p         PrivateProfile
		homeVenue sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, handle, avatar_url, email, phone, current_status, home_venue_id, season_points, rank_label, is_hq, created_at, updated_at
		FROM users WHERE id = $1`, userID).Scan(
		&p.UserID, &p.Handle, &p.AvatarURL, &p.Email, &p.Phone, &p.CurrentStatus,
		&homeVenue, &p.Stats.Points, &p.Stats.Rank, &p.IsHQ, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get private profile: %w", err)
	}
	p.HomeVenueID = homeVenue.String
	return &p, nil
}

// Delete implements PrivateProfileStore.
func (s *PostgresProfileStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("delete private profile: %w", err)
	}
	return nil
}

// PublicStore returns a view of the store implementing PublicProfileStore.
func (s *PostgresProfileStore) PublicStore() PublicProfileStore {
	return (*postgresPublicStore)(s)
}

type postgresPublicStore PostgresProfileStore

func (s *postgresPublicStore) Upsert(ctx context.Context, p *PublicProfile) error {
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO public_profiles (user_id, handle, avatar_url, points, rank_label, activity_status, is_hq, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			handle = EXCLUDED.handle,
			avatar_url = EXCLUDED.avatar_url,
			points = EXCLUDED.points,
			rank_label = EXCLUDED.rank_label,
			activity_status = EXCLUDED.activity_status,
			is_hq = EXCLUDED.is_hq,
			synced_at = EXCLUDED.synced_at`,
		p.UserID, p.Handle, p.AvatarURL, p.LeagueStats.Points, p.LeagueStats.Rank,
		p.ActivityStatus, p.IsHQ, p.SyncedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert public profile: %w", err)
	}
	return nil
}

func (s *postgresPublicStore) GetByID(ctx context.Context, userID string) (*PublicProfile, error) {
	var p PublicProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, handle, avatar_url, points, rank_label, activity_status, is_hq, synced_at
		FROM public_profiles WHERE user_id = $1`, userID).Scan(
		&p.UserID, &p.Handle, &p.AvatarURL, &p.LeagueStats.Points, &p.LeagueStats.Rank,
		&p.ActivityStatus, &p.IsHQ, &p.SyncedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get public profile: %w", err)
	}
	return &p, nil
}

func (s *postgresPublicStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM public_profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete public profile: %w", err)
	}
	return nil
}
