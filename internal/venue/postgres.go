package venue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	// Registers the "postgres" driver with database/sql.
	_ "github.com/lib/pq"
)

// PostgresVenueRepository is a PostgreSQL-backed implementation of
// VenueRepository. The weekly schedule and special events are stored as
// JSONB columns; see migrations/000001_create_venues.sql.
type PostgresVenueRepository struct {
	db *sql.DB
}

// NewPostgresVenueRepository creates a venue repository on the given database.
func NewPostgresVenueRepository(db *sql.DB) *PostgresVenueRepository {
	return &PostgresVenueRepository{db: db}
}

// Create implements VenueRepository.
func (r *PostgresVenueRepository) Create(ctx context.Context, v *Venue) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now

	schedule, events, err := marshalVenueJSON(v)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO venues (id, name, category, address, weekly_schedule, special_events, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.Name, string(v.Category), v.Address, schedule, events, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	return nil
}

// Update implements VenueRepository.
func (r *PostgresVenueRepository) Update(ctx context.Context, v *Venue) error {
	if v.ID == "" {
		return ErrEmptyVenueID
	}
	v.UpdatedAt = time.Now()

	schedule, events, err := marshalVenueJSON(v)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE venues
		SET name = $2, category = $3, address = $4, weekly_schedule = $5, special_events = $6, updated_at = $7
		WHERE id = $1`,
		v.ID, v.Name, string(v.Category), v.Address, schedule, events, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	if n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// GetByID implements VenueRepository.
func (r *PostgresVenueRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, address, weekly_schedule, special_events, created_at, updated_at
		FROM venues WHERE id = $1`, id)

	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	return v, err
}

// ListAll implements VenueRepository.
func (r *PostgresVenueRepository) ListAll(ctx context.Context) ([]*Venue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, address, weekly_schedule, special_events, created_at, updated_at
		FROM venues ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var out []*Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return out, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanVenue.
type scanner interface {
	Scan(dest ...any) error
}

func scanVenue(s scanner) (*Venue, error) {
	var (
		v        Venue
		category string
		schedule []byte
		events   []byte
	)
	if err := s.Scan(&v.ID, &v.Name, &category, &v.Address, &schedule, &events, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.Category = Category(category)

	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &v.WeeklySchedule); err != nil {
			return nil, fmt.Errorf("decode weekly_schedule for venue %s: %w", v.ID, err)
		}
	}
	if len(events) > 0 {
		if err := json.Unmarshal(events, &v.SpecialEvents); err != nil {
			return nil, fmt.Errorf("decode special_events for venue %s: %w", v.ID, err)
		}
	}
	return &v, nil
}

func marshalVenueJSON(v *Venue) (schedule, events []byte, err error) {
	schedule, err = json.Marshal(v.WeeklySchedule)
	if err != nil {
		return nil, nil, fmt.Errorf("encode weekly_schedule: %w", err)
	}
	events, err = json.Marshal(v.SpecialEvents)
	if err != nil {
		return nil, nil, fmt.Errorf("encode special_events: %w", err)
	}
	return schedule, events, nil
}
