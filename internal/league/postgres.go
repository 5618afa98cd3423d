package league

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	// Registers the "postgres" driver with database/sql.
	_ "github.com/lib/pq"

	"github.com/olybars/olybars/internal/tracing"
)

// PostgresActivityStore is a PostgreSQL-backed implementation of
// ActivityStore. The table is insert-only; there is no update or delete
// path anywhere in the codebase, which keeps concurrent appends conflict-free.
type PostgresActivityStore struct {
	db *sql.DB
}

// NewPostgresActivityStore creates an activity store on the given database.
func NewPostgresActivityStore(db *sql.DB) *PostgresActivityStore {
	return &PostgresActivityStore{db: db}
}

// Append implements ActivityStore.
func (s *PostgresActivityStore) Append(ctx context.Context, entry *ActivityLogEntry) (err error) {
	ctx, endSpan := tracing.StartDBSpan(ctx, "activity_log", tracing.DBOperationInsert)
	defer func() { endSpan(err) }()

	var metadata []byte
	if entry.Metadata != nil {
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, user_id, type, venue_id, points, ts, verification_method, metadata)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), $8)`,
		entry.ID, entry.UserID, string(entry.Type), entry.VenueID,
		entry.Points, entry.Timestamp, string(entry.VerificationMethod), metadata,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// PostgresUserStore is a PostgreSQL-backed implementation of UserStore.
// Season points are aggregated from activity_log on every query; the users
// table carries no point counter to drift out of sync.
type PostgresUserStore struct {
	db *sql.DB
}

// NewPostgresUserStore creates a user store on the given database.
func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// CountWithPointsAbove implements UserStore.
func (s *PostgresUserStore) CountWithPointsAbove(ctx context.Context, points int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM (
			SELECT user_id
			FROM activity_log
			GROUP BY user_id
			HAVING SUM(points) > $1
		) above`, points).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count members above %d points: %w", points, err)
	}
	return count, nil
}

// TopByPoints implements UserStore. RANK() matches the strictly-greater
// semantics exactly: tied members share a rank number.
func (s *PostgresUserStore) TopByPoints(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id,
		       COALESCE(u.handle, ''),
		       COALESCE(u.avatar_url, ''),
		       COALESCE(t.total, 0) AS points,
		       RANK() OVER (ORDER BY COALESCE(t.total, 0) DESC) AS rank
		FROM users u
		LEFT JOIN (
			SELECT user_id, SUM(points) AS total
			FROM activity_log
			GROUP BY user_id
		) t ON t.user_id = u.id
		ORDER BY points DESC, u.id ASC
		LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("query top members: %w", err)
	}
	defer rows.Close()

	var out []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Handle, &e.AvatarURL, &e.Points, &e.Rank); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query top members: %w", err)
	}
	return out, nil
}

// CountMembers implements UserStore.
func (s *PostgresUserStore) CountMembers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}
