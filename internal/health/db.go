// Package health provides dependency checkers for the readiness probe:
// Postgres (venues, ledger, profiles) and Redis (leaderboard snapshot,
// rate limits).
package health

import (
	"context"
	"database/sql"
)

// DBChecker verifies the Postgres connection pool can reach the server.
type DBChecker struct {
	db *sql.DB
}

// NewDBChecker creates a database health checker.
func NewDBChecker(db *sql.DB) *DBChecker {
	return &DBChecker{db: db}
}

// HealthCheck pings the database within the caller's deadline.
func (d *DBChecker) HealthCheck(ctx context.Context) error {
	return d.db.PingContext(ctx)
}
