package league

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ActivityRequest describes one point-bearing action. Points overrides the
// default award for the activity type when non-nil.
type ActivityRequest struct {
	Type               ActivityType
	VenueID            string
	Points             *int
	VerificationMethod VerificationMethod
	Metadata           map[string]string
}

// Ledger appends point-bearing activity records. Writes are append-only and
// independent: two concurrent appends (same user or not) can never conflict
// or lose an update because no entry is ever read-modified.
type Ledger struct {
	store   ActivityStore
	clock   func() time.Time
	logger  *slog.Logger
	metrics *Metrics
}

// NewLedger creates a ledger writer. clock may be nil (defaults to time.Now);
// metrics may be nil to disable instrumentation.
func NewLedger(store ActivityStore, clock func() time.Time, logger *slog.Logger, metrics *Metrics) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		store:   store,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// LogActivity validates and appends one ledger entry for the user.
//
// Guests are rejected with ErrAuthRequired before anything touches the
// store: a guest action must surface a sign-in prompt, not a silent no-op.
// Store failures propagate to the caller so points are never silently lost.
func (l *Ledger) LogActivity(ctx context.Context, userID string, req ActivityRequest) (*ActivityLogEntry, error) {
	if userID == "" || userID == GuestUserID {
		return nil, ErrAuthRequired
	}

	// The type set is open: explicit points make any type loggable. The
	// default table is only consulted when the caller leaves points unset.
	var points int
	if req.Points != nil {
		points = *req.Points
	} else {
		def, ok := DefaultPoints[req.Type]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownActivity, req.Type)
		}
		points = def
	}
	if points < 0 {
		return nil, ErrInvalidPoints
	}

	entry := &ActivityLogEntry{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Type:               req.Type,
		VenueID:            req.VenueID,
		Points:             points,
		Timestamp:          l.clock(),
		VerificationMethod: req.VerificationMethod,
		Metadata:           req.Metadata,
	}

	if err := l.store.Append(ctx, entry); err != nil {
		l.logger.ErrorContext(ctx, "failed to append activity",
			"user_id", userID,
			"type", req.Type,
			"error", err,
		)
		return nil, fmt.Errorf("append activity: %w", err)
	}

	if l.metrics != nil {
		l.metrics.ObserveActivity(string(req.Type), points)
	}
	l.logger.DebugContext(ctx, "activity logged",
		"user_id", userID,
		"type", req.Type,
		"points", points,
		"venue_id", req.VenueID,
	)
	return entry, nil
}
