package feed

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/olybars/olybars/internal/tracing"
	"github.com/olybars/olybars/internal/venue"
)

// Clock is an injectable "now" source so date-relative ritual expansion is
// testable. Defaults to time.Now.
type Clock func() time.Time

// Service builds ranked, filtered feeds from the venue store. It holds no
// mutable state; any number of builds may run concurrently.
type Service struct {
	venues  venue.VenueRepository
	clock   Clock
	logger  *slog.Logger
	metrics *Metrics
}

// NewService creates a feed service. clock may be nil (defaults to time.Now);
// metrics may be nil to disable instrumentation.
func NewService(venues venue.VenueRepository, clock Clock, logger *slog.Logger, metrics *Metrics) *Service {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		venues:  venues,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Build fetches all venues, expands rituals, normalizes specials, merges and
// ranks them, and applies the criteria. A venue store failure degrades to an
// empty feed with a logged warning rather than failing the caller: a broken
// feed never blocks the rest of the application.
func (s *Service) Build(ctx context.Context, c Criteria) []UnifiedEvent {
	ctx, span := tracing.StartFeedBuildSpan(ctx)
	defer span.End()

	start := s.clock()
	now := start

	venues, err := s.venues.ListAll(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "venue store unavailable, serving empty feed", "error", err)
		tracing.RecordError(span, err)
		if s.metrics != nil {
			s.metrics.ObserveBuild(StatusDegraded, time.Since(start).Seconds())
		}
		return []UnifiedEvent{}
	}

	rituals := ExpandRituals(venues, now)
	specials := NormalizeSpecials(venues, now)
	ranked := MergeAndRank(specials, rituals)
	filtered := Filter(ranked, c)

	span.SetAttributes(
		attribute.Int("feed.venues", len(venues)),
		attribute.Int("feed.rituals", len(rituals)),
		attribute.Int("feed.specials", len(specials)),
		attribute.Int("feed.filtered", len(filtered)),
	)
	if s.metrics != nil {
		s.metrics.AddEmitted(SourceRitual, len(rituals))
		s.metrics.AddEmitted(SourceSpecial, len(specials))
		s.metrics.ObserveBuild(StatusSuccess, time.Since(start).Seconds())
	}
	return filtered
}
