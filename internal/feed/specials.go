package feed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/olybars/olybars/internal/venue"
)

// NormalizeSpecials flattens each venue's one-off special events into
// UnifiedEvents, keeping only events dated on or after today. The comparison
// is a calendar-date string comparison, not time-of-day aware: an event
// earlier today is still "today".
//
// Featured events score 100, everything else 10, so specials always rank
// above ritual instances and featured items rank far above both.
func NormalizeSpecials(venues []*venue.Venue, now time.Time) []UnifiedEvent {
	today := now.Format(ISODate)

	var out []UnifiedEvent
	for _, v := range venues {
		for _, ev := range v.SpecialEvents {
			if ev.Date == "" {
				slog.Warn("skipping special event without date",
					"venue_id", v.ID,
					"event_id", ev.ID,
				)
				continue
			}
			if ev.Date < today {
				continue
			}

			score := ScoreSpecial
			if ev.IsFeatured {
				score = ScoreFeaturedSpecial
			}

			id := ev.ID
			if id == "" {
				id = fmt.Sprintf("special-%s-%s-%s", v.ID, ev.Date, slugify(ev.Title))
			}

			out = append(out, UnifiedEvent{
				ID:          id,
				VenueID:     v.ID,
				VenueName:   v.Name,
				Title:       ev.Title,
				Date:        ev.Date,
				Time:        ev.StartTime,
				Description: ev.Description,
				Category:    ClassifyEventType(ev.EventType),
				IsFeatured:  ev.IsFeatured,
				Score:       score,
			})
		}
	}
	return out
}
