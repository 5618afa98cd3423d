package feed

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/olybars/olybars/internal/venue"
)

// ISODate is the calendar date layout used across the feed engine.
const ISODate = "2006-01-02"

// weekdayNames is the canonical weekday ordering (Sunday=0 ... Saturday=6).
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// weekdayIndex maps canonical weekday names to their time.Weekday ordering.
// Schedule keys are matched case-insensitively against this set.
var weekdayIndex = func() map[string]int {
	m := make(map[string]int, len(weekdayNames))
	for i, name := range weekdayNames {
		m[name] = i
	}
	return m
}()

// ExpandRituals turns each venue's weekly schedule into concrete dated event
// instances for the next occurrence of each weekday within a 7-day window
// (today counts as day 0). Instances landing on today's date get a
// "(Tonight)" title suffix. Unknown weekday names are skipped with a warning;
// a malformed schedule entry never fails the whole feed build.
//
// Output order is deterministic for a given venue snapshot and now: venues in
// input order, weekdays in canonical order, labels in schedule order.
func ExpandRituals(venues []*venue.Venue, now time.Time) []UnifiedEvent {
	var out []UnifiedEvent
	today := int(now.Weekday())

	for _, v := range venues {
		for _, day := range sortedScheduleKeys(v.WeeklySchedule) {
			idx, ok := weekdayIndex[strings.ToLower(strings.TrimSpace(day))]
			if !ok {
				slog.Warn("skipping unknown weekday in schedule",
					"venue_id", v.ID,
					"weekday", day,
				)
				continue
			}

			offset := (idx - today + 7) % 7
			date := now.AddDate(0, 0, offset).Format(ISODate)

			for _, label := range v.WeeklySchedule[day] {
				title := label
				if offset == 0 {
					title = label + " (Tonight)"
				}
				out = append(out, UnifiedEvent{
					ID:          fmt.Sprintf("ritual-%s-%d-%s", v.ID, idx, slugify(label)),
					VenueID:     v.ID,
					VenueName:   v.Name,
					Title:       title,
					Date:        date,
					Time:        DefaultRitualTime,
					Description: fmt.Sprintf("Every %s at %s", weekdayNames[idx], v.Name),
					Category:    ClassifyActivity(label),
					Score:       ScoreRitual,
					IsRecurring: true,
				})
			}
		}
	}
	return out
}

// sortedScheduleKeys returns the schedule's weekday keys ordered by canonical
// weekday index, with unrecognized keys last in lexical order. Map iteration
// order would otherwise make feed builds non-deterministic.
func sortedScheduleKeys(schedule map[string][]string) []string {
	keys := make([]string, 0, len(schedule))
	for k := range schedule {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		wi, iKnown := weekdayIndex[strings.ToLower(strings.TrimSpace(keys[i]))]
		wj, jKnown := weekdayIndex[strings.ToLower(strings.TrimSpace(keys[j]))]
		switch {
		case iKnown && jKnown:
			return wi < wj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// slugify lowercases a label and collapses whitespace to hyphens so ritual
// IDs stay stable across feed builds for the same schedule.
func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
