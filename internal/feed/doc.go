// Package feed implements the unified event feed engine: it merges a venue's
// recurring weekly rituals and one-off special events into a single ranked,
// filterable timeline.
//
// Two producers feed the timeline:
//
//   - ExpandRituals turns each venue's weekly schedule into concrete dated
//     instances for a rolling 7-day window.
//   - NormalizeSpecials flattens each venue's one-off events, dropping past
//     dates.
//
// Both emit the same UnifiedEvent shape so nothing downstream ever sees a
// source-specific record. MergeAndRank orders the combined sequence by
// (score desc, date asc, time asc) with a stable sort, and Filter applies
// venue, search, and category-group predicates without reordering.
//
// Scores separate the tiers: featured specials (100) rank above ordinary
// specials (10), which rank above ritual instances (5). Dates and times are
// ISO strings compared lexicographically; the engine is deliberately not
// timezone-aware ("tonight" means the server's calendar date).
//
// Everything here is a pure computation over already-fetched venue data.
// Feeds are rebuilt fresh per request and never stored.
package feed
