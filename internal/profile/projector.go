package profile

import "time"

// Project derives the public view of a private profile. It is a pure
// allowlist function: every public field is assigned explicitly here, so a
// new private field can never leak without a deliberate edit to this
// function.
//
// Status fuzzing: any non-empty private status collapses to the constant
// "Active on OlyBars"; empty means "Offline". Missing handle and stats get
// the public defaults ("Anonymous", {0, "Unranked"}).
func Project(p *PrivateProfile, now time.Time) PublicProfile {
	handle := p.Handle
	if handle == "" {
		handle = DefaultHandle
	}

	stats := p.Stats
	if stats.Rank == "" {
		stats.Rank = "Unranked"
	}

	status := StatusOffline
	if p.CurrentStatus != "" {
		status = StatusActive
	}

	return PublicProfile{
		UserID:         p.UserID,
		Handle:         handle,
		AvatarURL:      p.AvatarURL,
		LeagueStats:    stats,
		ActivityStatus: status,
		IsHQ:           p.IsHQ,
		SyncedAt:       now,
	}
}
