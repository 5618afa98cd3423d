package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/olybars/olybars/internal/league"
)

// LeagueHandlers holds dependencies for leaderboard HTTP handlers.
type LeagueHandlers struct {
	users     league.UserStore
	snapshots league.SnapshotStore
	metrics   *league.Metrics
}

// NewLeagueHandlers creates a new LeagueHandlers instance.
// metrics may be nil to disable instrumentation.
func NewLeagueHandlers(users league.UserStore, snapshots league.SnapshotStore, metrics *league.Metrics) *LeagueHandlers {
	return &LeagueHandlers{
		users:     users,
		snapshots: snapshots,
		metrics:   metrics,
	}
}

// GetLeaderboard handles GET /leaderboard. It serves the cached snapshot;
// staleness is bounded by the rebuild interval. 404 with snapshot_pending
// means the job has not completed its first run yet.
func (h *LeagueHandlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errorWithCode(w, r, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	snapshot, err := h.snapshots.Read(r.Context())
	if err != nil {
		if errors.Is(err, league.ErrNoSnapshot) {
			errorWithCode(w, r, http.StatusNotFound, ErrCodeSnapshotPending,
				"Leaderboard is being built, try again shortly")
			return
		}
		errorWithCode(w, r, http.StatusInternalServerError, ErrCodeInternal,
			"Failed to read leaderboard")
		return
	}

	writeJSON(w, r.Context(), http.StatusOK, snapshot)
}

// RankResponse is the response body for GET /leaderboard/rank.
type RankResponse struct {
	Points int `json:"points"`
	Rank   int `json:"rank"`
}

// GetRank handles GET /leaderboard/rank?points=N: the on-demand rank for an
// arbitrary season-point total, computed live from the ledger-derived
// totals (never from the snapshot).
func (h *LeagueHandlers) GetRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errorWithCode(w, r, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	points, err := strconv.Atoi(r.URL.Query().Get("points"))
	if err != nil || points < 0 {
		errorWithCode(w, r, http.StatusBadRequest, ErrCodeValidation,
			"points must be a non-negative integer")
		return
	}

	rank, err := league.ComputeRank(r.Context(), h.users, points)
	if err != nil {
		errorWithCode(w, r, http.StatusInternalServerError, ErrCodeInternal,
			"Failed to compute rank")
		return
	}
	if h.metrics != nil {
		h.metrics.IncRankLookups()
	}

	writeJSON(w, r.Context(), http.StatusOK, RankResponse{Points: points, Rank: rank})
}
