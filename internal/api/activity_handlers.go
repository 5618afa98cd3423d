package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/olybars/olybars/internal/league"
	"github.com/olybars/olybars/internal/middleware"
)

// ActivityHandlers holds dependencies for activity ledger HTTP handlers.
type ActivityHandlers struct {
	ledger *league.Ledger
}

// NewActivityHandlers creates a new ActivityHandlers instance.
func NewActivityHandlers(ledger *league.Ledger) *ActivityHandlers {
	return &ActivityHandlers{ledger: ledger}
}

// LogActivityRequest is the request body for POST /activities.
type LogActivityRequest struct {
	Type               string            `json:"type"`
	VenueID            string            `json:"venue_id,omitempty"`
	Points             *int              `json:"points,omitempty"`
	VerificationMethod string            `json:"verification_method,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

// LogActivity handles POST /activities. The acting user comes from the auth
// middleware; guests get a 401 with a structured auth_required error so the
// client can prompt for sign-in. Store failures surface as 500 — points must
// never be silently lost.
func (h *ActivityHandlers) LogActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errorWithCode(w, r, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
		return
	}

	var req LogActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorWithCode(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return
	}

	userID := middleware.GetUserID(r.Context())
	entry, err := h.ledger.LogActivity(r.Context(), userID, league.ActivityRequest{
		Type:               league.ActivityType(req.Type),
		VenueID:            req.VenueID,
		Points:             req.Points,
		VerificationMethod: league.VerificationMethod(req.VerificationMethod),
		Metadata:           req.Metadata,
	})
	if err != nil {
		switch {
		case errors.Is(err, league.ErrAuthRequired):
			errorWithCode(w, r, http.StatusUnauthorized, ErrCodeAuthRequired,
				"Sign in to earn points")
		case errors.Is(err, league.ErrUnknownActivity):
			errorWithCode(w, r, http.StatusBadRequest, ErrCodeUnknownActivity,
				"Unknown activity type")
		case errors.Is(err, league.ErrInvalidPoints):
			errorWithCode(w, r, http.StatusBadRequest, ErrCodeInvalidPoints,
				"Points must be a non-negative integer")
		default:
			errorWithCode(w, r, http.StatusInternalServerError, ErrCodeInternal,
				"Failed to record activity")
		}
		return
	}

	writeJSON(w, r.Context(), http.StatusCreated, entry)
}
