package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/olybars/olybars/internal/league"
	"github.com/olybars/olybars/internal/middleware"
	"github.com/olybars/olybars/internal/profile"
	"github.com/olybars/olybars/internal/validate"
)

// ProfileHandlers holds dependencies for profile HTTP handlers.
type ProfileHandlers struct {
	private profile.PrivateProfileStore
	public  profile.PublicProfileStore
	syncer  *profile.Syncer
}

// NewProfileHandlers creates a new ProfileHandlers instance.
func NewProfileHandlers(private profile.PrivateProfileStore, public profile.PublicProfileStore, syncer *profile.Syncer) *ProfileHandlers {
	return &ProfileHandlers{
		private: private,
		public:  public,
		syncer:  syncer,
	}
}

// UpdateProfileRequest is the request body for PUT /profiles/{id}. Pointer
// fields distinguish "not provided" from "clear this field".
type UpdateProfileRequest struct {
	Handle        *string `json:"handle,omitempty"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	CurrentStatus *string `json:"current_status,omitempty"`
	HomeVenueID   *string `json:"home_venue_id,omitempty"`
}

// HandleProfile dispatches /profiles/{id} by method.
func (h *ProfileHandlers) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/profiles/"), "/")
	if userID == "" || strings.Contains(userID, "/") {
		errorWithCode(w, r, http.StatusBadRequest, ErrCodeBadRequest, "User ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getProfile(w, r, userID)
	case http.MethodPut:
		h.updateProfile(w, r, userID)
	case http.MethodDelete:
		h.deleteProfile(w, r, userID)
	default:
		errorWithCode(w, r, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
	}
}

// getProfile handles GET /profiles/{id}. It always serves the public
// projection; the private document never leaves this server unfiltered,
// not even to its owner.
func (h *ProfileHandlers) getProfile(w http.ResponseWriter, r *http.Request, userID string) {
	p, err := h.public.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			errorWithCode(w, r, http.StatusNotFound, ErrCodeNotFound, "Profile not found")
			return
		}
		errorWithCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to retrieve profile")
		return
	}

	writeJSON(w, r.Context(), http.StatusOK, p)
}

// updateProfile handles PUT /profiles/{id}. Only the profile owner may
// write. The public projection is re-synced before the response goes out,
// so a follow-up GET always sees the new data.
func (h *ProfileHandlers) updateProfile(w http.ResponseWriter, r *http.Request, userID string) {
	actor := middleware.GetUserID(r.Context())
	if actor == "" || actor == league.GuestUserID {
		errorWithCode(w, r, http.StatusUnauthorized, ErrCodeAuthRequired, "Sign in to edit your profile")
		return
	}
	if actor != userID {
		errorWithCode(w, r, http.StatusForbidden, ErrCodeForbidden, "You can only edit your own profile")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorWithCode(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return
	}

	now := time.Now().UTC()

	existing, err := h.private.GetByID(r.Context(), userID)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			errorWithCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to retrieve profile")
			return
		}
		existing = &profile.PrivateProfile{
			UserID:    userID,
			CreatedAt: now,
		}
	}

	if req.Handle != nil {
		handle, err := validate.Handle(*req.Handle)
		if err != nil {
			errorWithCode(w, r, http.StatusBadRequest, ErrCodeValidation, "Invalid handle: "+err.Error())
			return
		}
		existing.Handle = handle
	}
	if req.AvatarURL != nil {
		if *req.AvatarURL == "" {
			existing.AvatarURL = ""
		} else {
			avatarURL, err := validate.AvatarURL(*req.AvatarURL)
			if err != nil {
				errorWithCode(w, r, http.StatusBadRequest, ErrCodeValidation, "Invalid avatar URL: "+err.Error())
				return
			}
			existing.AvatarURL = avatarURL
		}
	}
	if req.Email != nil {
		if *req.Email == "" {
			existing.Email = ""
		} else {
			email, err := validate.Email(*req.Email)
			if err != nil {
				errorWithCode(w, r, http.StatusBadRequest, ErrCodeValidation, "Invalid email: "+err.Error())
				return
			}
			existing.Email = email
		}
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.CurrentStatus != nil {
		status, err := validate.Status(*req.CurrentStatus)
		if err != nil {
			errorWithCode(w, r, http.StatusBadRequest, ErrCodeValidation, "Invalid status: "+err.Error())
			return
		}
		existing.CurrentStatus = status
	}
	if req.HomeVenueID != nil {
		existing.HomeVenueID = *req.HomeVenueID
	}
	existing.UpdatedAt = now

	if err := h.private.Upsert(r.Context(), existing); err != nil {
		errorWithCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to save profile")
		return
	}
	if err := h.syncer.OnWrite(r.Context(), existing); err != nil {
		errorWithCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to sync public profile")
		return
	}

	writeJSON(w, r.Context(), http.StatusOK, existing)
}

// deleteProfile handles DELETE /profiles/{id}. The public document goes
// with the private one; neither delete treats "already gone" as an error.
func (h *ProfileHandlers) deleteProfile(w http.ResponseWriter, r *http.Request, userID string) {
	actor := middleware.GetUserID(r.Context())
	if actor == "" || actor == league.GuestUserID {
		errorWithCode(w, r, http.StatusUnauthorized, ErrCodeAuthRequired, "Sign in to delete your profile")
		return
	}
	if actor != userID {
		errorWithCode(w, r, http.StatusForbidden, ErrCodeForbidden, "You can only delete your own profile")
		return
	}

	if err := h.private.Delete(r.Context(), userID); err != nil {
		errorWithCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to delete profile")
		return
	}
	if err := h.syncer.OnDelete(r.Context(), userID); err != nil {
		errorWithCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to remove public profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
