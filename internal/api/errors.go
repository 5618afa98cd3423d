// Package api provides HTTP handlers and standardized error handling for
// the OlyBars API.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/olybars/olybars/internal/middleware"
)

// Common error codes used throughout the API.
const (
	// ErrCodeValidation indicates input validation failure.
	ErrCodeValidation = "validation_error"

	// ErrCodeAuthRequired indicates the action needs an authenticated user.
	ErrCodeAuthRequired = "auth_required"

	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound = "not_found"

	// ErrCodeBadRequest indicates a malformed request.
	ErrCodeBadRequest = "bad_request"

	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"

	// ErrCodeForbidden indicates the request is forbidden.
	ErrCodeForbidden = "forbidden"

	// ErrCodeSnapshotPending indicates the leaderboard snapshot has not
	// been built yet.
	ErrCodeSnapshotPending = "snapshot_pending"

	// ErrCodeUnknownActivity indicates an unrecognized activity type.
	ErrCodeUnknownActivity = "unknown_activity"

	// ErrCodeInvalidPoints indicates a negative point value.
	ErrCodeInvalidPoints = "invalid_points"
)

// ErrorResponse represents the standard error response format.
// All API errors return JSON in this structure: {"error": {"code": "...", "message": "..."}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response with the given HTTP
// status. The error code should also be stored on the context via
// middleware.SetErrorCode so the logging middleware can pick it up:
//
//	ctx := middleware.SetErrorCode(r.Context(), api.ErrCodeNotFound)
//	api.WriteError(w, ctx, http.StatusNotFound, api.ErrCodeNotFound, "Venue not found")
func WriteError(w http.ResponseWriter, ctx context.Context, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(ctx, "failed to encode error response", "error", err)
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, ctx context.Context, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// errorWithCode is a convenience that records the error code on the request
// context and writes the response in one step.
func errorWithCode(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	ctx := middleware.SetErrorCode(r.Context(), code)
	WriteError(w, ctx, status, code, message)
}
