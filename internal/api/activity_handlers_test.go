package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olybars/olybars/internal/league"
	"github.com/olybars/olybars/internal/middleware"
)

func newActivityFixture() (*ActivityHandlers, *league.InMemoryLeagueStore) {
	store := league.NewInMemoryLeagueStore()
	ledger := league.NewLedger(store, nil, testLogger(), nil)
	return NewActivityHandlers(ledger), store
}

func postActivity(h *ActivityHandlers, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/activities", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.LogActivity(rec, req)
	return rec
}

func TestLogActivitySuccess(t *testing.T) {
	h, store := newActivityFixture()

	rec := postActivity(h, "user-1", `{"type":"check_in","venue_id":"well-80","verification_method":"gps"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var entry league.ActivityLogEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if entry.Points != 10 {
		t.Errorf("expected 10 points for check_in, got %d", entry.Points)
	}
	if entry.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", entry.UserID)
	}

	if got := len(store.Entries()); got != 1 {
		t.Errorf("expected 1 stored entry, got %d", got)
	}
}

func TestLogActivityGuestRejected(t *testing.T) {
	h, store := newActivityFixture()

	rec := postActivity(h, "guest", `{"type":"check_in"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if resp.Error.Code != ErrCodeAuthRequired {
		t.Errorf("expected %s, got %s", ErrCodeAuthRequired, resp.Error.Code)
	}
	if got := len(store.Entries()); got != 0 {
		t.Errorf("expected zero store writes for guests, got %d", got)
	}
}

func TestLogActivityErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown type", `{"type":"teleport"}`, http.StatusBadRequest, ErrCodeUnknownActivity},
		{"negative points", `{"type":"check_in","points":-5}`, http.StatusBadRequest, ErrCodeInvalidPoints},
		{"invalid json", `{"type":`, http.StatusBadRequest, ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newActivityFixture()

			rec := postActivity(h, "user-1", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to parse error response: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestLogActivityMethodNotAllowed(t *testing.T) {
	h, _ := newActivityFixture()

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	rec := httptest.NewRecorder()
	h.LogActivity(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
