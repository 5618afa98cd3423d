package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestContextHelpers(t *testing.T) {
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	if GetUserID(ctx) != "" {
		t.Error("expected empty user ID on fresh context")
	}
	if GetErrorCode(ctx) != "" {
		t.Error("expected empty error code on fresh context")
	}

	ctx = SetUserID(ctx, "user-1")
	ctx = SetErrorCode(ctx, "not_found")

	if got := GetUserID(ctx); got != "user-1" {
		t.Errorf("expected user-1, got %q", got)
	}
	if got := GetErrorCode(ctx); got != "not_found" {
		t.Errorf("expected not_found, got %q", got)
	}
}

func TestNewLoggerHandlerByEnv(t *testing.T) {
	prod := NewLogger("production")
	if _, ok := prod.Handler().(*slog.JSONHandler); !ok {
		t.Error("expected JSON handler in production")
	}

	dev := NewLogger("development")
	if _, ok := dev.Handler().(*slog.TextHandler); !ok {
		t.Error("expected text handler in development")
	}
}

// logLine captures one structured request log entry.
type logLine struct {
	Level     string `json:"level"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Size      int    `json:"size"`
	UserID    string `json:"user_id"`
	ErrorCode string `json:"error_code"`
}

func captureLog(t *testing.T, status int, body string, prep func(r *http.Request) *http.Request) logLine {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	if prep != nil {
		req = prep(req)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line logLine
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("failed to parse log line %q: %v", buf.String(), err)
	}
	return line
}

func TestLoggingFields(t *testing.T) {
	line := captureLog(t, http.StatusOK, "hello", func(r *http.Request) *http.Request {
		return r.WithContext(SetUserID(r.Context(), "user-1"))
	})

	if line.Method != http.MethodGet || line.Path != "/feed" {
		t.Errorf("unexpected method/path: %+v", line)
	}
	if line.Status != http.StatusOK {
		t.Errorf("expected status 200, got %d", line.Status)
	}
	if line.Size != len("hello") {
		t.Errorf("expected size %d, got %d", len("hello"), line.Size)
	}
	if line.UserID != "user-1" {
		t.Errorf("expected user_id user-1, got %q", line.UserID)
	}
}

func TestLoggingLevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		line := captureLog(t, tt.status, "", nil)
		if line.Level != tt.want {
			t.Errorf("status %d: expected level %s, got %s", tt.status, tt.want, line.Level)
		}
	}
}

func TestLoggingErrorCodeOnlyForErrors(t *testing.T) {
	errLine := captureLog(t, http.StatusBadRequest, "", func(r *http.Request) *http.Request {
		return r.WithContext(SetErrorCode(r.Context(), "validation_error"))
	})
	if errLine.ErrorCode != "validation_error" {
		t.Errorf("expected error_code on 4xx, got %q", errLine.ErrorCode)
	}

	okLine := captureLog(t, http.StatusOK, "", func(r *http.Request) *http.Request {
		return r.WithContext(SetErrorCode(r.Context(), "validation_error"))
	})
	if okLine.ErrorCode != "" {
		t.Errorf("expected no error_code on 2xx, got %q", okLine.ErrorCode)
	}
}

func TestResponseWriterFirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("expected first status to stick, got %d", rw.statusCode)
	}
}
