package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// gatherFamily finds a metric family by name in the registry.
func gatherFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestMetricsRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()
	if err := m.Register(reg); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Double registration must fail.
	if err := m.Register(reg); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestObserveHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()
	if err := m.Register(reg); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	m.ObserveHTTPRequest(http.MethodGet, "/feed", "200", 0.05, 1024)
	m.ObserveHTTPRequest(http.MethodGet, "/feed", "200", 0.07, 2048)

	mf := gatherFamily(t, reg, MetricHTTPRequestsTotal)
	if mf == nil {
		t.Fatalf("metric %s not found", MetricHTTPRequestsTotal)
	}
	if len(mf.Metric) != 1 {
		t.Fatalf("expected 1 label combination, got %d", len(mf.Metric))
	}
	if got := mf.Metric[0].GetCounter().GetValue(); got != 2 {
		t.Errorf("expected counter value 2, got %g", got)
	}
}

func TestInstrumentHTTPMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()
	if err := m.Register(reg); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	handler := InstrumentHTTP(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("nope"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	mf := gatherFamily(t, reg, MetricHTTPRequestsTotal)
	if mf == nil {
		t.Fatalf("metric %s not found", MetricHTTPRequestsTotal)
	}

	metric := mf.Metric[0]
	labels := make(map[string]string, len(metric.Label))
	for _, l := range metric.Label {
		labels[l.GetName()] = l.GetValue()
	}
	if labels["status"] != "404" {
		t.Errorf("expected status label 404, got %q", labels["status"])
	}
	if labels["path"] != "/missing" {
		t.Errorf("expected path label /missing, got %q", labels["path"])
	}
}

func TestRateLimitCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()
	if err := m.Register(reg); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	m.IncRateLimitRequests("/activities", "user")
	m.IncRateLimitBlocked("/activities", "user")
	m.IncRateLimitStoreErrors()

	for _, name := range []string{MetricRateLimitRequests, MetricRateLimitBlocked, MetricRateLimitStoreErrors} {
		mf := gatherFamily(t, reg, name)
		if mf == nil {
			t.Errorf("metric %s not found", name)
			continue
		}
		if got := mf.Metric[0].GetCounter().GetValue(); got != 1 {
			t.Errorf("%s: expected 1, got %g", name, got)
		}
	}
}
