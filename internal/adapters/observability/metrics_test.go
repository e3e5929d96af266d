package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ratewatch/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so the counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveFeed("/quotes", 200, 30*time.Millisecond)
	observability.ObserveCache("redis", "hit")
	observability.ObserveIngestion("ok")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, family := range []string{
		"ratewatch_http_requests_total",
		"ratewatch_feed_requests_total",
		"ratewatch_cache_events_total",
		"ratewatch_ingestions_total",
	} {
		if !strings.Contains(out, family) {
			t.Fatalf("expected %s in output", family)
		}
	}
}
