package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant_score/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()
	if observability.InitRegistry() != reg {
		t.Fatalf("expected InitRegistry to return the same registry")
	}

	// record one sample per family so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveCorpusRead("file", "hit", time.Millisecond)
	observability.ObserveExtraction(nil)
	observability.ObserveAggregation(errors.New("bad input"))

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"restaurant_score_http_requests_total",
		`restaurant_score_corpus_reads_total{backend="file",result="hit"}`,
		`restaurant_score_keyword_extractions_total{outcome="ok"}`,
		`restaurant_score_aggregations_total{outcome="invalid"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}
