package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "restaurant_score", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "restaurant_score", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	CorpusReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "restaurant_score", Name: "corpus_reads_total", Help: "Corpus lookups by backend and result."},
		[]string{"backend", "result"}, // result: hit|empty|error
	)
	CorpusReadLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "restaurant_score", Name: "corpus_read_duration_seconds",
			Help:    "Corpus lookup duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
	Extractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "restaurant_score", Name: "keyword_extractions_total", Help: "Per-review keyword extractions."},
		[]string{"outcome"}, // ok|error
	)
	Aggregations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "restaurant_score", Name: "aggregations_total", Help: "Overall score computations."},
		[]string{"outcome"}, // ok|invalid
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "restaurant_score", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func Serve(addr string) {
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(InitRegistry()))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

var (
	regOnce  sync.Once
	registry *prometheus.Registry
)

// InitRegistry returns the process registry, creating it on first use.
func InitRegistry() *prometheus.Registry {
	regOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(HTTPRequests, HTTPLatency, CorpusReads, CorpusReadLatency, Extractions, Aggregations, CacheEvents)
	})
	return registry
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveCorpusRead(backend, result string, dur time.Duration) {
	CorpusReads.WithLabelValues(backend, result).Inc()
	CorpusReadLatency.WithLabelValues(backend).Observe(dur.Seconds())
}

func ObserveExtraction(err error) { Extractions.WithLabelValues(outcome(err, "error")).Inc() }

func ObserveAggregation(err error) { Aggregations.WithLabelValues(outcome(err, "invalid")).Inc() }

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func outcome(err error, failed string) string {
	if err != nil {
		return failed
	}
	return "ok"
}
