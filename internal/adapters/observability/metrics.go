package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "suite"

// outbound calls are slower than local handlers and retried with backoff
var externalBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}

func counter(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func histogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets}, labels)
}

func gauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
}

var (
	HTTPRequests = counter("http_requests_total", "HTTP requests served.", "route", "method", "status")
	HTTPLatency  = histogram("http_request_duration_seconds", "HTTP request duration.", prometheus.DefBuckets, "route", "method")

	ExternalRequests = counter("external_requests_total", "Gateway and wallet RPC calls.", "service", "endpoint", "status")
	ExternalErrors   = counter("external_errors_total", "Outbound calls that got no response.", "service", "endpoint", "error")
	ExternalLatency  = histogram("external_request_duration_seconds", "Outbound call duration.", externalBuckets, "service", "endpoint")

	CacheEvents = counter("cache_events_total", "Cache hit|miss|set|del.", "cache", "event")
	StoreEvents = counter("store_events_total", "State store transitions.", "store", "event")

	CatalogSize      = gauge("catalog_hotels", "Hotels held by the hotel store.")
	EventSubscribers = gauge("event_subscribers", "Open store-event streams.")
)

// Serve starts a standalone metrics listener; empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		HTTPRequests, HTTPLatency,
		ExternalRequests, ExternalErrors, ExternalLatency,
		CacheEvents, StoreEvents,
		CatalogSize, EventSubscribers,
	)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

// ObserveExternalError counts a call that failed before any response arrived.
func ObserveExternalError(service, endpoint string, err error, dur time.Duration) {
	ExternalErrors.WithLabelValues(service, endpoint, LabelErr(err)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { CacheEvents.WithLabelValues(cache, event).Inc() }

func ObserveStore(store, event string) { StoreEvents.WithLabelValues(store, event).Inc() }

func SetCatalogSize(n int) { CatalogSize.Set(float64(n)) }

func AddEventSubscribers(delta int) { EventSubscribers.Add(float64(delta)) }

// LabelErr is the error's dynamic type, a bounded label set.
func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
