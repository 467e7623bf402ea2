// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/observability"
)

const namespace = "cratetower"

// Metrics collects run, move, cache and request metrics. It implements
// observability.PipelineHooks, observability.CacheHooks and
// observability.HTTPHooks.
type Metrics struct {
	runs          *prometheus.CounterVec
	errors        *prometheus.CounterVec
	moved         *prometheus.CounterVec
	instructions  prometheus.Counter
	stageDuration *prometheus.HistogramVec
	cacheEvents   *prometheus.CounterVec
	requests      *prometheus.CounterVec
	reqDuration   *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed simulations by crane mode and outcome.",
		}, []string{"mode", "outcome"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed stages by stage and error code.",
		}, []string{"stage", "code"}),
		moved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crates_moved_total",
			Help:      "Crates moved by the crane, by mode.",
		}, []string{"mode"}),
		instructions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instructions_parsed_total",
			Help:      "Move instructions parsed.",
		}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of the parse and simulate stages.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"stage"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes by key type.",
		}, []string{"key_type", "event"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP API responses by route and status.",
		}, []string{"method", "route", "status"}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP API latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.runs, m.errors, m.moved, m.instructions,
		m.stageDuration, m.cacheEvents, m.requests, m.reqDuration)
	return m
}

// Register installs m as the global pipeline, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// WriteTextfile writes the metrics gathered by g to path, for the node
// exporter textfile collector.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, g)
}

func (m *Metrics) OnParseStart(context.Context, string, int) {}

func (m *Metrics) OnParseComplete(_ context.Context, _ string, _, instructions int, d time.Duration, err error) {
	m.stageDuration.WithLabelValues("parse").Observe(d.Seconds())
	if err != nil {
		m.errors.WithLabelValues("parse", codeOf(err)).Inc()
		return
	}
	m.instructions.Add(float64(instructions))
}

func (m *Metrics) OnSimulateStart(context.Context, string, string, int) {}

func (m *Metrics) OnSimulateComplete(_ context.Context, _ string, mode string, moved int, d time.Duration, err error) {
	m.stageDuration.WithLabelValues("simulate").Observe(d.Seconds())
	m.moved.WithLabelValues(mode).Add(float64(moved))
	if err != nil {
		m.errors.WithLabelValues("simulate", codeOf(err)).Inc()
		m.runs.WithLabelValues(mode, "error").Inc()
		return
	}
	m.runs.WithLabelValues(mode, "ok").Inc()
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.reqDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func codeOf(err error) string {
	if code := errs.GetCode(err); code != "" {
		return string(code)
	}
	return string(errs.ErrCodeInternal)
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
