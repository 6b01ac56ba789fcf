// Package metrics defines Prometheus metrics for graphologue and adapts
// them to the observability hooks.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/graphologue/pkg/observability"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphologue_http_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphologue_http_requests_total",
			Help: "Total API requests",
		},
		[]string{"method", "path", "status"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphologue_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage", "name"},
	)

	StageErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphologue_stage_errors_total",
			Help: "Pipeline stage failures",
		},
		[]string{"stage", "name"},
	)

	TripletsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "graphologue_triplets_total",
			Help: "Triplets extracted from model responses",
		},
	)

	PapersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "graphologue_papers_total",
			Help: "Papers returned for keyword batches",
		},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphologue_cache_operations_total",
			Help: "Cache lookups and writes by key type",
		},
		[]string{"type", "result"},
	)

	UpstreamTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphologue_upstream_requests_total",
			Help: "Outgoing HTTP requests by host and status",
		},
		[]string{"host", "status"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphologue_upstream_request_duration_seconds",
			Help:    "Outgoing HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"host"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal,
		StageDuration, StageErrorsTotal,
		TripletsTotal, PapersTotal,
		CacheTotal,
		UpstreamTotal, UpstreamDuration,
	)
}

// Register installs the Prometheus hooks in the observability registry.
func Register() {
	observability.SetPipelineHooks(pipelineHooks{})
	observability.SetCacheHooks(cacheHooks{})
	observability.SetHTTPHooks(httpHooks{})
}

type pipelineHooks struct{ observability.NoopPipelineHooks }

func (pipelineHooks) OnCompletionComplete(_ context.Context, model string, d time.Duration, err error) {
	observeStage("completion", model, d, err)
}

func (pipelineHooks) OnExtract(_ context.Context, n int, d time.Duration) {
	TripletsTotal.Add(float64(n))
	StageDuration.WithLabelValues("extract", "").Observe(d.Seconds())
}

func (pipelineHooks) OnLayoutComplete(_ context.Context, engine string, d time.Duration, err error) {
	observeStage("layout", engine, d, err)
}

func (pipelineHooks) OnPapers(_ context.Context, _ int, papers int, d time.Duration) {
	PapersTotal.Add(float64(papers))
	StageDuration.WithLabelValues("papers", "").Observe(d.Seconds())
}

func observeStage(stage, name string, d time.Duration, err error) {
	StageDuration.WithLabelValues(stage, name).Observe(d.Seconds())
	if err != nil {
		StageErrorsTotal.WithLabelValues(stage, name).Inc()
	}
}

type cacheHooks struct{}

func (cacheHooks) OnCacheHit(_ context.Context, keyType string) {
	CacheTotal.WithLabelValues(keyType, "hit").Inc()
}

func (cacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	CacheTotal.WithLabelValues(keyType, "miss").Inc()
}

func (cacheHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	CacheTotal.WithLabelValues(keyType, "set").Inc()
}

type httpHooks struct{ observability.NoopHTTPHooks }

func (httpHooks) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	UpstreamTotal.WithLabelValues(host, statusClass(status)).Inc()
	UpstreamDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (httpHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	UpstreamTotal.WithLabelValues(host, "error").Inc()
}

// statusClass buckets a status code as "2xx", "4xx" and so on to keep
// label cardinality low.
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return string(rune('0'+code/100)) + "xx"
}
