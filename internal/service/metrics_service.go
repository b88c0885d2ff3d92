package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/itinerary-planner-api/internal/models"
	"github.com/noah-isme/itinerary-planner-api/internal/scheduler"
)

const metricsNamespace = "planner"

// tally keeps running totals for the JSON summary; Prometheus owns the histograms.
type tally struct {
	requests       atomic.Uint64
	requestNanos   atomic.Uint64
	cacheHits      atomic.Uint64
	cacheMisses    atomic.Uint64
	dbQueries      atomic.Uint64
	dbNanos        atomic.Uint64
	plansScheduled atomic.Uint64
	plansEmpty     atomic.Uint64
	plansTruncated atomic.Uint64
	plansCached    atomic.Uint64
	searches       atomic.Uint64
	searchNodes    atomic.Uint64
}

func ratio(num, den uint64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// MetricsService owns the Prometheus registry for the API and the planner engine.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler
	totals   tally

	httpDuration  *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	cacheLookup   prometheus.Histogram
	cacheWrite    prometheus.Histogram
	dbDuration    *prometheus.HistogramVec
	plans         *prometheus.CounterVec
	plansCached   *prometheus.CounterVec
	searchNodes   prometheus.Histogram
	searchSeconds *prometheus.HistogramVec
}

// NewMetricsService builds a private registry so tests can create as many as they need.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &MetricsService{
		registry: registry,
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route",
		}, []string{"method", "route", "status"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "plan_cache_lookups_total",
			Help:      "Plan cache lookups by result",
		}, []string{"result"}),
		cacheLookup: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "plan_cache_lookup_seconds",
			Help:      "Plan cache read latency",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
		cacheWrite: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "plan_cache_write_seconds",
			Help:      "Plan cache write latency",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
		dbDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "db_query_duration_seconds",
			Help:      "Itinerary store latency by operation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		plans: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "plans_total",
			Help:      "Plan requests by outcome and reason",
		}, []string{"outcome", "reason"}),
		plansCached: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "plans_cached_total",
			Help:      "Plan requests answered from the plan cache, by outcome",
		}, []string{"outcome"}),
		searchNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "search_nodes",
			Help:      "Candidate evaluations per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		searchSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time spent in the backtracking search",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"outcome"}),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "goroutines",
		Help:      "Live goroutines",
	}, func() float64 { return float64(runtime.NumGoroutine()) })
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "plan_cache_hit_ratio",
		Help:      "Plan cache hits over lookups since start",
	}, func() float64 {
		hits := m.totals.cacheHits.Load()
		return ratio(hits, hits+m.totals.cacheMisses.Load())
	})

	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	m.httpRequests.WithLabelValues(method, route, code).Inc()
	m.totals.requests.Add(1)
	m.totals.requestNanos.Add(uint64(duration))
}

// RecordCacheOperation records a plan cache lookup.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLookup.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		m.totals.cacheHits.Add(1)
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
	m.totals.cacheMisses.Add(1)
}

// ObserveCacheWrite tracks plan cache writes.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records itinerary store timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.totals.dbQueries.Add(1)
	m.totals.dbNanos.Add(uint64(duration))
}

// ObservePlan records the outcome and search effort of one engine run.
func (m *MetricsService) ObservePlan(result *scheduler.Result) {
	if m == nil || result == nil {
		return
	}
	m.countPlan(result.Outcome, result.Reason)
	m.searchNodes.Observe(float64(result.Stats.Nodes))
	m.searchSeconds.WithLabelValues(string(result.Outcome)).Observe(result.Stats.Elapsed.Seconds())
	if result.Stats.Truncated {
		m.totals.plansTruncated.Add(1)
	}
	m.totals.searches.Add(1)
	m.totals.searchNodes.Add(uint64(result.Stats.Nodes))
}

// ObserveCachedPlan records a plan answered from the cache. It counts as a plan but not as a
// search, so search histograms and the node average are untouched.
func (m *MetricsService) ObserveCachedPlan(outcome scheduler.Outcome, reason scheduler.Reason) {
	if m == nil {
		return
	}
	m.countPlan(outcome, reason)
	m.plansCached.WithLabelValues(string(outcome)).Inc()
	m.totals.plansCached.Add(1)
}

func (m *MetricsService) countPlan(outcome scheduler.Outcome, reason scheduler.Reason) {
	m.plans.WithLabelValues(string(outcome), string(reason)).Inc()
	if outcome == scheduler.OutcomeScheduled {
		m.totals.plansScheduled.Add(1)
	} else {
		m.totals.plansEmpty.Add(1)
	}
}

// Snapshot returns aggregated metrics for the summary endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	t := &m.totals
	hits, misses := t.cacheHits.Load(), t.cacheMisses.Load()
	requests, dbQueries := t.requests.Load(), t.dbQueries.Load()
	scheduled, empty := t.plansScheduled.Load(), t.plansEmpty.Load()

	return models.SystemMetrics{
		CacheHitRatio:            ratio(hits, hits+misses),
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: ratio(t.requestNanos.Load(), requests) / float64(time.Millisecond),
		DBQueryCount:             dbQueries,
		AverageDBQueryDurationMs: ratio(t.dbNanos.Load(), dbQueries) / float64(time.Millisecond),
		PlansScheduled:           scheduled,
		PlansNoSolution:          empty,
		PlansTruncated:           t.plansTruncated.Load(),
		PlansCached:              t.plansCached.Load(),
		AverageSearchNodes:       ratio(t.searchNodes.Load(), t.searches.Load()),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
