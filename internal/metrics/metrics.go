// Package metrics exposes the prometheus collectors of the web front end.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "investiga"

type Metrics struct {
	registry          *prometheus.Registry
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	backendCalls      *prometheus.CounterVec
	backendDuration   *prometheus.HistogramVec
	enrollmentActions *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
	jobRuns           *prometheus.CounterVec
}

// New registers every collector on a dedicated registry together with the
// process and Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_calls_total",
			Help:      "REST backend calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_call_duration_seconds",
			Help:      "REST backend call latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		enrollmentActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrollment_actions_total",
			Help:      "Enrollment actions dispatched, by action and outcome.",
		}, []string{"action", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_lookups_total",
			Help:      "Query cache lookups by resource and result.",
		}, []string{"resource", "result"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Background job runs by job and outcome.",
		}, []string{"job", "outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.backendCalls, m.backendDuration,
		m.enrollmentActions, m.cacheLookups, m.jobRuns,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) ObserveBackendCall(operation string, status int, d time.Duration) {
	m.backendCalls.WithLabelValues(operation, outcome(status)).Inc()
	m.backendDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) ObserveEnrollmentAction(action, outcome string) {
	m.enrollmentActions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) CacheHit(resource string) {
	m.cacheLookups.WithLabelValues(resource, "hit").Inc()
}

func (m *Metrics) CacheMiss(resource string) {
	m.cacheLookups.WithLabelValues(resource, "miss").Inc()
}

func (m *Metrics) ObserveJob(job string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.jobRuns.WithLabelValues(job, result).Inc()
}

func outcome(status int) string {
	switch {
	case status == 0:
		return "transport_error"
	case status < 400:
		return "success"
	case status < 500:
		return "client_error"
	default:
		return "server_error"
	}
}
