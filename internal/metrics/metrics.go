package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "linkedin_carousel"

// Metrics holds the extraction pipeline collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	Candidates      *prometheus.CounterVec
	PatternFailures *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	Extractions     *prometheus.CounterVec
	ExtractDuration prometheus.Histogram
	Swept           *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Candidates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Candidate post nodes processed, by outcome and reason",
		}, []string{"outcome", "reason"}),
		PatternFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pattern_failures_total",
			Help:      "Structural patterns that failed to evaluate",
		}, []string{"pattern"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Source cache lookups by result",
		}, []string{"result"}),
		Extractions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Extraction requests by result",
		}, []string{"result"}),
		ExtractDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Wall time of extraction sessions",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20, 30},
		}),
		Swept: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swept_entries_total",
			Help:      "Stored entries removed by periodic sweeps",
		}, []string{"kind"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Command surface requests",
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) Candidate(outcome, reason string) {
	if m == nil {
		return
	}
	m.Candidates.WithLabelValues(outcome, reason).Inc()
}

func (m *Metrics) PatternFailure(pattern string) {
	if m == nil {
		return
	}
	m.PatternFailures.WithLabelValues(pattern).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) Extraction(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.Extractions.WithLabelValues(result).Inc()
	m.ExtractDuration.Observe(d.Seconds())
}

func (m *Metrics) SweptEntries(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Swept.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) Request(route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, statusClass(status)).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
