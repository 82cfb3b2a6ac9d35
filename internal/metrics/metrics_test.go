package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Candidate("accepted", "")
	m.Candidate("rejected", "primary_video")
	m.Candidate("rejected", "primary_video")
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.SweptEntries("source", 3)
	m.SweptEntries("session", 0)
	m.Extraction("ok", 2*time.Second)
	m.Request("extract", 409)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Candidates.WithLabelValues("rejected", "primary_video")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Swept.WithLabelValues("source")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("extract", "4xx")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Swept))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Candidate("accepted", "")
		m.PatternFailure("css:p")
		m.CacheLookup(true)
		m.Extraction("ok", time.Second)
		m.SweptEntries("source", 1)
		m.Request("extract", 200)
	})
}
