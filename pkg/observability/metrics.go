package observability

import (
	"strings"
	"sync"
	"time"
)

// Metrics records event counters and operation durations. Everything the
// ranking service observes is one of the two.
type Metrics interface {
	// Counter adds value to the named counter.
	Counter(name string, value int64, tags ...Tag)

	// Timing records one observed duration.
	Timing(name string, duration time.Duration, tags ...Tag)
}

// Tag labels a metric with a key-value pair.
type Tag struct {
	Key   string
	Value string
}

// T builds a Tag.
func T(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// NoopMetrics discards everything recorded on it.
type NoopMetrics struct{}

func (NoopMetrics) Counter(name string, value int64, tags ...Tag)           {}
func (NoopMetrics) Timing(name string, duration time.Duration, tags ...Tag) {}

// InMemoryMetrics keeps recorded metrics in process memory. It backs the
// tests and serves as the default sink when no external backend is wired.
type InMemoryMetrics struct {
	mu       sync.RWMutex
	counters map[string]int64
	timings  map[string][]time.Duration
}

// NewInMemoryMetrics creates an empty collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters: make(map[string]int64),
		timings:  make(map[string][]time.Duration),
	}
}

func (m *InMemoryMetrics) Counter(name string, value int64, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[metricKey(name, tags)] += value
}

func (m *InMemoryMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := metricKey(name, tags)
	m.timings[key] = append(m.timings[key], duration)
}

// GetCounter returns the current value of a counter.
func (m *InMemoryMetrics) GetCounter(name string, tags ...Tag) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[metricKey(name, tags)]
}

// GetTimings returns every duration recorded under the name and tags.
func (m *InMemoryMetrics) GetTimings(name string, tags ...Tag) []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.timings[metricKey(name, tags)]
}

// Reset drops everything recorded so far.
func (m *InMemoryMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]int64)
	m.timings = make(map[string][]time.Duration)
}

func metricKey(name string, tags []Tag) string {
	if len(tags) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	for _, t := range tags {
		b.WriteByte(':')
		b.WriteString(t.Key)
		b.WriteByte('=')
		b.WriteString(t.Value)
	}
	return b.String()
}

// Standard metric names used throughout triage.
const (
	// Operation metrics
	MetricOperationTotal    = "triage.operation.total"
	MetricOperationDuration = "triage.operation.duration"
	MetricOperationErrors   = "triage.operation.errors"

	// Ranking metrics
	MetricBatchesAnalyzed = "triage.ranking.batches_analyzed"
	MetricTasksScored     = "triage.ranking.tasks_scored"
	MetricCyclesDetected  = "triage.ranking.cycles_detected"

	// HTTP metrics
	MetricHTTPRequests        = "triage.http.requests"
	MetricHTTPRequestDuration = "triage.http.request_duration"
)
