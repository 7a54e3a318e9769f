package providers

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"avd/internal/structures"
)

func metricsConfig(enabled bool) *structures.Config {
	return &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: enabled},
	}
}

func swapRegistry() func() {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	return func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	m := NewMetricsProvider(metricsConfig(false))
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
	m.SetRecordsTotal("clients", 10)
	m.IncStoreOperation("client_create", true)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	defer swapRegistry()()

	m := NewMetricsProvider(metricsConfig(true))
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	defer swapRegistry()()

	m := NewMetricsProvider(metricsConfig(true))

	// These should not panic
	m.IncRequestsTotal("/clients", 200)
	m.IncRequestsTotal("/clients", 404)
	m.ObserveRequestDuration("/clients", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.SetRecordsTotal("clients", 42)
	m.IncStoreOperation("client_create", true)
	m.IncStoreOperation("client_create", false)
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
