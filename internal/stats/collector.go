// Package stats provides a unified interface for collecting fetch metrics.
package stats

// Metric names used throughout the library.
const (
	MetricFetches      = "chunkreader_fetches_total"
	MetricFetchErrors  = "chunkreader_fetch_errors_total"
	MetricNotFound     = "chunkreader_not_found_total"
	MetricHTTPErrors   = "chunkreader_http_errors_total"
	MetricIOErrors     = "chunkreader_io_errors_total"
	MetricFetchedBytes = "chunkreader_fetched_bytes"
	MetricFetchSeconds = "chunkreader_fetch_seconds"
	MetricInFlight     = "chunkreader_fetches_in_flight"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
