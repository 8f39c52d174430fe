// Package metrics provides Prometheus instrumentation for ARFF loading.
//
// # Overview
//
// The metrics package provides:
//   - Pre-defined counters for parsed rows, skipped lines and parse errors
//   - A load duration histogram per loading mode
//   - A Collector that components hold and that becomes a no-op when disabled
//
// # Basic Usage
//
//	collector := metrics.NewCollector(cfg.Metrics.Enabled)
//	timer := metrics.NewTimer("load")
//	...
//	collector.RowParsed(metrics.ModeStream)
//	collector.ObserveLoad(metrics.ModeBatch, timer.Stop())
//
// All metrics register with the default Prometheus registry on package
// initialization through promauto.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Loading modes used as the "mode" label.
const (
	ModeStream = "stream"
	ModeBatch  = "batch"
)

// Sections of an ARFF file used as the "section" label.
const (
	SectionHeader = "header"
	SectionData   = "data"
)

var (
	// RowsParsed tracks the number of data rows materialized.
	// Labels: mode (stream/batch)
	//
	// Example:
	//	metrics.RowsParsed.WithLabelValues(metrics.ModeStream).Inc()
	RowsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arff_rows_parsed_total",
			Help: "Total number of ARFF data rows parsed",
		},
		[]string{"mode"},
	)

	// LinesSkipped tracks blank, comment and unrecognised header lines.
	// Labels: section (header/data)
	LinesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arff_lines_skipped_total",
			Help: "Total number of ARFF lines skipped",
		},
		[]string{"section"},
	)

	// ParseErrors tracks load failures by error type.
	// Labels: type (errors.ErrorType value)
	ParseErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arff_parse_errors_total",
			Help: "Total number of ARFF parse errors",
		},
		[]string{"type"},
	)

	// LoadDuration tracks the time spent loading a relation, in seconds.
	// For streams it covers the header section only.
	LoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "arff_load_duration_seconds",
			Help: "Time spent loading an ARFF relation",
			Buckets: []float64{
				0.0001, // 100μs - tiny headers
				0.001,  // 1ms
				0.01,   // 10ms - small relations
				0.1,    // 100ms
				1,      // 1s - large relations
				10,     // 10s
			},
		},
		[]string{"mode"},
	)
)

// Collector records loader metrics. A disabled collector drops every
// observation, so callers never need to check the configuration.
// The zero value is a disabled collector. Safe for concurrent use.
type Collector struct {
	enabled bool
}

// NewCollector creates a collector that records to the package metrics
// when enabled is true.
func NewCollector(enabled bool) *Collector {
	return &Collector{enabled: enabled}
}

// Enabled reports whether observations are recorded
func (c *Collector) Enabled() bool {
	return c != nil && c.enabled
}

// RowParsed counts one materialized row
func (c *Collector) RowParsed(mode string) {
	if !c.Enabled() {
		return
	}
	RowsParsed.WithLabelValues(mode).Inc()
}

// RowsParsedN counts n materialized rows
func (c *Collector) RowsParsedN(mode string, n int) {
	if !c.Enabled() || n <= 0 {
		return
	}
	RowsParsed.WithLabelValues(mode).Add(float64(n))
}

// LineSkipped counts one skipped line in the given section
func (c *Collector) LineSkipped(section string) {
	if !c.Enabled() {
		return
	}
	LinesSkipped.WithLabelValues(section).Inc()
}

// ParseError counts one failure of the given error type
func (c *Collector) ParseError(errorType string) {
	if !c.Enabled() {
		return
	}
	ParseErrors.WithLabelValues(errorType).Inc()
}

// ObserveLoad records the duration of a load in the given mode
func (c *Collector) ObserveLoad(mode string, d time.Duration) {
	if !c.Enabled() {
		return
	}
	LoadDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
// The name parameter is for identification in logs.
//
// Example:
//
//	timer := metrics.NewTimer("header")
//	parseHeader()
//	logger.Debug("header parsed", zap.Duration("duration", timer.Stop()))
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the timer name
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. The timer can be
// stopped multiple times, each returning the total elapsed time.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
