// Package metrics exposes pool statistics as Prometheus metrics.
//
// A PoolCollector reads a Pool's counter snapshot on every scrape, so pools
// pay no per-operation metrics cost beyond the atomic counters they already
// maintain.
//
//	collector := metrics.NewPoolCollector("shared", pool.Shared())
//	metrics.MustRegister(collector)
//	http.Handle("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/repool/repool/pkg/pool"
)

// PoolCollector implements prometheus.Collector over one pool's statistics.
type PoolCollector struct {
	pool *pool.Pool

	allocated       *prometheus.Desc
	reused          *prometheus.Desc
	returned        *prometheus.Desc
	live            *prometheus.Desc
	doubleReturns   *prometheus.Desc
	useAfterReturns *prometheus.Desc
	resetFailures   *prometheus.Desc
}

// NewPoolCollector creates a collector for p. The name labels every metric,
// so multiple pools can be registered side by side.
func NewPoolCollector(name string, p *pool.Pool) *PoolCollector {
	labels := prometheus.Labels{"pool": name}
	return &PoolCollector{
		pool: p,
		allocated: prometheus.NewDesc("repool_allocated_total",
			"Instances constructed because no pooled one was available.", nil, labels),
		reused: prometheus.NewDesc("repool_reused_total",
			"Borrows served from a bucket.", nil, labels),
		returned: prometheus.NewDesc("repool_returned_total",
			"Returns accepted into a bucket.", nil, labels),
		live: prometheus.NewDesc("repool_live",
			"Outstanding borrows.", nil, labels),
		doubleReturns: prometheus.NewDesc("repool_double_returns_total",
			"Rejected duplicate returns.", nil, labels),
		useAfterReturns: prometheus.NewDesc("repool_use_after_returns_total",
			"Stale-handle releases detected in checked mode.", nil, labels),
		resetFailures: prometheus.NewDesc("repool_reset_failures_total",
			"Reset actions that panicked and were contained.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.allocated
	ch <- c.reused
	ch <- c.returned
	ch <- c.live
	ch <- c.doubleReturns
	ch <- c.useAfterReturns
	ch <- c.resetFailures
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.pool.Stats()
	ch <- prometheus.MustNewConstMetric(c.allocated, prometheus.CounterValue, float64(s.Allocated))
	ch <- prometheus.MustNewConstMetric(c.reused, prometheus.CounterValue, float64(s.Reused))
	ch <- prometheus.MustNewConstMetric(c.returned, prometheus.CounterValue, float64(s.Returned))
	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(s.Live))
	ch <- prometheus.MustNewConstMetric(c.doubleReturns, prometheus.CounterValue, float64(s.DoubleReturns))
	ch <- prometheus.MustNewConstMetric(c.useAfterReturns, prometheus.CounterValue, float64(s.UseAfterReturns))
	ch <- prometheus.MustNewConstMetric(c.resetFailures, prometheus.CounterValue, float64(s.ResetFailures))
}

// MustRegister registers collectors with the default registry, panicking on
// duplicates.
func MustRegister(cs ...prometheus.Collector) {
	prometheus.MustRegister(cs...)
}

// Handler returns an HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures the duration of an operation for bench reporting.
type Timer struct {
	name  string
	start time.Time
}

// NewTimer starts a named timer.
func NewTimer(name string) *Timer {
	return &Timer{name: name, start: time.Now()}
}

// Stop returns the elapsed time since the timer started.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// Name returns the timer's name.
func (t *Timer) Name() string { return t.name }
