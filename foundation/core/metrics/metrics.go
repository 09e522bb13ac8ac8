// File: metrics.go
// Title: Runtime Metrics
// Description: Prometheus counters describing raise/catch traffic, fatal
//              terminations, logger throughput and live error values.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package metrics exposes Prometheus instrumentation for the error, catch
// and log packages. Every method is safe on a nil *Metrics, which records
// nothing.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "elm"

// Metrics groups the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	raises      prometheus.Counter
	catches     prometheus.Counter
	fatal       prometheus.Counter
	logBytes    *prometheus.CounterVec
	logFailures *prometheus.CounterVec
	liveErrors  prometheus.Gauge
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		raises: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "raises_total",
			Help:      "Number of errors raised into a protected region.",
		}),
		catches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catches_total",
			Help:      "Number of protected regions resumed by a raise.",
		}),
		fatal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fatal_total",
			Help:      "Number of raises with no protected region established.",
		}),
		logBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_bytes_total",
			Help:      "Bytes written by loggers.",
		}, []string{"logger"}),
		logFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_failures_total",
			Help:      "Failed logger writes.",
		}, []string{"logger"}),
		liveErrors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "errors_live",
			Help:      "Error values constructed and not yet destroyed.",
		}),
	}

	m.registry.MustRegister(m.raises, m.catches, m.fatal, m.logBytes, m.logFailures, m.liveErrors)
	return m
}

var (
	defaultMetrics *Metrics
	defaultOnce    sync.Once
)

// Default returns the process-wide Metrics instance.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Raise records a raise that landed on a frame.
func (m *Metrics) Raise() {
	if m != nil {
		m.raises.Inc()
	}
}

// Catch records a protected region resumed with an error.
func (m *Metrics) Catch() {
	if m != nil {
		m.catches.Inc()
	}
}

// Fatal records an uncaught raise.
func (m *Metrics) Fatal() {
	if m != nil {
		m.fatal.Inc()
	}
}

// LogWrite records n bytes written by the named logger.
func (m *Metrics) LogWrite(logger string, n int) {
	if m != nil && n > 0 {
		m.logBytes.WithLabelValues(logger).Add(float64(n))
	}
}

// LogFailure records a failed write by the named logger.
func (m *Metrics) LogFailure(logger string) {
	if m != nil {
		m.logFailures.WithLabelValues(logger).Inc()
	}
}

// ErrorCreated increments the live error gauge.
func (m *Metrics) ErrorCreated() {
	if m != nil {
		m.liveErrors.Inc()
	}
}

// ErrorDestroyed decrements the live error gauge.
func (m *Metrics) ErrorDestroyed() {
	if m != nil {
		m.liveErrors.Dec()
	}
}
