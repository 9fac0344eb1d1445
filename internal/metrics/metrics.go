// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

// Package metrics exposes the application's Prometheus instrumentation.
//
// All collectors hang off a private registry owned by the [Metrics] value,
// so tests can construct as many instances as they like without tripping
// over duplicate registration in the global default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector the server publishes on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	// PollsCreated counts polls created since process start.
	PollsCreated prometheus.Counter

	// VotesCast counts first ballots accepted by the voting protocol.
	VotesCast prometheus.Counter

	// VotesChanged counts ballots moved to a different option.
	VotesChanged prometheus.Counter

	// PollsSwept counts expired polls removed by the cleanup worker.
	PollsSwept prometheus.Counter

	// PollsTotal and PollsActive mirror the poll table counts. The
	// cleanup worker refreshes them on every sweep.
	PollsTotal  prometheus.Gauge
	PollsActive prometheus.Gauge

	// RequestsTotal and RequestDuration instrument the HTTP surface,
	// labelled by method and response status class.
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New constructs a [Metrics] with all collectors registered on a fresh
// private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		PollsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pollivu",
			Name:      "polls_created_total",
			Help:      "Polls created since process start.",
		}),
		VotesCast: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pollivu",
			Name:      "votes_cast_total",
			Help:      "First ballots accepted by the voting protocol.",
		}),
		VotesChanged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pollivu",
			Name:      "votes_changed_total",
			Help:      "Ballots reassigned to a different option.",
		}),
		PollsSwept: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pollivu",
			Name:      "polls_swept_total",
			Help:      "Expired polls removed by the cleanup worker.",
		}),
		PollsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "pollivu",
			Name:      "polls_total",
			Help:      "Polls currently stored.",
		}),
		PollsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "pollivu",
			Name:      "polls_active",
			Help:      "Polls currently open and unexpired.",
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pollivu",
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by method and status class.",
		}, []string{"method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pollivu",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and status class.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
}

// Handler returns the HTTP handler serving the /metrics endpoint for this
// instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StatusClass renders an HTTP status code as its metric label ("2xx",
// "4xx", ...). Unwritten responses count as 200s, matching net/http.
func StatusClass(status int) string {
	switch {
	case status == 0:
		return "2xx"
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
