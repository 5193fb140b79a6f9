// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters for the submission lifecycle
// on a dedicated registry, served at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Submissions           prometheus.Counter
	Confirmations         *prometheus.CounterVec
	ModerationActions     *prometheus.CounterVec
	MaintenanceRejections prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Submissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "citazioni_submissions_total",
			Help: "Quote submissions stored as pending.",
		}),
		Confirmations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "citazioni_confirmations_total",
			Help: "Confirmation link visits by outcome.",
		}, []string{"outcome"}),
		ModerationActions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "citazioni_moderation_actions_total",
			Help: "Admin moderation operations by action.",
		}, []string{"action"}),
		MaintenanceRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "citazioni_maintenance_rejections_total",
			Help: "Public requests rejected while the maintenance gate was closed.",
		}),
	}
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
