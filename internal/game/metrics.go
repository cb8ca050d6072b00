// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for dispatched actions.
const (
	ResultOK       = "ok"
	ResultNoOp     = "noop"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Actions counts dispatched actions by kind and result.
// Use RegisterMetrics to register this with a Prometheus registry.
var Actions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "starmap_actions_total",
		Help: "Total number of dispatched player actions",
	},
	[]string{"kind", "result"},
)

// Ticks counts simulation ticks.
var Ticks = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "starmap_ticks_total",
		Help: "Total number of simulation ticks",
	},
)

// TickDuration observes how long each tick takes to process.
var TickDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "starmap_tick_duration_seconds",
		Help:    "Simulation tick processing time in seconds",
		Buckets: prometheus.DefBuckets,
	},
)

// RegisterMetrics registers game metrics with the given registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Actions, Ticks, TickDuration)
}

func recordAction(kind ActionKind, result string) {
	Actions.WithLabelValues(string(kind), result).Inc()
}

func recordTick(d time.Duration) {
	Ticks.Inc()
	TickDuration.Observe(d.Seconds())
}

func resultOf(outcome Outcome, err error) string {
	switch {
	case err == nil && outcome.NoOp:
		return ResultNoOp
	case err == nil:
		return ResultOK
	case IsGameplayRejection(err):
		return ResultRejected
	default:
		return ResultError
	}
}
