// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package starmap

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Candidate and build result labels.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	StatusOK       = "ok"
	StatusFailed   = "failed"
)

// BuildCandidates counts generated candidates by validation result.
// Use RegisterMetrics to register this with a Prometheus registry.
var BuildCandidates = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "starmap_build_candidates_total",
		Help: "Total number of generated body candidates by result",
	},
	[]string{"result"},
)

// Builds counts completed map constructions by status.
// Use RegisterMetrics to register this with a Prometheus registry.
var Builds = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "starmap_builds_total",
		Help: "Total number of map constructions by status",
	},
	[]string{"status"},
)

// RegisterMetrics registers starmap metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(BuildCandidates)
	reg.MustRegister(Builds)
}
