// Package metrics defines and registers all custom Prometheus metrics for the
// FarmLink auth service. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "farmlink_auth"

// RegistrationsTotal counts registration attempts.
// Labels:
//   - role: the requested role name when it is a seeded role, else "unknown"
//   - outcome: "success", "duplicate_email", "unknown_role", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by role and outcome.",
	},
	[]string{"role", "outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "rejected" (bad credentials), or "unavailable"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsRevokedTotal counts sessions revoked through logout.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions revoked via logout.",
	},
)

// GuardDecisionsTotal counts session-guard evaluations on protected routes.
// Label:
//   - state: terminal guard state, "authorized" or "unauthorized"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of session guard decisions, by terminal state.",
	},
	[]string{"state"},
)

// PasswordHashDuration measures how long one bcrypt hash computation takes.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of password hash computations.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
