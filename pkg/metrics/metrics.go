// Package metrics defines and registers all custom Prometheus metrics for
// the contest backend. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at import time via promauto;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contest"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "already_exists", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ResetRequestsTotal counts forgot-password requests.
// Label:
//   - result: "sent", "throttled", "not_found", "invalid_role",
//     "notification_failed", or "error"
var ResetRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_reset_requests_total",
		Help:      "Total number of password reset requests, by result.",
	},
	[]string{"result"},
)

// ResetCompletionsTotal counts reset-password submissions.
// Label:
//   - result: "reset", "invalid_code", "expired", "no_reset_in_progress",
//     "conflict", or "error"
var ResetCompletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_reset_completions_total",
		Help:      "Total number of password reset submissions, by result.",
	},
	[]string{"result"},
)

// CodeSendDuration measures one-time-code email delivery latency.
var CodeSendDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "code_send_duration_seconds",
		Help:      "Duration of one-time-code email delivery.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Contest metrics ───────────────────────────────────────────────────────────

// ContestsLive tracks the number of contests currently in their live window.
var ContestsLive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "contests_live",
		Help:      "Number of contests currently live.",
	},
)

// ContestSyncsTotal counts live-flag sync passes.
// Label:
//   - result: "ok" or "error"
var ContestSyncsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contest_syncs_total",
		Help:      "Total number of contest live-flag sync passes, by result.",
	},
	[]string{"result"},
)
