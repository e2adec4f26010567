// Package metrics defines and registers all custom Prometheus metrics for the
// ArcLab API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "arclab"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration submissions that produced a pending
// verification record.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registrations accepted into pending verification.",
	},
)

// OTPVerificationsTotal counts OTP verification attempts.
// Label:
//   - result: "ok", "invalid", "expired", "not_found", or "error"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verification attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password reset completions.
// Label:
//   - result: "ok", "invalid", "expired", "not_found", "password_reuse", or "error"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset attempts, by result.",
	},
	[]string{"result"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailsEnqueuedTotal counts OTP mails handed to the dispatcher.
// Label:
//   - purpose: "register", "resend", or "reset"
var MailsEnqueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mails_enqueued_total",
		Help:      "Total number of OTP mails enqueued for delivery.",
	},
	[]string{"purpose"},
)

// MailsSentTotal counts delivery attempts performed by dispatcher workers.
// Labels:
//   - purpose: "register", "resend", or "reset"
//   - result: "ok" or "error"
var MailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mails_sent_total",
		Help:      "Total number of OTP mail delivery attempts, by purpose and result.",
	},
	[]string{"purpose", "result"},
)

// MailDedupTotal counts duplicate-send suppression decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new mail, sent)
var MailDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_dedup_total",
		Help:      "Total number of sent-mail guard checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the current number of mails waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of mails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Agent metrics ─────────────────────────────────────────────────────────────

// AgentInvocationsTotal counts agent conversation turns.
// Label:
//   - result: "ok" or "degraded" (provider failure answered with an apology)
var AgentInvocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agent_invocations_total",
		Help:      "Total number of agent invocations, by result.",
	},
	[]string{"result"},
)

// AgentInvocationDuration measures one invocation end-to-end, including
// provider round trips.
// Label:
//   - result: "ok" or "degraded"
var AgentInvocationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "agent_invocation_duration_seconds",
		Help:      "Duration of agent invocations from request to combined text+audio result.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"result"},
)
