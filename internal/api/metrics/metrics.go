// Package metrics defines the custom Prometheus metrics of the booking API.
// All metrics register with the default registry on package init through
// promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login outcomes.
// Label:
//   - result: "success", "not_found", "invalid_password", "locked" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts requests the access gate turned away.
// Label:
//   - reason: "missing" or "invalid"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected for a missing or invalid bearer token.",
	},
	[]string{"reason"},
)

// ── Bookings ──────────────────────────────────────────────────────────────────

// BookingOperationsTotal counts successful booking mutations.
// Label:
//   - op: "create", "update" or "delete"
var BookingOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_operations_total",
		Help:      "Total number of successful booking mutations, by operation.",
	},
	[]string{"op"},
)

// ── Error reporting ───────────────────────────────────────────────────────────

// ErrorReportsTotal counts deliveries to each telemetry sink.
// Labels:
//   - sink: "mongo", "sentry", ...
//   - result: "ok" or "error"
var ErrorReportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "error_reports_total",
		Help:      "Total number of error reports delivered, by sink and result.",
	},
	[]string{"sink", "result"},
)

// ReportQueueDroppedTotal counts reports discarded because the queue was full.
var ReportQueueDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_queue_dropped_total",
		Help:      "Total number of error reports dropped because the dispatcher queue was full.",
	},
)

// ReportQueueDepth is the number of reports waiting for a worker.
var ReportQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "report_queue_depth",
		Help:      "Current number of error reports pending in the dispatcher queue.",
	},
)
