// Package metrics defines and registers all custom Prometheus metrics
// for the VolunteerHub API. It is the single source of truth for metric
// names, labels, and help strings; metrics register with the default
// registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "volunteerhub"

// AuthDecisionsTotal counts access-control decisions at the gate.
// Label:
//   - outcome: "granted", "unauthenticated", or "forbidden"
var AuthDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of access-control decisions, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", "full", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// EventReviewsTotal counts event approval decisions.
// Label:
//   - decision: "approved" or "rejected"
var EventReviewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_reviews_total",
		Help:      "Total number of event review decisions, by decision.",
	},
	[]string{"decision"},
)

// NotificationsEnqueuedTotal counts notifications handed to the
// delivery workers.
// Label:
//   - type: the notification type tag
var NotificationsEnqueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_enqueued_total",
		Help:      "Total number of notifications enqueued for delivery, by type.",
	},
	[]string{"type"},
)

// NotificationQueueDepth tracks pending notifications per worker channel.
// Label:
//   - worker_id: numeric worker index
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each delivery worker channel.",
	},
	[]string{"worker_id"},
)
