// Package metrics defines and registers all custom Prometheus metrics for the
// bistro API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bistro"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected credentials. The reason never reaches the
// client; this counter is where it surfaces.
// Label:
//   - reason: "missing_credential", "malformed_header", "invalid_token" or "expired_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected bearer credentials, by internal reason.",
	},
	[]string{"reason"},
)

// ── Channel metrics ───────────────────────────────────────────────────────────

// ConnectionsActive tracks currently open channel connections.
var ConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_connections_active",
		Help:      "Current number of open WebSocket connections.",
	},
)

// RoomJoinsTotal counts join attempts.
// Labels:
//   - kind: "user" or "admin"
//   - result: "ok" or the rejection code (e.g. "forbidden")
var RoomJoinsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "room_joins_total",
		Help:      "Total number of room join attempts.",
	},
	[]string{"kind", "result"},
)

// ChatMessagesTotal counts chat messages received on the channel.
// Labels:
//   - sender: "user" or "admin"
//   - result: "relayed" or the rejection code (e.g. "persistence_failure")
var ChatMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Total number of chat messages handled, by sender and outcome.",
	},
	[]string{"sender", "result"},
)

// ── Broadcast metrics ─────────────────────────────────────────────────────────

// BroadcastsTotal counts mutation broadcasts.
// Labels:
//   - event: "newReservation" or "reservationUpdated"
//   - result: "delivered", "dropped" (queue full) or "failed"
var BroadcastsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcasts_total",
		Help:      "Total number of mutation broadcasts, by event and outcome.",
	},
	[]string{"event", "result"},
)

// BroadcastQueueDepth tracks events waiting for the broadcast worker.
var BroadcastQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "broadcast_queue_depth",
		Help:      "Current number of broadcasts pending in the delivery queue.",
	},
)

// DeliveryDropsTotal counts frames dropped because a connection's send
// buffer was full.
var DeliveryDropsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_drops_total",
		Help:      "Total number of frames dropped for slow connections.",
	},
)

// DeliveryLatency measures the time from enqueue to fan-out for broadcasts.
var DeliveryLatency = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "broadcast_delivery_seconds",
		Help:      "Duration from broadcast enqueue to delivery hand-off.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
