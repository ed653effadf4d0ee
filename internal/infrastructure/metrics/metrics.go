package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "messaging_messages_sent_total",
		Help: "Messages stored, by whether they carry a job context.",
	}, []string{"with_job_context"})

	messagesRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "messaging_messages_read_total",
		Help: "Messages flipped from unread to read.",
	})

	briefTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "messaging_brief_transitions_total",
		Help: "Brief lifecycle events by resulting state.",
	}, []string{"to"})

	realtimeSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "messaging_realtime_subscribers",
		Help: "Currently registered realtime subscriptions.",
	})

	realtimeDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "messaging_realtime_dropped_events_total",
		Help: "Events dropped because a subscriber buffer was full.",
	})

	notificationDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "messaging_notification_deliveries_total",
		Help: "Webhook delivery outcomes for notifications.",
	}, []string{"outcome"})

	notificationQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "messaging_notification_queue_depth",
		Help: "Notifications pending webhook delivery.",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "messaging_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "endpoint", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "messaging_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})
)

// RecordRequest counts one finished HTTP request.
func RecordRequest(method, endpoint, status string, duration float64) {
	httpRequests.WithLabelValues(method, endpoint, status).Inc()
	httpDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordMessageSent counts a stored message.
func RecordMessageSent(withJobContext bool) {
	label := "false"
	if withJobContext {
		label = "true"
	}
	messagesSent.WithLabelValues(label).Inc()
}

// RecordMessagesRead counts messages flipped to read in one write.
func RecordMessagesRead(n int64) {
	messagesRead.Add(float64(n))
}

// RecordBriefTransition counts a brief lifecycle event.
func RecordBriefTransition(to string) {
	briefTransitions.WithLabelValues(to).Inc()
}

// SubscriberRegistered tracks a realtime subscription being added.
func SubscriberRegistered() { realtimeSubscribers.Inc() }

// SubscriberGone tracks a realtime subscription being removed.
func SubscriberGone() { realtimeSubscribers.Dec() }

// RecordDroppedEvent counts a realtime event dropped on a full buffer.
func RecordDroppedEvent() { realtimeDropped.Inc() }

// RecordNotificationDelivery counts one delivery outcome.
func RecordNotificationDelivery(outcome string) {
	notificationDeliveries.WithLabelValues(outcome).Inc()
}

// SetNotificationQueueDepth records the current pending backlog.
func SetNotificationQueueDepth(depth int64) {
	notificationQueueDepth.Set(float64(depth))
}
