package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog_bot"

var (
	// Updates входящие апдейты по типу события
	Updates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updates_total",
		Help:      "Inbound events handled by the conversation engine.",
	}, []string{"kind"})

	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_transitions_total",
		Help:      "Conversation state transitions.",
	}, []string{"from", "to"})

	// Inquiries result: committed | duplicate | failed
	Inquiries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inquiries_total",
		Help:      "Inquiry commit attempts by result.",
	}, []string{"result"})

	// Errors kind: not_found | validation | malformed | internal
	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "errors_total",
		Help:      "Recovered engine errors by kind.",
	}, []string{"kind"})

	HandleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "handle_duration_seconds",
		Help:      "Time spent handling one event, including store access.",
		Buckets:   prometheus.DefBuckets,
	})
)
