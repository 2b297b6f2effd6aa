package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deliveriesSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_deliveries_settled_total",
			Help: "Queue deliveries by settlement decision",
		},
		[]string{"queue", "decision"},
	)

	deadLettered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_dead_lettered_total",
			Help: "Messages routed to the dead-letter exchange",
		},
		[]string{"queue", "reason"},
	)
)
