package queue

import (
	"context"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"orderintake/internal/usecase"
)

// Router manages consumers (one per registered queue) on a single AMQP
// channel and translates each handler Outcome into an ack decision:
//
//	Ack   -> Ack            (message removed)
//	Retry -> Nack requeue   (redelivered; dead-lettered past the ceiling)
//	Drop  -> Nack no-requeue (routed to the DLX for audit)
type Router struct {
	ch            *amqp.Channel
	log           *slog.Logger
	prefetch      int
	callTimeout   time.Duration
	maxDeliveries int64
	registrations []registration
}

type registration struct {
	queueName   string
	handler     Handler
	consumerTag string
}

// --- Options ---

type RouterOption func(*Router)

func WithPrefetch(n int) RouterOption          { return func(r *Router) { r.prefetch = n } }
func WithTimeout(d time.Duration) RouterOption { return func(r *Router) { r.callTimeout = d } }
func WithMaxDeliveries(n int64) RouterOption   { return func(r *Router) { r.maxDeliveries = n } }
func WithLogger(l *slog.Logger) RouterOption   { return func(r *Router) { r.log = l } }

// NewRouter constructs a Router. Defaults: prefetch=50, timeout=10s,
// maxDeliveries=5.
func NewRouter(ch *amqp.Channel, opts ...RouterOption) *Router {
	r := &Router{
		ch:            ch,
		log:           slog.Default(),
		prefetch:      50,
		callTimeout:   10 * time.Second,
		maxDeliveries: 5,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register associates a queue with a handler. Call multiple times for
// multiple queues.
func (r *Router) Register(queueName string, h Handler) {
	r.registrations = append(r.registrations, registration{
		queueName:   queueName,
		handler:     h,
		consumerTag: "c_" + queueName,
	})
}

// Start begins consuming; non-blocking (spawns one goroutine per queue).
// QoS (prefetch) is set per-channel and applies to all consumers on this
// channel.
func (r *Router) Start() error {
	if err := r.ch.Qos(r.prefetch, 0, false); err != nil {
		return err
	}

	for _, reg := range r.registrations {
		deliveries, err := r.ch.Consume(
			reg.queueName,
			reg.consumerTag,
			false, // manual ack
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,
		)
		if err != nil {
			return err
		}

		go func(queueName, tag string, h Handler, msgs <-chan amqp.Delivery) {
			for d := range msgs {
				ctx, cancel := context.WithTimeout(context.Background(), r.callTimeout)
				outcome := h.Handle(ctx, d)
				cancel()
				r.settle(queueName, d, outcome)
			}
			r.log.Info("consumer stopped", "queue", queueName, "tag", tag)
		}(reg.queueName, reg.consumerTag, reg.handler, deliveries)
	}

	return nil
}

func (r *Router) settle(queueName string, d amqp.Delivery, outcome usecase.Outcome) {
	deliveriesSettled.WithLabelValues(queueName, outcome.String()).Inc()

	switch outcome {
	case usecase.Ack:
		_ = d.Ack(false)
	case usecase.Drop:
		r.log.Warn("dropping poison message to dlx",
			"queue", queueName, "message_id", d.MessageId)
		deadLettered.WithLabelValues(queueName, "poison").Inc()
		_ = d.Nack(false, false)
	case usecase.Retry:
		count := DeliveryCount(d)
		if count+1 >= r.maxDeliveries {
			r.log.Error("delivery limit reached, dead-lettering",
				"queue", queueName, "message_id", d.MessageId, "deliveries", count+1)
			deadLettered.WithLabelValues(queueName, "delivery_limit").Inc()
			_ = d.Nack(false, false)
			return
		}
		r.log.Warn("handler asked for redelivery",
			"queue", queueName, "message_id", d.MessageId, "deliveries", count+1)
		_ = d.Nack(false, true)
	}
}

// DeliveryCount reads the broker-maintained redelivery counter. Quorum
// queues stamp x-delivery-count starting from the first redelivery, so
// a first attempt reads as 0.
func DeliveryCount(d amqp.Delivery) int64 {
	v, ok := d.Headers["x-delivery-count"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	}
	return 0
}
