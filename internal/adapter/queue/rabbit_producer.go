package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"orderintake/internal/usecase"
)

// Topology names the broker objects the pipeline relies on. Declared
// once at startup by the producer; the consumer assumes they exist.
type Topology struct {
	Exchange   string
	RoutingKey string
	Queue      string

	DLX string // dead-letter exchange
	DLQ string // dead-letter queue bound to DLX

	// MaxDeliveries is the delivery-count ceiling. Set as x-delivery-limit
	// on the quorum queue; the Router applies the same ceiling itself so
	// dead-lettering does not depend on broker support alone.
	MaxDeliveries int64
}

func DefaultTopology() Topology {
	return Topology{
		Exchange:      "orders",
		RoutingKey:    "order.submitted",
		Queue:         "order.submitted.q",
		DLX:           "orders.dlx",
		DLQ:           "order.submitted.dlq",
		MaxDeliveries: 5,
	}
}

// RabbitProducer implements usecase.OrderQueue.
type RabbitProducer struct {
	ch  *amqp.Channel
	top Topology
}

// NewRabbitProducer sets up the exchanges, queues, and bindings once at
// startup. The main queue is a quorum queue with a delivery limit and a
// dead-letter exchange: a message nacked without requeue, or redelivered
// past the limit, lands in the DLQ for manual inspection.
func NewRabbitProducer(ch *amqp.Channel, top Topology) (*RabbitProducer, error) {
	// dead-letter side first, so the main queue can reference it
	if err := ch.ExchangeDeclare(top.DLX, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare dlx: %w", err)
	}
	dlq, err := ch.QueueDeclare(top.DLQ, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare dlq: %w", err)
	}
	if err := ch.QueueBind(dlq.Name, "", top.DLX, false, nil); err != nil {
		return nil, fmt.Errorf("bind dlq: %w", err)
	}

	if err := ch.ExchangeDeclare(top.Exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	q, err := ch.QueueDeclare(top.Queue, true, false, false, false, amqp.Table{
		"x-queue-type":           "quorum",
		"x-delivery-limit":       top.MaxDeliveries,
		"x-dead-letter-exchange": top.DLX,
	})
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, top.RoutingKey, top.Exchange, false, nil); err != nil {
		return nil, fmt.Errorf("queue bind: %w", err)
	}

	// publisher confirms: PublishSubmitted must not report success for a
	// message the broker never took responsibility for
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	return &RabbitProducer{ch: ch, top: top}, nil
}

// PublishSubmitted hands one serialized order to the broker.
func (p *RabbitProducer) PublishSubmitted(ctx context.Context, msg usecase.OrderSubmittedMsg) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		MessageId:    msg.ID,
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, p.top.Exchange, p.top.RoutingKey, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

var _ usecase.OrderQueue = (*RabbitProducer)(nil)
