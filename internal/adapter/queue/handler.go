package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"orderintake/internal/usecase"
)

// Handler processes a single delivery and reports what should happen to
// it. It must be idempotent: the broker guarantees at-least-once, not
// exactly-once, and a lost consumer lock means the same delivery can be
// handled twice.
type Handler interface {
	Handle(ctx context.Context, d amqp.Delivery) usecase.Outcome
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx context.Context, d amqp.Delivery) usecase.Outcome

func (f HandlerFunc) Handle(ctx context.Context, d amqp.Delivery) usecase.Outcome {
	return f(ctx, d)
}
