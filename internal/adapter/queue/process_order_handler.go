package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"orderintake/internal/usecase"
)

// ProcessOrderHandler feeds raw delivery bodies to the processing use
// case. All classification (poison vs transient) happens there; this
// adapter only carries the Outcome back to the Router.
type ProcessOrderHandler struct {
	proc *usecase.ProcessOrder
}

func NewProcessOrderHandler(proc *usecase.ProcessOrder) *ProcessOrderHandler {
	return &ProcessOrderHandler{proc: proc}
}

func (h *ProcessOrderHandler) Handle(ctx context.Context, d amqp.Delivery) usecase.Outcome {
	return h.proc.Execute(ctx, d.Body)
}

var _ Handler = (*ProcessOrderHandler)(nil)
