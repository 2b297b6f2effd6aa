package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	domain "orderintake/internal/entity"
)

// Outcome is the tagged result of one processing attempt. The consumer
// harness interprets it: Ack removes the message, Retry leaves it for
// redelivery, Drop discards it as poison.
type Outcome int

const (
	Ack Outcome = iota
	Retry
	Drop
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Retry:
		return "retry"
	case Drop:
		return "drop"
	}
	return "unknown"
}

// ProcessOrder consumes one queued submission per invocation. The two
// failure classes are deliberately distinct: a payload that cannot be
// deserialized can never succeed and is dropped, while a store write
// fault is transient and the message is left for redelivery.
type ProcessOrder struct {
	store OrderStore
	log   *slog.Logger
}

func NewProcessOrder(store OrderStore, log *slog.Logger) *ProcessOrder {
	return &ProcessOrder{store: store, log: log}
}

func (uc *ProcessOrder) Execute(ctx context.Context, payload []byte) Outcome {
	var msg OrderSubmittedMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		uc.log.Error("order payload undecodable, dropping",
			"err", err, "body", string(payload))
		return Drop
	}

	order := msg.Order()
	order.Status = domain.StatusProcessing

	if err := uc.store.Upsert(ctx, order); err != nil {
		uc.log.Error("order upsert failed, leaving for redelivery",
			"err", err, "order_id", order.ID)
		return Retry
	}

	uc.log.Info("order persisted", "order_id", order.ID, "total", order.TotalAmount)
	return Ack
}
