package kafka

import (
	"context"

	domain "orderintake/internal/entity"
	"orderintake/internal/usecase"
)

// OrderStatusChangedHandler applies fulfillment decisions to stored
// orders. This is the only writer of the Completed/Failed statuses; the
// intake pipeline itself never moves an order past Processing.
type OrderStatusChangedHandler struct {
	Store usecase.OrderStore
	Cache usecase.StatusCache // optional
}

func NewOrderStatusChangedHandler(store usecase.OrderStore, cache usecase.StatusCache) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{Store: store, Cache: cache}
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	var newStatus domain.Status
	switch ev.Status {
	case "SUCCESS":
		newStatus = domain.StatusCompleted
	default:
		newStatus = domain.StatusFailed
	}

	// Guarded transition: only Processing orders move; a redelivered event
	// for an already-transitioned order matches zero rows and is a no-op.
	if _, err := h.Store.UpdateStatusIf(ctx, ev.OrderID, domain.StatusProcessing, newStatus); err != nil {
		return err
	}

	if h.Cache != nil {
		_ = h.Cache.SetStatus(ctx, ev.OrderID, string(newStatus))
	}
	return nil
}
