package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "orderintake/internal/entity"
)

var (
	ErrDuplicate = errors.New("duplicate idempotency key")
	ErrEnqueue   = errors.New("enqueue failed")
)

type SubmitOrderInput struct {
	CustomerRef, ProductRef   string
	CustomerName, ProductName string
	Quantity                  int
	UnitPrice                 float64
	Notes                     string
	IdempotencyKey            string
}

type SubmitOrderOutput struct {
	OrderID     string
	TotalAmount float64
	CreatedAt   time.Time
}

// SubmitOrder validates a submission, builds a Pending order and hands it
// to the queue. It returns as soon as the publish is confirmed; it never
// writes the order store — persistence happens only on the consumer side.
type SubmitOrder struct {
	queue OrderQueue
	idem  IdempotencyStore
	now   func() time.Time
}

func NewSubmitOrder(queue OrderQueue, idem IdempotencyStore) *SubmitOrder {
	return &SubmitOrder{queue: queue, idem: idem, now: time.Now}
}

func (uc *SubmitOrder) Execute(ctx context.Context, in SubmitOrderInput) (SubmitOrderOutput, error) {
	// Fast path: idempotency recall (only when the client sent a key)
	if in.IdempotencyKey != "" {
		if id, ok, _ := uc.idem.Recall(ctx, in.CustomerRef, in.IdempotencyKey); ok {
			return SubmitOrderOutput{
				OrderID:     id,
				TotalAmount: float64(in.Quantity) * in.UnitPrice,
				CreatedAt:   uc.now().UTC(),
			}, nil
		}
	}

	order, err := domainOrder(in, uc.now())
	if err != nil {
		return SubmitOrderOutput{}, err
	}

	if in.IdempotencyKey != "" {
		ok, err := uc.idem.TryLock(ctx, in.CustomerRef, in.IdempotencyKey)
		if err != nil {
			return SubmitOrderOutput{}, err
		}
		if !ok {
			return SubmitOrderOutput{}, ErrDuplicate
		}
	}

	if err := uc.queue.PublishSubmitted(ctx, NewOrderSubmittedMsg(order)); err != nil {
		// The order is not submitted; the caller resubmits.
		return SubmitOrderOutput{}, fmt.Errorf("%w: %v", ErrEnqueue, err)
	}

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.CustomerRef, in.IdempotencyKey, order.ID)
	}

	return SubmitOrderOutput{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}, nil
}

func domainOrder(in SubmitOrderInput, now time.Time) (*domain.Order, error) {
	return domain.NewOrder(
		uuid.NewString(),
		in.CustomerRef, in.ProductRef,
		in.CustomerName, in.ProductName,
		in.Quantity, in.UnitPrice,
		in.Notes, now,
	)
}
