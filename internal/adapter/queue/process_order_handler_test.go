package queue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "orderintake/internal/entity"
	"orderintake/internal/usecase"
)

type stubStore struct {
	orders map[string]*domain.Order
	fail   error
}

func (s *stubStore) Upsert(_ context.Context, o *domain.Order) error {
	if s.fail != nil {
		return s.fail
	}
	s.orders[o.ID] = o
	return nil
}

func (s *stubStore) GetByID(context.Context, string) (*domain.Order, error) { return nil, nil }
func (s *stubStore) List(context.Context) ([]*domain.Order, error)         { return nil, nil }
func (s *stubStore) UpdateStatusIf(context.Context, string, domain.Status, domain.Status) (bool, error) {
	return false, nil
}

func TestProcessOrderHandler_Handle(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	newDelivery := func(body []byte) amqp.Delivery {
		return amqp.Delivery{Acknowledger: &fakeAcknowledger{}, Body: body}
	}

	t.Run("good payload persists and acks", func(t *testing.T) {
		store := &stubStore{orders: map[string]*domain.Order{}}
		h := NewProcessOrderHandler(usecase.NewProcessOrder(store, log))

		body, err := json.Marshal(usecase.OrderSubmittedMsg{ID: "o-1", Quantity: 1, UnitPrice: 2, TotalAmount: 2, Status: "Pending"})
		require.NoError(t, err)

		assert.Equal(t, usecase.Ack, h.Handle(ctx, newDelivery(body)))
		require.Contains(t, store.orders, "o-1")
		assert.Equal(t, domain.StatusProcessing, store.orders["o-1"].Status)
	})

	t.Run("poison payload drops", func(t *testing.T) {
		store := &stubStore{orders: map[string]*domain.Order{}}
		h := NewProcessOrderHandler(usecase.NewProcessOrder(store, log))

		assert.Equal(t, usecase.Drop, h.Handle(ctx, newDelivery([]byte("not json"))))
		assert.Empty(t, store.orders)
	})

	t.Run("store fault retries", func(t *testing.T) {
		store := &stubStore{orders: map[string]*domain.Order{}, fail: errors.New("timeout")}
		h := NewProcessOrderHandler(usecase.NewProcessOrder(store, log))

		body, err := json.Marshal(usecase.OrderSubmittedMsg{ID: "o-2"})
		require.NoError(t, err)

		assert.Equal(t, usecase.Retry, h.Handle(ctx, newDelivery(body)))
	})
}
