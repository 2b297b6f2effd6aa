package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "orderintake/internal/entity"
	"orderintake/internal/usecase"
)

type fakeQueue struct {
	published []usecase.OrderSubmittedMsg
	err       error
}

func (q *fakeQueue) PublishSubmitted(_ context.Context, msg usecase.OrderSubmittedMsg) error {
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, msg)
	return nil
}

type fakeIdem struct {
	remembered map[string]string
	locked     map[string]bool
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{remembered: map[string]string{}, locked: map[string]bool{}}
}

func (s *fakeIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	k := scope + ":" + key
	if s.locked[k] {
		return false, nil
	}
	s.locked[k] = true
	return true, nil
}

func (s *fakeIdem) Remember(_ context.Context, scope, key, value string) error {
	s.remembered[scope+":"+key] = value
	return nil
}

func (s *fakeIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := s.remembered[scope+":"+key]
	return v, ok, nil
}

func validInput() usecase.SubmitOrderInput {
	return usecase.SubmitOrderInput{
		CustomerRef:  "cust-1",
		ProductRef:   "prod-1",
		CustomerName: "Ada",
		ProductName:  "Laptop",
		Quantity:     2,
		UnitPrice:    15999.99,
		Notes:        "rush",
	}
}

func TestSubmitOrder_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission enqueues exactly once", func(t *testing.T) {
		q := &fakeQueue{}
		uc := usecase.NewSubmitOrder(q, newFakeIdem())

		out, err := uc.Execute(ctx, validInput())

		require.NoError(t, err)
		require.Len(t, q.published, 1)
		msg := q.published[0]
		assert.Equal(t, out.OrderID, msg.ID)
		assert.Equal(t, string(domain.StatusPending), msg.Status)
		assert.Equal(t, 31999.98, msg.TotalAmount)
		assert.Equal(t, 31999.98, out.TotalAmount)
		assert.Equal(t, "cust-1", msg.CustomerRef)
		assert.Equal(t, "prod-1", msg.ProductRef)
		assert.False(t, out.CreatedAt.IsZero())
	})

	t.Run("ids are unique across submissions", func(t *testing.T) {
		q := &fakeQueue{}
		uc := usecase.NewSubmitOrder(q, newFakeIdem())

		seen := map[string]bool{}
		for range 100 {
			out, err := uc.Execute(ctx, validInput())
			require.NoError(t, err)
			require.False(t, seen[out.OrderID], "duplicate id %s", out.OrderID)
			seen[out.OrderID] = true
		}
	})

	t.Run("invalid submission produces no queue message", func(t *testing.T) {
		q := &fakeQueue{}
		uc := usecase.NewSubmitOrder(q, newFakeIdem())

		in := validInput()
		in.Quantity = 0
		_, err := uc.Execute(ctx, in)
		require.ErrorIs(t, err, domain.ErrInvalidQuantity)

		in = validInput()
		in.UnitPrice = -1
		_, err = uc.Execute(ctx, in)
		require.ErrorIs(t, err, domain.ErrInvalidUnitPrice)

		assert.Empty(t, q.published)
	})

	t.Run("enqueue failure surfaces ErrEnqueue and order is not submitted", func(t *testing.T) {
		q := &fakeQueue{err: errors.New("broker down")}
		uc := usecase.NewSubmitOrder(q, newFakeIdem())

		_, err := uc.Execute(ctx, validInput())

		require.ErrorIs(t, err, usecase.ErrEnqueue)
		assert.Empty(t, q.published)
	})

	t.Run("idempotency key replays the original order id", func(t *testing.T) {
		q := &fakeQueue{}
		uc := usecase.NewSubmitOrder(q, newFakeIdem())

		in := validInput()
		in.IdempotencyKey = "retry-1"

		first, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		second, err := uc.Execute(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, first.OrderID, second.OrderID)
		assert.Len(t, q.published, 1)
	})

	t.Run("held lock without remembered id reports duplicate", func(t *testing.T) {
		q := &fakeQueue{}
		idem := newFakeIdem()
		idem.locked["cust-1:retry-2"] = true
		uc := usecase.NewSubmitOrder(q, idem)

		in := validInput()
		in.IdempotencyKey = "retry-2"
		_, err := uc.Execute(ctx, in)

		require.ErrorIs(t, err, usecase.ErrDuplicate)
		assert.Empty(t, q.published)
	})
}
