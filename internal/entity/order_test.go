package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "orderintake/internal/entity"
)

func TestNewOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("builds a pending order with derived total", func(t *testing.T) {
		o, err := domain.NewOrder("o-1", "cust-1", "prod-1", "Ada", "Laptop", 2, 15999.99, "rush", now)

		require.NoError(t, err)
		assert.Equal(t, "o-1", o.ID)
		assert.Equal(t, domain.StatusPending, o.Status)
		assert.Equal(t, 31999.98, o.TotalAmount)
		assert.Equal(t, now, o.CreatedAt)
		assert.Equal(t, "rush", o.Notes)
	})

	t.Run("total equals quantity times unit price", func(t *testing.T) {
		o, err := domain.NewOrder("o-2", "c", "p", "", "", 7, 0.25, "", now)

		require.NoError(t, err)
		assert.Equal(t, float64(7)*0.25, o.TotalAmount)
	})

	t.Run("accepts zero unit price", func(t *testing.T) {
		o, err := domain.NewOrder("o-3", "c", "p", "", "", 1, 0, "", now)

		require.NoError(t, err)
		assert.Equal(t, 0.0, o.TotalAmount)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		o, err := domain.NewOrder("o-4", "c", "p", "", "", 0, 10, "", now)

		require.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Nil(t, o)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := domain.NewOrder("o-5", "c", "p", "", "", -3, 10, "", now)

		require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		_, err := domain.NewOrder("o-6", "c", "p", "", "", 1, -0.01, "", now)

		require.ErrorIs(t, err, domain.ErrInvalidUnitPrice)
	})

	t.Run("rejects empty refs", func(t *testing.T) {
		_, err := domain.NewOrder("o-7", "", "", "", "", 1, 1, "", now)

		require.ErrorIs(t, err, domain.ErrMissingCustomerRef)
		require.ErrorIs(t, err, domain.ErrMissingProductRef)
	})

	t.Run("joins all violations", func(t *testing.T) {
		_, err := domain.NewOrder("o-8", "", "p", "", "", 0, -1, "", now)

		require.ErrorIs(t, err, domain.ErrMissingCustomerRef)
		require.ErrorIs(t, err, domain.ErrInvalidQuantity)
		require.ErrorIs(t, err, domain.ErrInvalidUnitPrice)
	})
}
