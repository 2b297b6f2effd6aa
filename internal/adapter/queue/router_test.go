package queue

import (
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderintake/internal/usecase"
)

// fakeAcknowledger records the settlement the Router chose.
type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(uint64, bool) error { f.acked = true; return nil }
func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}
func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func delivery(ack *fakeAcknowledger, deliveryCount int64) amqp.Delivery {
	d := amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  1,
		MessageId:    "m-1",
		Headers:      amqp.Table{},
	}
	if deliveryCount > 0 {
		d.Headers["x-delivery-count"] = deliveryCount
	}
	return d
}

func testRouter(max int64) *Router {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(nil, WithMaxDeliveries(max), WithLogger(log))
}

func TestRouter_Settle(t *testing.T) {
	t.Run("ack removes the message", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		testRouter(5).settle("q", delivery(ack, 0), usecase.Ack)

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
	})

	t.Run("retry requeues below the delivery ceiling", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		testRouter(5).settle("q", delivery(ack, 0), usecase.Retry)

		require.True(t, ack.nacked)
		assert.True(t, ack.requeue)
	})

	t.Run("retry dead-letters at the delivery ceiling", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		testRouter(5).settle("q", delivery(ack, 4), usecase.Retry)

		require.True(t, ack.nacked)
		assert.False(t, ack.requeue, "message past the ceiling must not requeue")
	})

	t.Run("drop never requeues", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		testRouter(5).settle("q", delivery(ack, 0), usecase.Drop)

		require.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("redelivery loop reaches the dead-letter path", func(t *testing.T) {
		// simulate the broker redelivering with an increasing count until
		// the router stops requeueing
		r := testRouter(3)
		var count int64
		for {
			ack := &fakeAcknowledger{}
			r.settle("q", delivery(ack, count), usecase.Retry)
			require.True(t, ack.nacked)
			if !ack.requeue {
				break
			}
			count++
			require.Less(t, count, int64(10), "retry loop never terminated")
		}
		assert.Equal(t, int64(2), count)
	})
}

func TestDeliveryCount(t *testing.T) {
	t.Run("missing header means first attempt", func(t *testing.T) {
		d := amqp.Delivery{Headers: amqp.Table{}}
		assert.Equal(t, int64(0), DeliveryCount(d))
	})

	t.Run("reads broker integer widths", func(t *testing.T) {
		for _, v := range []any{int64(3), int32(3), int(3)} {
			d := amqp.Delivery{Headers: amqp.Table{"x-delivery-count": v}}
			assert.Equal(t, int64(3), DeliveryCount(d))
		}
	})
}
