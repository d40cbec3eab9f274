package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingOutbound(t *testing.T) *OutboundOrder {
	t.Helper()
	o, err := NewOutboundOrder("SO-0001", uuid.New(), nil)
	require.NoError(t, err)
	return o
}

func TestNewOutboundOrder(t *testing.T) {
	o := newPendingOutbound(t)
	assert.Equal(t, OutboundStatusPending, o.Status)
	assert.Empty(t, o.DRNumber)

	_, err := NewOutboundOrder("", uuid.New(), nil)
	assert.Error(t, err)

	_, err = NewOutboundOrder("SO-0002", uuid.Nil, nil)
	assert.Error(t, err)
}

func TestOutboundOrder_AddLine(t *testing.T) {
	t.Run("accumulates quantity for the same product", func(t *testing.T) {
		o := newPendingOutbound(t)
		productID := uuid.New()

		require.NoError(t, o.AddLine(productID, decimal.NewFromInt(10)))
		require.NoError(t, o.AddLine(productID, decimal.NewFromInt(5)))

		require.Len(t, o.Lines, 1)
		assert.True(t, o.Lines[0].Quantity.Equal(decimal.NewFromInt(15)))
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		o := newPendingOutbound(t)
		assert.Error(t, o.AddLine(uuid.New(), decimal.Zero))
		assert.Error(t, o.AddLine(uuid.New(), decimal.NewFromInt(-1)))
	})

	t.Run("rejects lines on dispatched orders", func(t *testing.T) {
		o := newPendingOutbound(t)
		require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(1)))
		require.NoError(t, o.Dispatch("DR-00001"))
		assert.Error(t, o.AddLine(uuid.New(), decimal.NewFromInt(1)))
	})
}

func TestOutboundOrder_Dispatch(t *testing.T) {
	t.Run("assigns delivery receipt number", func(t *testing.T) {
		o := newPendingOutbound(t)
		require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(10)))

		require.NoError(t, o.Dispatch("DR-00042"))
		assert.Equal(t, OutboundStatusDispatched, o.Status)
		assert.Equal(t, "DR-00042", o.DRNumber)
		require.NotNil(t, o.DispatchedAt)
	})

	t.Run("cannot dispatch an empty order", func(t *testing.T) {
		o := newPendingOutbound(t)
		assert.Error(t, o.Dispatch("DR-00001"))
	})

	t.Run("cannot dispatch twice", func(t *testing.T) {
		o := newPendingOutbound(t)
		require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(1)))
		require.NoError(t, o.Dispatch("DR-00001"))
		assert.Error(t, o.Dispatch("DR-00002"))
	})

	t.Run("cannot dispatch a cancelled order", func(t *testing.T) {
		o := newPendingOutbound(t)
		require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(1)))
		require.NoError(t, o.Cancel())
		assert.Error(t, o.Dispatch("DR-00001"))
	})
}

func TestOutboundOrder_AmendLine(t *testing.T) {
	dispatched := func(t *testing.T, productID uuid.UUID, qty int64) *OutboundOrder {
		o := newPendingOutbound(t)
		require.NoError(t, o.AddLine(productID, decimal.NewFromInt(qty)))
		require.NoError(t, o.Dispatch("DR-00010"))
		return o
	}

	t.Run("decrease returns negative delta and keeps DR number", func(t *testing.T) {
		productID := uuid.New()
		o := dispatched(t, productID, 20)

		delta, err := o.AmendLine(productID, decimal.NewFromInt(12))
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(-8)))
		assert.Equal(t, "DR-00010", o.DRNumber)
		assert.True(t, o.LineFor(productID).Quantity.Equal(decimal.NewFromInt(12)))
	})

	t.Run("increase returns positive delta", func(t *testing.T) {
		productID := uuid.New()
		o := dispatched(t, productID, 20)

		delta, err := o.AmendLine(productID, decimal.NewFromInt(25))
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(5)))
	})

	t.Run("rejects amendment of pending orders", func(t *testing.T) {
		o := newPendingOutbound(t)
		productID := uuid.New()
		require.NoError(t, o.AddLine(productID, decimal.NewFromInt(10)))

		_, err := o.AmendLine(productID, decimal.NewFromInt(5))
		assert.Error(t, err)
	})

	t.Run("rejects unchanged quantity", func(t *testing.T) {
		productID := uuid.New()
		o := dispatched(t, productID, 20)

		_, err := o.AmendLine(productID, decimal.NewFromInt(20))
		assert.Error(t, err)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		o := dispatched(t, uuid.New(), 20)

		_, err := o.AmendLine(uuid.New(), decimal.NewFromInt(5))
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity, amendment is not cancellation", func(t *testing.T) {
		productID := uuid.New()
		o := dispatched(t, productID, 20)

		_, err := o.AmendLine(productID, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestOutboundOrder_Cancel(t *testing.T) {
	o := newPendingOutbound(t)
	require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(5)))

	require.NoError(t, o.Cancel())
	assert.Equal(t, OutboundStatusCancelled, o.Status)
	assert.Error(t, o.Cancel())
}

func TestOutboundOrder_TotalQuantity(t *testing.T) {
	o := newPendingOutbound(t)
	require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(5)))
	require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(7)))

	assert.True(t, o.TotalQuantity().Equal(decimal.NewFromInt(12)))
}
