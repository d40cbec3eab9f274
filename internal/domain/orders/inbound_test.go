package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingInbound(t *testing.T) *InboundOrder {
	t.Helper()
	o, err := NewInboundOrder("PO-0001", uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	return o
}

func TestNewInboundOrder(t *testing.T) {
	o := newPendingInbound(t)
	assert.Equal(t, InboundStatusPending, o.Status)

	_, err := NewInboundOrder("", uuid.New(), uuid.New(), nil)
	assert.Error(t, err)

	_, err = NewInboundOrder("PO-0002", uuid.Nil, uuid.New(), nil)
	assert.Error(t, err)

	_, err = NewInboundOrder("PO-0003", uuid.New(), uuid.Nil, nil)
	assert.Error(t, err)
}

func TestInboundOrder_AddLine(t *testing.T) {
	o := newPendingInbound(t)
	expiry := time.Now().AddDate(0, 6, 0)

	require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(100), "LOT-A", &expiry))
	require.Len(t, o.Lines, 1)
	assert.Equal(t, "LOT-A", o.Lines[0].LotNumber)

	assert.Error(t, o.AddLine(uuid.Nil, decimal.NewFromInt(1), "", nil))
	assert.Error(t, o.AddLine(uuid.New(), decimal.Zero, "", nil))
}

func TestInboundOrder_Receive(t *testing.T) {
	t.Run("marks order received", func(t *testing.T) {
		o := newPendingInbound(t)
		require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(10), "LOT-B", nil))

		require.NoError(t, o.Receive())
		assert.Equal(t, InboundStatusReceived, o.Status)
		require.NotNil(t, o.ReceivedAt)
	})

	t.Run("cannot receive an empty order", func(t *testing.T) {
		o := newPendingInbound(t)
		assert.Error(t, o.Receive())
	})

	t.Run("cannot receive twice", func(t *testing.T) {
		o := newPendingInbound(t)
		require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(10), "", nil))
		require.NoError(t, o.Receive())
		assert.Error(t, o.Receive())
	})

	t.Run("cannot add lines after receipt", func(t *testing.T) {
		o := newPendingInbound(t)
		require.NoError(t, o.AddLine(uuid.New(), decimal.NewFromInt(10), "", nil))
		require.NoError(t, o.Receive())
		assert.Error(t, o.AddLine(uuid.New(), decimal.NewFromInt(5), "", nil))
	})
}

func TestInboundOrder_Cancel(t *testing.T) {
	o := newPendingInbound(t)
	require.NoError(t, o.Cancel())
	assert.Equal(t, InboundStatusCancelled, o.Status)

	assert.Error(t, o.Cancel())
	assert.Error(t, o.Receive())
}
