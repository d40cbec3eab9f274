package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type outboundFixture struct {
	service      *OutboundService
	lotRepo      *fakeLotRepo
	movementRepo *fakeMovementRepo
	outboundRepo *fakeOutboundRepo
	customer     *partner.Customer
}

func newOutboundFixture(t *testing.T) *outboundFixture {
	t.Helper()

	lotRepo := newFakeLotRepo()
	movementRepo := newFakeMovementRepo()
	outboundRepo := newFakeOutboundRepo()
	customerRepo := newFakeCustomerRepo()
	sequenceRepo := newFakeSequenceRepo()

	customer, err := partner.NewCustomer("CUST-01", "Acme Retail")
	require.NoError(t, err)
	customerRepo.put(customer)

	scope := NewNoOpTransactionScope(newFakeInboundRepo(), outboundRepo, lotRepo, movementRepo, sequenceRepo)
	service := NewOutboundService(outboundRepo, customerRepo, lotRepo, scope, zap.NewNop())

	return &outboundFixture{
		service:      service,
		lotRepo:      lotRepo,
		movementRepo: movementRepo,
		outboundRepo: outboundRepo,
		customer:     customer,
	}
}

func (f *outboundFixture) seedLot(t *testing.T, productID uuid.UUID, qty int64, expiryDays int, receivedAt time.Time) *inventory.InventoryLot {
	t.Helper()

	var expiry *time.Time
	if expiryDays > 0 {
		e := time.Now().AddDate(0, 0, expiryDays)
		expiry = &e
	}

	lot, err := inventory.NewInventoryLot(productID, uuid.New(), "LOT", decimal.NewFromInt(qty), expiry)
	require.NoError(t, err)
	lot.ReceivedAt = receivedAt
	f.lotRepo.put(lot)
	return lot
}

func TestOutboundService_Create(t *testing.T) {
	t.Run("creates pending order within availability", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		f.seedLot(t, productID, 100, 10, time.Now())

		resp, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(60)}},
		})

		require.NoError(t, err)
		assert.Equal(t, "SO-000001", resp.OrderNumber)
		assert.Equal(t, "pending", resp.Status)
		assert.Empty(t, resp.DRNumber)
	})

	t.Run("rejects overbooking against existing reservations", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		f.seedLot(t, productID, 100, 10, time.Now())

		_, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(70)}},
		})
		require.NoError(t, err)

		// 30 left available, 40 requested
		_, err = f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(40)}},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	})

	t.Run("sums duplicate lines before the availability check", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		f.seedLot(t, productID, 100, 10, time.Now())

		_, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines: []OutboundLineRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(60)},
				{ProductID: productID, Quantity: decimal.NewFromInt(60)},
			},
		})
		require.Error(t, err)
	})

	t.Run("rejects inactive customer", func(t *testing.T) {
		f := newOutboundFixture(t)
		require.NoError(t, f.customer.Deactivate())

		_, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines:      []OutboundLineRequest{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
		})
		require.Error(t, err)
	})
}

func TestOutboundService_Dispatch(t *testing.T) {
	t.Run("consumes lots in FEFO order and records movements", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		early := f.seedLot(t, productID, 30, 5, time.Now())
		late := f.seedLot(t, productID, 50, 30, time.Now())

		created, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(40)}},
		})
		require.NoError(t, err)

		resp, err := f.service.Dispatch(context.Background(), created.ID)
		require.NoError(t, err)

		assert.Equal(t, "dispatched", resp.Status)
		assert.Equal(t, "DR-000001", resp.DRNumber)
		assert.True(t, early.Quantity.IsZero())
		assert.True(t, late.Quantity.Equal(decimal.NewFromInt(40)))

		movements, err := f.movementRepo.FindByReference(context.Background(), created.ID)
		require.NoError(t, err)
		require.Len(t, movements, 2)
		for _, m := range movements {
			assert.Equal(t, inventory.MovementTypeDispatch, m.Type)
			assert.True(t, m.Quantity.IsNegative())
			assert.Equal(t, "DR-000001", m.Reference)
		}
	})

	t.Run("delivery receipt numbers increase across dispatches", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		f.seedLot(t, productID, 100, 10, time.Now())

		for i, want := range []string{"DR-000001", "DR-000002"} {
			created, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
				CustomerID: f.customer.ID,
				Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(10)}},
			})
			require.NoError(t, err, "order %d", i)

			resp, err := f.service.Dispatch(context.Background(), created.ID)
			require.NoError(t, err)
			assert.Equal(t, want, resp.DRNumber)
		}
	})

	t.Run("shortage fails the dispatch and leaves lots untouched", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		lot := f.seedLot(t, productID, 50, 10, time.Now())

		created, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(40)}},
		})
		require.NoError(t, err)

		// Stock disappears before dispatch, e.g. an adjustment
		_, err = lot.AdjustTo(decimal.NewFromInt(20))
		require.NoError(t, err)

		_, err = f.service.Dispatch(context.Background(), created.ID)
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, lot.Quantity.Equal(decimal.NewFromInt(20)))

		order, err := f.outboundRepo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, order.IsPending())
	})

	t.Run("cannot dispatch a cancelled order", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		f.seedLot(t, productID, 50, 10, time.Now())

		created, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(10)}},
		})
		require.NoError(t, err)

		_, err = f.service.Cancel(context.Background(), created.ID)
		require.NoError(t, err)

		_, err = f.service.Dispatch(context.Background(), created.ID)
		require.Error(t, err)
	})
}

func TestOutboundService_Cancel_ReleasesReservation(t *testing.T) {
	f := newOutboundFixture(t)
	productID := uuid.New()
	f.seedLot(t, productID, 100, 10, time.Now())

	created, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
		CustomerID: f.customer.ID,
		Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(80)}},
	})
	require.NoError(t, err)

	availability, err := f.service.GetAvailability(context.Background(), productID)
	require.NoError(t, err)
	assert.True(t, availability.Available.Equal(decimal.NewFromInt(20)))

	_, err = f.service.Cancel(context.Background(), created.ID)
	require.NoError(t, err)

	availability, err = f.service.GetAvailability(context.Background(), productID)
	require.NoError(t, err)
	assert.True(t, availability.Available.Equal(decimal.NewFromInt(100)))
	assert.True(t, availability.OnHand.Equal(decimal.NewFromInt(100)))
}

func TestOutboundService_Amend(t *testing.T) {
	dispatchAcrossTwoLots := func(t *testing.T, f *outboundFixture, productID uuid.UUID) (string, *inventory.InventoryLot, *inventory.InventoryLot) {
		t.Helper()
		early := f.seedLot(t, productID, 30, 5, time.Now())
		late := f.seedLot(t, productID, 50, 30, time.Now())

		created, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(40)}},
		})
		require.NoError(t, err)

		_, err = f.service.Dispatch(context.Background(), created.ID)
		require.NoError(t, err)

		// early drained to 0, late at 40
		return created.ID.String(), early, late
	}

	t.Run("decrease returns stock to the last-picked lot first", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		orderID, early, late := dispatchAcrossTwoLots(t, f, productID)
		id := uuid.MustParse(orderID)

		resp, err := f.service.Amend(context.Background(), id, AmendOutboundOrderRequest{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(25),
		})
		require.NoError(t, err)

		// 15 returned: 10 to the late lot (last picked), 5 to the early lot
		assert.Equal(t, "DR-000001", resp.DRNumber)
		assert.True(t, late.Quantity.Equal(decimal.NewFromInt(50)))
		assert.True(t, early.Quantity.Equal(decimal.NewFromInt(5)))

		order, err := f.outboundRepo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, order.LineFor(productID).Quantity.Equal(decimal.NewFromInt(25)))
	})

	t.Run("increase deducts additional stock FEFO", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		orderID, early, late := dispatchAcrossTwoLots(t, f, productID)
		id := uuid.MustParse(orderID)

		resp, err := f.service.Amend(context.Background(), id, AmendOutboundOrderRequest{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(50),
		})
		require.NoError(t, err)

		// early is drained so the extra 10 comes from the late lot
		assert.Equal(t, "DR-000001", resp.DRNumber)
		assert.True(t, early.Quantity.IsZero())
		assert.True(t, late.Quantity.Equal(decimal.NewFromInt(30)))
	})

	t.Run("increase respects other orders' reservations", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		orderID, _, _ := dispatchAcrossTwoLots(t, f, productID)
		id := uuid.MustParse(orderID)

		// Another pending order reserves 35 of the remaining 40
		_, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(35)}},
		})
		require.NoError(t, err)

		_, err = f.service.Amend(context.Background(), id, AmendOutboundOrderRequest{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(50),
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	})

	t.Run("amendment movements keep the audit trail balanced", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		orderID, _, _ := dispatchAcrossTwoLots(t, f, productID)
		id := uuid.MustParse(orderID)

		_, err := f.service.Amend(context.Background(), id, AmendOutboundOrderRequest{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(25),
		})
		require.NoError(t, err)

		movements, err := f.movementRepo.FindByReference(context.Background(), id)
		require.NoError(t, err)

		net := decimal.Zero
		for _, m := range movements {
			net = net.Add(m.Quantity)
		}
		// Net outflow equals the amended quantity
		assert.True(t, net.Equal(decimal.NewFromInt(-25)))
	})

	t.Run("cannot amend a pending order", func(t *testing.T) {
		f := newOutboundFixture(t)
		productID := uuid.New()
		f.seedLot(t, productID, 50, 10, time.Now())

		created, err := f.service.Create(context.Background(), CreateOutboundOrderRequest{
			CustomerID: f.customer.ID,
			Lines:      []OutboundLineRequest{{ProductID: productID, Quantity: decimal.NewFromInt(10)}},
		})
		require.NoError(t, err)

		_, err = f.service.Amend(context.Background(), created.ID, AmendOutboundOrderRequest{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(5),
		})
		require.Error(t, err)
	})
}
