package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/orders"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MockLotRepository is a mock implementation of inventory.LotRepository
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryLot), args.Error(1)
}

func (m *MockLotRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryLot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryLot), args.Error(1)
}

func (m *MockLotRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.InventoryLot, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.InventoryLot), args.Error(1)
}

func (m *MockLotRepository) FindStockedByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.InventoryLot, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.InventoryLot), args.Error(1)
}

func (m *MockLotRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*inventory.InventoryLot, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.InventoryLot), args.Error(1)
}

func (m *MockLotRepository) Save(ctx context.Context, lot *inventory.InventoryLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) SaveAll(ctx context.Context, lots []*inventory.InventoryLot) error {
	args := m.Called(ctx, lots)
	return args.Error(0)
}

func (m *MockLotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLotRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLotRepository) SumOnHand(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ inventory.LotRepository = (*MockLotRepository)(nil)

// MockMovementRepository is a mock implementation of inventory.MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]*inventory.StockMovement, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) SaveAll(ctx context.Context, movements []*inventory.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ inventory.MovementRepository = (*MockMovementRepository)(nil)

// stubOutboundRepo answers the reservation query with a fixed value
type stubOutboundRepo struct {
	reserved decimal.Decimal
}

func newStubOutboundRepo(reserved decimal.Decimal) *stubOutboundRepo {
	return &stubOutboundRepo{reserved: reserved}
}

func (s *stubOutboundRepo) FindByID(context.Context, uuid.UUID) (*orders.OutboundOrder, error) {
	return nil, shared.ErrNotFound
}

func (s *stubOutboundRepo) FindByOrderNumber(context.Context, string) (*orders.OutboundOrder, error) {
	return nil, shared.ErrNotFound
}

func (s *stubOutboundRepo) FindAll(context.Context, shared.Filter) ([]orders.OutboundOrder, error) {
	return nil, nil
}

func (s *stubOutboundRepo) Save(context.Context, *orders.OutboundOrder) error {
	return nil
}

func (s *stubOutboundRepo) Count(context.Context, shared.Filter) (int64, error) {
	return 0, nil
}

func (s *stubOutboundRepo) SumReserved(context.Context, uuid.UUID) (decimal.Decimal, error) {
	return s.reserved, nil
}

var _ orders.OutboundOrderRepository = (*stubOutboundRepo)(nil)

func TestInventoryService_GetAvailability(t *testing.T) {
	lotRepo := new(MockLotRepository)
	movementRepo := new(MockMovementRepository)
	outboundRepo := newStubOutboundRepo(decimal.NewFromInt(30))
	scope := NewNoOpTransactionScope(lotRepo, movementRepo)
	service := NewInventoryService(lotRepo, movementRepo, outboundRepo, scope, zap.NewNop())

	productID := uuid.New()
	lotRepo.On("SumOnHand", mock.Anything, productID).Return(decimal.NewFromInt(100), nil)

	resp, err := service.GetAvailability(context.Background(), productID)
	require.NoError(t, err)

	assert.True(t, resp.OnHand.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.Reserved.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.Available.Equal(decimal.NewFromInt(70)))
}

func TestInventoryService_AdjustStock(t *testing.T) {
	t.Run("saves lot and adjustment movement", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		movementRepo := new(MockMovementRepository)
		outboundRepo := newStubOutboundRepo(decimal.Zero)
		scope := NewNoOpTransactionScope(lotRepo, movementRepo)
		service := NewInventoryService(lotRepo, movementRepo, outboundRepo, scope, zap.NewNop())

		lot, err := inventory.NewInventoryLot(uuid.New(), uuid.New(), "LOT-1", decimal.NewFromInt(100), nil)
		require.NoError(t, err)

		lotRepo.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
		lotRepo.On("Save", mock.Anything, lot).Return(nil)
		movementRepo.On("Save", mock.Anything, mock.MatchedBy(func(m *inventory.StockMovement) bool {
			return m.Type == inventory.MovementTypeAdjustment && m.Quantity.Equal(decimal.NewFromInt(-5))
		})).Return(nil)

		resp, err := service.AdjustStock(context.Background(), AdjustStockRequest{
			LotID:    lot.ID,
			Quantity: decimal.NewFromInt(95),
			Note:     "cycle count",
		})

		require.NoError(t, err)
		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(95)))
		lotRepo.AssertExpectations(t)
		movementRepo.AssertExpectations(t)
	})

	t.Run("rejects unchanged quantity", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		movementRepo := new(MockMovementRepository)
		outboundRepo := newStubOutboundRepo(decimal.Zero)
		scope := NewNoOpTransactionScope(lotRepo, movementRepo)
		service := NewInventoryService(lotRepo, movementRepo, outboundRepo, scope, zap.NewNop())

		lot, err := inventory.NewInventoryLot(uuid.New(), uuid.New(), "LOT-2", decimal.NewFromInt(100), nil)
		require.NoError(t, err)

		lotRepo.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)

		_, err = service.AdjustStock(context.Background(), AdjustStockRequest{
			LotID:    lot.ID,
			Quantity: decimal.NewFromInt(100),
		})
		require.Error(t, err)
		lotRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		movementRepo := new(MockMovementRepository)
		outboundRepo := newStubOutboundRepo(decimal.Zero)
		scope := NewNoOpTransactionScope(lotRepo, movementRepo)
		service := NewInventoryService(lotRepo, movementRepo, outboundRepo, scope, zap.NewNop())

		lot, err := inventory.NewInventoryLot(uuid.New(), uuid.New(), "LOT-3", decimal.NewFromInt(10), nil)
		require.NoError(t, err)

		lotRepo.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)

		_, err = service.AdjustStock(context.Background(), AdjustStockRequest{
			LotID:    lot.ID,
			Quantity: decimal.NewFromInt(-1),
		})
		require.Error(t, err)
	})
}
