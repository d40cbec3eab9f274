package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

var _ catalog.ProductRepository = (*MockProductRepository)(nil)

func TestProductService_Create(t *testing.T) {
	t.Run("creates product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("ExistsByCode", mock.Anything, "SKU-001").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		level := decimal.NewFromInt(10)
		resp, err := service.Create(context.Background(), CreateProductRequest{
			Code:         "SKU-001",
			Name:         "Widget",
			Unit:         "pcs",
			ReorderLevel: &level,
		})

		require.NoError(t, err)
		assert.Equal(t, "SKU-001", resp.Code)
		assert.True(t, resp.ReorderLevel.Equal(level))
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("ExistsByCode", mock.Anything, "SKU-001").Return(true, nil)

		_, err := service.Create(context.Background(), CreateProductRequest{Code: "SKU-001", Name: "Widget"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_Update(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	product, err := catalog.NewProduct("SKU-010", "Old Name", "pcs")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	newName := "New Name"
	resp, err := service.Update(context.Background(), product.ID, UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "New Name", resp.Name)
	assert.Equal(t, "pcs", resp.Unit)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := service.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_StatusActions(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	product, err := catalog.NewProduct("SKU-020", "Widget", "pcs")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	resp, err := service.Deactivate(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)

	resp, err = service.Activate(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)

	resp, err = service.Discontinue(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "discontinued", resp.Status)
}
