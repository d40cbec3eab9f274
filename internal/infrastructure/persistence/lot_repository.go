package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLotRepository implements inventory.LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindByID finds an inventory lot by its ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryLot, error) {
	var lot inventory.InventoryLot
	if err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindAll finds all lots matching the filter
func (r *GormLotRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryLot, error) {
	var lots []inventory.InventoryLot
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.InventoryLot{}), filter)
	query = applyPagination(query, filter, LotSortFields, "expiry_date ASC NULLS LAST, received_at ASC")

	if err := query.Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindByProduct finds all lots of a product
func (r *GormLotRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.InventoryLot, error) {
	var lots []*inventory.InventoryLot
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("expiry_date ASC NULLS LAST, received_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindStockedByProduct finds the lots of a product that still hold stock,
// in first-expired-first-out order.
func (r *GormLotRepository) FindStockedByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.InventoryLot, error) {
	var lots []*inventory.InventoryLot
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND quantity > 0", productID).
		Order("expiry_date ASC NULLS LAST, received_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindByIDs finds multiple lots by their IDs
func (r *GormLotRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*inventory.InventoryLot, error) {
	if len(ids) == 0 {
		return []*inventory.InventoryLot{}, nil
	}
	var lots []*inventory.InventoryLot
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// Save creates or updates a lot
func (r *GormLotRepository) Save(ctx context.Context, lot *inventory.InventoryLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

// SaveAll creates or updates multiple lots
func (r *GormLotRepository) SaveAll(ctx context.Context, lots []*inventory.InventoryLot) error {
	if len(lots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(lots).Error
}

// Delete deletes a lot
func (r *GormLotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.InventoryLot{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts lots matching the filter
func (r *GormLotRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.InventoryLot{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumOnHand returns the total on-hand quantity of a product across all lots
func (r *GormLotRepository) SumOnHand(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&inventory.InventoryLot{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *GormLotRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("lot_number ILIKE ?", "%"+filter.Search+"%")
	}
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if inStock, ok := filter.Filters["in_stock"]; ok && inStock == true {
		query = query.Where("quantity > 0")
	}
	return query
}

var _ inventory.LotRepository = (*GormLotRepository)(nil)
