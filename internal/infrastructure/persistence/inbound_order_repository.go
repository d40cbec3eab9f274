package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/orders"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInboundOrderRepository implements orders.InboundOrderRepository using GORM
type GormInboundOrderRepository struct {
	db *gorm.DB
}

// NewGormInboundOrderRepository creates a new GormInboundOrderRepository
func NewGormInboundOrderRepository(db *gorm.DB) *GormInboundOrderRepository {
	return &GormInboundOrderRepository{db: db}
}

// FindByID finds an inbound order with its lines
func (r *GormInboundOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.InboundOrder, error) {
	var order orders.InboundOrder
	if err := r.db.WithContext(ctx).Preload("Lines").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an inbound order by its order number
func (r *GormInboundOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*orders.InboundOrder, error) {
	var order orders.InboundOrder
	if err := r.db.WithContext(ctx).Preload("Lines").First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all inbound orders matching the filter
func (r *GormInboundOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]orders.InboundOrder, error) {
	var result []orders.InboundOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&orders.InboundOrder{}), filter)
	query = applyPagination(query, filter, OrderSortFields, "created_at DESC")

	if err := query.Preload("Lines").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Save creates or updates an inbound order together with its lines
func (r *GormInboundOrderRepository) Save(ctx context.Context, order *orders.InboundOrder) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// Count counts inbound orders matching the filter
func (r *GormInboundOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&orders.InboundOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInboundOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}
	return query
}

var _ orders.InboundOrderRepository = (*GormInboundOrderRepository)(nil)
