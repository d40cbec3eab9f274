package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/orders"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOutboundOrderRepository implements orders.OutboundOrderRepository using GORM
type GormOutboundOrderRepository struct {
	db *gorm.DB
}

// NewGormOutboundOrderRepository creates a new GormOutboundOrderRepository
func NewGormOutboundOrderRepository(db *gorm.DB) *GormOutboundOrderRepository {
	return &GormOutboundOrderRepository{db: db}
}

// FindByID finds an outbound order with its lines
func (r *GormOutboundOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.OutboundOrder, error) {
	var order orders.OutboundOrder
	if err := r.db.WithContext(ctx).Preload("Lines").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an outbound order by its order number
func (r *GormOutboundOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*orders.OutboundOrder, error) {
	var order orders.OutboundOrder
	if err := r.db.WithContext(ctx).Preload("Lines").First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all outbound orders matching the filter
func (r *GormOutboundOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]orders.OutboundOrder, error) {
	var result []orders.OutboundOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&orders.OutboundOrder{}), filter)
	query = applyPagination(query, filter, OrderSortFields, "created_at DESC")

	if err := query.Preload("Lines").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Save creates or updates an outbound order together with its lines
func (r *GormOutboundOrderRepository) Save(ctx context.Context, order *orders.OutboundOrder) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// Count counts outbound orders matching the filter
func (r *GormOutboundOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&orders.OutboundOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumReserved returns the total quantity of a product across the lines of
// all pending outbound orders.
func (r *GormOutboundOrderRepository) SumReserved(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&orders.OutboundLine{}).
		Joins("JOIN outbound_orders ON outbound_orders.id = outbound_order_lines.order_id").
		Where("outbound_order_lines.product_id = ? AND outbound_orders.status = ?", productID, orders.OutboundStatusPending).
		Select("COALESCE(SUM(outbound_order_lines.quantity), 0)").
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *GormOutboundOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR dr_number ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		query = query.Where("customer_id = ?", customerID)
	}
	return query
}

var _ orders.OutboundOrderRepository = (*GormOutboundOrderRepository)(nil)
