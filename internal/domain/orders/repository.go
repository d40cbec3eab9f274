package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// InboundOrderRepository defines persistence operations for inbound orders
type InboundOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InboundOrder, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*InboundOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InboundOrder, error)
	Save(ctx context.Context, order *InboundOrder) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// OutboundOrderRepository defines persistence operations for outbound orders
type OutboundOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OutboundOrder, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*OutboundOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]OutboundOrder, error)
	Save(ctx context.Context, order *OutboundOrder) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// SumReserved returns the total quantity of a product across the lines
	// of all pending outbound orders.
	SumReserved(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}

// SequenceRepository hands out gap-free increasing numbers for order and
// delivery receipt numbering. Next must be called inside the transaction
// that uses the number.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
