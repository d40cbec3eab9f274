package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// LotRepository defines persistence operations for inventory lots
type LotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryLot, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryLot, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*InventoryLot, error)
	FindStockedByProduct(ctx context.Context, productID uuid.UUID) ([]*InventoryLot, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*InventoryLot, error)
	Save(ctx context.Context, lot *InventoryLot) error
	SaveAll(ctx context.Context, lots []*InventoryLot) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	SumOnHand(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}

// MovementRepository defines persistence operations for stock movements.
// Movements are append-only.
type MovementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)
	FindByReference(ctx context.Context, referenceID uuid.UUID) ([]*StockMovement, error)
	Save(ctx context.Context, movement *StockMovement) error
	SaveAll(ctx context.Context, movements []*StockMovement) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
