package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// MovementType classifies why stock changed
type MovementType string

const (
	MovementTypeReceipt    MovementType = "receipt"
	MovementTypeDispatch   MovementType = "dispatch"
	MovementTypeAmendment  MovementType = "amendment"
	MovementTypeAdjustment MovementType = "adjustment"
)

// StockMovement is the immutable audit record of a quantity change on a lot.
// Positive quantities add stock, negative quantities remove it.
type StockMovement struct {
	shared.BaseEntity
	LotID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        MovementType    `gorm:"type:varchar(20);not null;index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReferenceID *uuid.UUID      `gorm:"type:uuid;index"`
	Reference   string          `gorm:"type:varchar(100)"`
	Note        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement records a quantity change against a lot
func NewStockMovement(lot *InventoryLot, movementType MovementType, quantity decimal.Decimal, referenceID *uuid.UUID, reference, note string) (*StockMovement, error) {
	if lot == nil {
		return nil, shared.NewDomainError("INVALID_LOT", "Lot is required")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}
	switch movementType {
	case MovementTypeReceipt, MovementTypeDispatch, MovementTypeAmendment, MovementTypeAdjustment:
	default:
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	}

	return &StockMovement{
		BaseEntity:  shared.NewBaseEntity(),
		LotID:       lot.ID,
		ProductID:   lot.ProductID,
		Type:        movementType,
		Quantity:    quantity,
		ReferenceID: referenceID,
		Reference:   reference,
		Note:        note,
	}, nil
}
