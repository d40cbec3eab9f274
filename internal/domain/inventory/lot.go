package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// InventoryLot represents a batch of a single product held at one storage
// location. On-hand quantity only changes through Receive, Deduct, and
// Adjust, so every change maps to a stock movement.
type InventoryLot struct {
	shared.BaseAggregateRoot
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_lots_product_location"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null;index:idx_lots_product_location"`
	LotNumber  string          `gorm:"type:varchar(50);not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpiryDate *time.Time      `gorm:"index"`
	ReceivedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryLot) TableName() string {
	return "inventory_lots"
}

// NewInventoryLot creates a lot for goods received into a location
func NewInventoryLot(productID, locationID uuid.UUID, lotNumber string, quantity decimal.Decimal, expiryDate *time.Time) (*InventoryLot, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID is required")
	}
	if lotNumber == "" {
		return nil, shared.NewDomainError("INVALID_LOT_NUMBER", "Lot number cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Lot quantity must be positive")
	}

	return &InventoryLot{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		LocationID:        locationID,
		LotNumber:         lotNumber,
		Quantity:          quantity,
		ExpiryDate:        expiryDate,
		ReceivedAt:        time.Now(),
	}, nil
}

// Add increases the lot's on-hand quantity
func (l *InventoryLot) Add(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity to add must be positive")
	}

	l.Quantity = l.Quantity.Add(quantity)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Deduct decreases the lot's on-hand quantity. The lot can never go negative.
func (l *InventoryLot) Deduct(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity to deduct must be positive")
	}
	if l.Quantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	l.Quantity = l.Quantity.Sub(quantity)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// AdjustTo sets the lot quantity to an absolute counted value
func (l *InventoryLot) AdjustTo(quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Adjusted quantity cannot be negative")
	}

	delta := quantity.Sub(l.Quantity)
	l.Quantity = quantity
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return delta, nil
}

// HasStock returns true if the lot still holds any quantity
func (l *InventoryLot) HasStock() bool {
	return l.Quantity.IsPositive()
}

// IsExpired returns true if the lot has an expiry date in the past
func (l *InventoryLot) IsExpired(now time.Time) bool {
	return l.ExpiryDate != nil && l.ExpiryDate.Before(now)
}
