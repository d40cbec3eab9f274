package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// InboundStatus represents the lifecycle of an inbound order
type InboundStatus string

const (
	InboundStatusPending   InboundStatus = "pending"
	InboundStatusReceived  InboundStatus = "received"
	InboundStatusCancelled InboundStatus = "cancelled"
)

// InboundLine is one product line on an inbound order
type InboundLine struct {
	shared.BaseEntity
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LotNumber  string          `gorm:"type:varchar(50)"`
	ExpiryDate *time.Time
}

// TableName returns the table name for GORM
func (InboundLine) TableName() string {
	return "inbound_order_lines"
}

// InboundOrder represents goods expected from a supplier. Receiving the
// order creates inventory lots for each line.
type InboundOrder struct {
	shared.BaseAggregateRoot
	OrderNumber string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	LocationID  uuid.UUID     `gorm:"type:uuid;not null"`
	Status      InboundStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ExpectedAt  *time.Time
	ReceivedAt  *time.Time
	Note        string        `gorm:"type:text"`
	Lines       []InboundLine `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (InboundOrder) TableName() string {
	return "inbound_orders"
}

// NewInboundOrder creates a pending inbound order
func NewInboundOrder(orderNumber string, supplierID, locationID uuid.UUID, expectedAt *time.Time) (*InboundOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID is required")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID is required")
	}

	return &InboundOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		LocationID:        locationID,
		Status:            InboundStatusPending,
		ExpectedAt:        expectedAt,
	}, nil
}

// AddLine adds a product line while the order is still pending
func (o *InboundOrder) AddLine(productID uuid.UUID, quantity decimal.Decimal, lotNumber string, expiryDate *time.Time) error {
	if o.Status != InboundStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to pending orders")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}

	o.Lines = append(o.Lines, InboundLine{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		LotNumber:  lotNumber,
		ExpiryDate: expiryDate,
	})
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Receive marks the order as received. The caller is responsible for
// creating the inventory lots in the same transaction.
func (o *InboundOrder) Receive() error {
	if o.Status != InboundStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be received")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot receive an order without lines")
	}

	now := time.Now()
	o.Status = InboundStatusReceived
	o.ReceivedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel cancels a pending order
func (o *InboundOrder) Cancel() error {
	if o.Status != InboundStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
	}

	o.Status = InboundStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsPending returns true while the order can still be modified
func (o *InboundOrder) IsPending() bool {
	return o.Status == InboundStatusPending
}
