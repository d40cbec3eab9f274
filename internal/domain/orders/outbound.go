package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// OutboundStatus represents the lifecycle of an outbound order
type OutboundStatus string

const (
	OutboundStatusPending    OutboundStatus = "pending"
	OutboundStatusDispatched OutboundStatus = "dispatched"
	OutboundStatusCancelled  OutboundStatus = "cancelled"
)

// OutboundLine is one product line on an outbound order
type OutboundLine struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OutboundLine) TableName() string {
	return "outbound_order_lines"
}

// OutboundOrder represents goods promised to a customer. A pending order
// reserves stock against availability; dispatching consumes lots FEFO and
// assigns a delivery receipt number.
type OutboundOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status       OutboundStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	DRNumber     string         `gorm:"type:varchar(50);uniqueIndex:idx_outbound_dr,where:dr_number <> ''"`
	RequiredBy   *time.Time
	DispatchedAt *time.Time
	Note         string         `gorm:"type:text"`
	Lines        []OutboundLine `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OutboundOrder) TableName() string {
	return "outbound_orders"
}

// NewOutboundOrder creates a pending outbound order
func NewOutboundOrder(orderNumber string, customerID uuid.UUID, requiredBy *time.Time) (*OutboundOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}

	return &OutboundOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		Status:            OutboundStatusPending,
		RequiredBy:        requiredBy,
	}, nil
}

// AddLine adds a product line while the order is still pending. Quantities
// for an already listed product accumulate on the existing line.
func (o *OutboundOrder) AddLine(productID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status != OutboundStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to pending orders")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}

	for i := range o.Lines {
		if o.Lines[i].ProductID == productID {
			o.Lines[i].Quantity = o.Lines[i].Quantity.Add(quantity)
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	o.Lines = append(o.Lines, OutboundLine{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// LineFor returns the line carrying the given product, or nil
func (o *OutboundOrder) LineFor(productID uuid.UUID) *OutboundLine {
	for i := range o.Lines {
		if o.Lines[i].ProductID == productID {
			return &o.Lines[i]
		}
	}
	return nil
}

// Dispatch marks the order as dispatched under the given delivery receipt
// number. The caller performs the FEFO lot deductions in the same
// transaction before committing.
func (o *OutboundOrder) Dispatch(drNumber string) error {
	if o.Status != OutboundStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be dispatched")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot dispatch an order without lines")
	}
	if drNumber == "" {
		return shared.NewDomainError("INVALID_DR_NUMBER", "Delivery receipt number is required")
	}

	now := time.Now()
	o.Status = OutboundStatusDispatched
	o.DRNumber = drNumber
	o.DispatchedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// AmendLine changes the quantity of one line on a dispatched order and
// returns the delta (new minus old). A positive delta means more stock must
// be deducted; a negative delta means stock flows back to the lots. The
// delivery receipt number does not change.
func (o *OutboundOrder) AmendLine(productID uuid.UUID, newQuantity decimal.Decimal) (decimal.Decimal, error) {
	if o.Status != OutboundStatusDispatched {
		return decimal.Zero, shared.NewDomainError("INVALID_STATE", "Only dispatched orders can be amended")
	}
	if !newQuantity.IsPositive() {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Amended quantity must be positive")
	}

	line := o.LineFor(productID)
	if line == nil {
		return decimal.Zero, shared.NewDomainError("LINE_NOT_FOUND", "Order has no line for this product")
	}

	delta := newQuantity.Sub(line.Quantity)
	if delta.IsZero() {
		return decimal.Zero, shared.NewDomainError("NO_CHANGE", "Amended quantity equals the current quantity")
	}

	line.Quantity = newQuantity
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return delta, nil
}

// Cancel cancels a pending order, releasing its reservation
func (o *OutboundOrder) Cancel() error {
	if o.Status != OutboundStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
	}

	o.Status = OutboundStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsPending returns true while the order still reserves stock
func (o *OutboundOrder) IsPending() bool {
	return o.Status == OutboundStatusPending
}

// TotalQuantity returns the summed quantity across all lines
func (o *OutboundOrder) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].Quantity)
	}
	return total
}
