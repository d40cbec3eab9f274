package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Availability is the computed stock position of one product.
// Available = OnHand - Reserved, where Reserved is the total quantity on
// pending outbound orders that have not yet been dispatched or cancelled.
type Availability struct {
	ProductID uuid.UUID       `json:"product_id"`
	OnHand    decimal.Decimal `json:"on_hand"`
	Reserved  decimal.Decimal `json:"reserved"`
	Available decimal.Decimal `json:"available"`
}

// NewAvailability computes the availability of a product from its on-hand
// and reserved totals
func NewAvailability(productID uuid.UUID, onHand, reserved decimal.Decimal) Availability {
	return Availability{
		ProductID: productID,
		OnHand:    onHand,
		Reserved:  reserved,
		Available: onHand.Sub(reserved),
	}
}

// CanFulfil reports whether a new request for the given quantity fits within
// the remaining available stock
func (a Availability) CanFulfil(quantity decimal.Decimal) bool {
	return a.Available.GreaterThanOrEqual(quantity)
}
