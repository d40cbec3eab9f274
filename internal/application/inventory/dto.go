package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/inventory"
)

// AdjustStockRequest sets a lot's quantity to a counted value
type AdjustStockRequest struct {
	LotID    uuid.UUID       `json:"lot_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Note     string          `json:"note"`
}

// LotListFilter carries list query options for lots
type LotListFilter struct {
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
	ProductID *uuid.UUID
	InStock   bool
}

// MovementListFilter carries list query options for stock movements
type MovementListFilter struct {
	Page      int
	PageSize  int
	ProductID *uuid.UUID
	LotID     *uuid.UUID
	Type      string
}

// LotResponse is the API representation of an inventory lot
type LotResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	LocationID uuid.UUID       `json:"location_id"`
	LotNumber  string          `json:"lot_number"`
	Quantity   decimal.Decimal `json:"quantity"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToLotResponse converts a lot aggregate to its API representation
func ToLotResponse(l *inventory.InventoryLot) LotResponse {
	return LotResponse{
		ID:         l.ID,
		ProductID:  l.ProductID,
		LocationID: l.LocationID,
		LotNumber:  l.LotNumber,
		Quantity:   l.Quantity,
		ExpiryDate: l.ExpiryDate,
		ReceivedAt: l.ReceivedAt,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// ToLotResponses converts a slice of lots
func ToLotResponses(lots []inventory.InventoryLot) []LotResponse {
	responses := make([]LotResponse, len(lots))
	for i := range lots {
		responses[i] = ToLotResponse(&lots[i])
	}
	return responses
}

// MovementResponse is the API representation of a stock movement
type MovementResponse struct {
	ID          uuid.UUID       `json:"id"`
	LotID       uuid.UUID       `json:"lot_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	ReferenceID *uuid.UUID      `json:"reference_id,omitempty"`
	Reference   string          `json:"reference"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToMovementResponse converts a movement to its API representation
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		LotID:       m.LotID,
		ProductID:   m.ProductID,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		ReferenceID: m.ReferenceID,
		Reference:   m.Reference,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt,
	}
}

// ToMovementResponses converts a slice of movements
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}

// AvailabilityResponse is the API representation of a product's stock position
type AvailabilityResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	OnHand    decimal.Decimal `json:"on_hand"`
	Reserved  decimal.Decimal `json:"reserved"`
	Available decimal.Decimal `json:"available"`
}

// ToAvailabilityResponse converts an availability value to its API representation
func ToAvailabilityResponse(a inventory.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		ProductID: a.ProductID,
		OnHand:    a.OnHand,
		Reserved:  a.Reserved,
		Available: a.Available,
	}
}
