package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/orders"
)

// InboundLineRequest is one line on an inbound order request
type InboundLineRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	LotNumber  string          `json:"lot_number"`
	ExpiryDate *time.Time      `json:"expiry_date"`
}

// CreateInboundOrderRequest is the request to create an inbound order
type CreateInboundOrderRequest struct {
	SupplierID uuid.UUID            `json:"supplier_id" binding:"required"`
	LocationID uuid.UUID            `json:"location_id" binding:"required"`
	ExpectedAt *time.Time           `json:"expected_at"`
	Note       string               `json:"note"`
	Lines      []InboundLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OutboundLineRequest is one line on an outbound order request
type OutboundLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateOutboundOrderRequest is the request to create an outbound order
type CreateOutboundOrderRequest struct {
	CustomerID uuid.UUID             `json:"customer_id" binding:"required"`
	RequiredBy *time.Time            `json:"required_by"`
	Note       string                `json:"note"`
	Lines      []OutboundLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AmendOutboundOrderRequest changes one line's quantity on a dispatched order
type AmendOutboundOrderRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Note      string          `json:"note"`
}

// OrderListFilter carries list query options for orders
type OrderListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Status   string
	Search   string
}

// InboundLineResponse is the API representation of an inbound order line
type InboundLineResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	LotNumber  string          `json:"lot_number"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}

// InboundOrderResponse is the API representation of an inbound order
type InboundOrderResponse struct {
	ID          uuid.UUID             `json:"id"`
	OrderNumber string                `json:"order_number"`
	SupplierID  uuid.UUID             `json:"supplier_id"`
	LocationID  uuid.UUID             `json:"location_id"`
	Status      string                `json:"status"`
	ExpectedAt  *time.Time            `json:"expected_at,omitempty"`
	ReceivedAt  *time.Time            `json:"received_at,omitempty"`
	Note        string                `json:"note"`
	Lines       []InboundLineResponse `json:"lines"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ToInboundOrderResponse converts an inbound order to its API representation
func ToInboundOrderResponse(o *orders.InboundOrder) InboundOrderResponse {
	lines := make([]InboundLineResponse, len(o.Lines))
	for i := range o.Lines {
		lines[i] = InboundLineResponse{
			ID:         o.Lines[i].ID,
			ProductID:  o.Lines[i].ProductID,
			Quantity:   o.Lines[i].Quantity,
			LotNumber:  o.Lines[i].LotNumber,
			ExpiryDate: o.Lines[i].ExpiryDate,
		}
	}
	return InboundOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		SupplierID:  o.SupplierID,
		LocationID:  o.LocationID,
		Status:      string(o.Status),
		ExpectedAt:  o.ExpectedAt,
		ReceivedAt:  o.ReceivedAt,
		Note:        o.Note,
		Lines:       lines,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToInboundOrderResponses converts a slice of inbound orders
func ToInboundOrderResponses(list []orders.InboundOrder) []InboundOrderResponse {
	responses := make([]InboundOrderResponse, len(list))
	for i := range list {
		responses[i] = ToInboundOrderResponse(&list[i])
	}
	return responses
}

// OutboundLineResponse is the API representation of an outbound order line
type OutboundLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// OutboundOrderResponse is the API representation of an outbound order
type OutboundOrderResponse struct {
	ID           uuid.UUID              `json:"id"`
	OrderNumber  string                 `json:"order_number"`
	CustomerID   uuid.UUID              `json:"customer_id"`
	Status       string                 `json:"status"`
	DRNumber     string                 `json:"dr_number,omitempty"`
	RequiredBy   *time.Time             `json:"required_by,omitempty"`
	DispatchedAt *time.Time             `json:"dispatched_at,omitempty"`
	Note         string                 `json:"note"`
	Lines        []OutboundLineResponse `json:"lines"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// ToOutboundOrderResponse converts an outbound order to its API representation
func ToOutboundOrderResponse(o *orders.OutboundOrder) OutboundOrderResponse {
	lines := make([]OutboundLineResponse, len(o.Lines))
	for i := range o.Lines {
		lines[i] = OutboundLineResponse{
			ID:        o.Lines[i].ID,
			ProductID: o.Lines[i].ProductID,
			Quantity:  o.Lines[i].Quantity,
		}
	}
	return OutboundOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerID:   o.CustomerID,
		Status:       string(o.Status),
		DRNumber:     o.DRNumber,
		RequiredBy:   o.RequiredBy,
		DispatchedAt: o.DispatchedAt,
		Note:         o.Note,
		Lines:        lines,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// ToOutboundOrderResponses converts a slice of outbound orders
func ToOutboundOrderResponses(list []orders.OutboundOrder) []OutboundOrderResponse {
	responses := make([]OutboundOrderResponse, len(list))
	for i := range list {
		responses[i] = ToOutboundOrderResponse(&list[i])
	}
	return responses
}
