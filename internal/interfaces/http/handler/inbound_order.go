package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ordersapp "github.com/wms/backend/internal/application/orders"
	"go.uber.org/zap"
)

// InboundOrderHandler exposes inbound (receiving) orders over HTTP
type InboundOrderHandler struct {
	BaseHandler
	service *ordersapp.InboundService
}

// NewInboundOrderHandler creates an inbound order handler
func NewInboundOrderHandler(service *ordersapp.InboundService, logger *zap.Logger) *InboundOrderHandler {
	return &InboundOrderHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /inbound-orders
func (h *InboundOrderHandler) Create(c *gin.Context) {
	var req ordersapp.CreateInboundOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List handles GET /inbound-orders
func (h *InboundOrderHandler) List(c *gin.Context) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	query.normalize()

	filter := ordersapp.OrderListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		Status:   query.Status,
		Search:   query.Search,
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list, total, query.Page, query.PageSize)
}

// Get handles GET /inbound-orders/:id
func (h *InboundOrderHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Receive handles POST /inbound-orders/:id/receive. Receiving books every
// line into stock and stamps the order received.
func (h *InboundOrderHandler) Receive(c *gin.Context) {
	h.transition(c, h.service.Receive)
}

// Cancel handles POST /inbound-orders/:id/cancel
func (h *InboundOrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *InboundOrderHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*ordersapp.InboundOrderResponse, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	order, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
