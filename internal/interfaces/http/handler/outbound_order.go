package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ordersapp "github.com/wms/backend/internal/application/orders"
	"go.uber.org/zap"
)

// OutboundOrderHandler exposes outbound (dispatch) orders over HTTP
type OutboundOrderHandler struct {
	BaseHandler
	service *ordersapp.OutboundService
}

// NewOutboundOrderHandler creates an outbound order handler
func NewOutboundOrderHandler(service *ordersapp.OutboundService, logger *zap.Logger) *OutboundOrderHandler {
	return &OutboundOrderHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /outbound-orders
func (h *OutboundOrderHandler) Create(c *gin.Context) {
	var req ordersapp.CreateOutboundOrderRequest
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

// List handles GET /outbound-orders
func (h *OutboundOrderHandler) List(c *gin.Context) {
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

// Get handles GET /outbound-orders/:id
func (h *OutboundOrderHandler) Get(c *gin.Context) {
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

// Dispatch handles POST /outbound-orders/:id/dispatch. Dispatching deducts
// stock FEFO, assigns the delivery receipt number and stamps the order
// dispatched.
func (h *OutboundOrderHandler) Dispatch(c *gin.Context) {
	h.transition(c, h.service.Dispatch)
}

// Amend handles POST /outbound-orders/:id/amend. Amendment changes one
// line's quantity on a dispatched order and settles the stock difference.
func (h *OutboundOrderHandler) Amend(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req ordersapp.AmendOutboundOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.Amend(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel handles POST /outbound-orders/:id/cancel
func (h *OutboundOrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *OutboundOrderHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*ordersapp.OutboundOrderResponse, error)) {
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
