package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/wms/backend/internal/application/inventory"
	"go.uber.org/zap"
)

// InventoryHandler exposes lots, movements, availability and stock
// adjustments over HTTP
type InventoryHandler struct {
	BaseHandler
	service *inventoryapp.InventoryService
}

// NewInventoryHandler creates an inventory handler
func NewInventoryHandler(service *inventoryapp.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

type lotListQuery struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	InStock   bool   `form:"in_stock"`
}

// ListLots handles GET /inventory/lots
func (h *InventoryHandler) ListLots(c *gin.Context) {
	var query lotListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := inventoryapp.LotListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		InStock:  query.InStock,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if query.ProductID != "" {
		productID, err := uuid.Parse(query.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		filter.ProductID = &productID
	}

	lots, total, err := h.service.ListLots(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, lots, total, filter.Page, filter.PageSize)
}

// GetLot handles GET /inventory/lots/:id
func (h *InventoryHandler) GetLot(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	lot, err := h.service.GetLot(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lot)
}

type movementListQuery struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	LotID     string `form:"lot_id" binding:"omitempty,uuid"`
	Type      string `form:"type"`
}

// ListMovements handles GET /inventory/movements
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var query movementListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := inventoryapp.MovementListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Type:     query.Type,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if query.ProductID != "" {
		productID, err := uuid.Parse(query.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		filter.ProductID = &productID
	}
	if query.LotID != "" {
		lotID, err := uuid.Parse(query.LotID)
		if err != nil {
			h.BadRequest(c, "Invalid lot_id")
			return
		}
		filter.LotID = &lotID
	}

	movements, total, err := h.service.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// GetAvailability handles GET /inventory/availability/:id where :id is the
// product ID
func (h *InventoryHandler) GetAvailability(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	availability, err := h.service.GetAvailability(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, availability)
}

// AdjustStock handles POST /inventory/adjustments
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lot, err := h.service.AdjustStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lot)
}
