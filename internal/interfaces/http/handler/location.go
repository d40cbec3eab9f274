package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/wms/backend/internal/application/partner"
	"go.uber.org/zap"
)

// LocationHandler exposes storage location management over HTTP
type LocationHandler struct {
	BaseHandler
	service *partnerapp.LocationService
}

// NewLocationHandler creates a storage location handler
func NewLocationHandler(service *partnerapp.LocationService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create handles POST /locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req partnerapp.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, location)
}

// List handles GET /locations
func (h *LocationHandler) List(c *gin.Context) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	query.normalize()

	locations, total, err := h.service.List(c.Request.Context(), partnerListFilter(query))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, locations, total, query.Page, query.PageSize)
}

// Get handles GET /locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	location, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// Update handles PUT /locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req partnerapp.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// Activate handles POST /locations/:id/activate
func (h *LocationHandler) Activate(c *gin.Context) {
	h.transition(c, h.service.Activate)
}

// Deactivate handles POST /locations/:id/deactivate
func (h *LocationHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.service.Deactivate)
}

// Delete handles DELETE /locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *LocationHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*partnerapp.LocationResponse, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	location, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}
