package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/inventory"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles stock operations and queries.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Receive handles POST /inventory/receive.
func (h *InventoryHandler) Receive(c *gin.Context) {
	h.movement(c, h.service.Receive)
}

// Ship handles POST /inventory/ship.
func (h *InventoryHandler) Ship(c *gin.Context) {
	h.movement(c, h.service.Ship)
}

// Return handles POST /inventory/return.
func (h *InventoryHandler) Return(c *gin.Context) {
	h.movement(c, h.service.Return)
}

func (h *InventoryHandler) movement(c *gin.Context, op func(ctx context.Context, p inventory.MovementParams) (*inventory.StockMovement, error)) {
	ctx := c.Request.Context()

	var req dto.StockMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	mv, err := op(ctx, req.ToParams())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, mv)
}

// Transfer handles POST /inventory/transfer.
func (h *InventoryHandler) Transfer(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.StockTransferRequest
	if !h.BindJSON(c, &req) {
		return
	}

	movements, err := h.service.Transfer(ctx, req.ToParams())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"movements": movements})
}

// Adjust handles POST /inventory/adjust.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.StockAdjustRequest
	if !h.BindJSON(c, &req) {
		return
	}

	params := req.ToParams()
	mv, err := h.service.Adjust(ctx, params)
	if err != nil {
		h.Error(c, err)
		return
	}

	// A nil movement means the level already matched the requested
	// quantity and nothing was written.
	if mv == nil {
		level, err := h.service.GetLevel(ctx, params.ProductID, params.LocationID)
		if err != nil {
			h.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"adjusted": false, "level": level})
		return
	}

	h.Created(c, mv)
}

// Level handles GET /inventory/levels/:productId/:locationId.
func (h *InventoryHandler) Level(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id format"))
		return
	}
	locationID, err := id.Parse(c.Param("locationId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid location id format"))
		return
	}

	level, err := h.service.GetLevel(ctx, productID, locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, level)
}

// Availability handles GET /inventory/availability/:productId.
func (h *InventoryHandler) Availability(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id format"))
		return
	}

	available, err := h.service.GetProductAvailability(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ProductAvailabilityResponse{
		ProductID: productID.String(),
		Available: available,
	})
}

// LocationStock handles GET /inventory/locations/:locationId/stock.
func (h *InventoryHandler) LocationStock(c *gin.Context) {
	ctx := c.Request.Context()

	locationID, err := id.Parse(c.Param("locationId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid location id format"))
		return
	}

	levels, err := h.service.ListLocationStock(ctx, locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": levels})
}

// History handles GET /inventory/movements.
func (h *InventoryHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	filter := inventory.MovementFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if productID := c.Query("productId"); productID != "" {
		parsed, err := id.Parse(productID)
		if err == nil {
			filter.ProductID = &parsed
		}
	}
	if locationID := c.Query("locationId"); locationID != "" {
		parsed, err := id.Parse(locationID)
		if err == nil {
			filter.LocationID = &parsed
		}
	}
	if mvType := c.Query("type"); mvType != "" {
		t := inventory.MovementType(mvType)
		filter.Type = &t
	}

	var err error
	if filter.FromDate, err = h.ParseDateQuery(c, "dateFrom"); err != nil {
		h.Error(c, err)
		return
	}
	if filter.ToDate, err = h.ParseDateQuery(c, "dateTo"); err != nil {
		h.Error(c, err)
		return
	}

	movements, err := h.service.History(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": movements})
}

// RegisterRoutes registers inventory routes.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/receive", h.Receive)
	rg.POST("/ship", h.Ship)
	rg.POST("/return", h.Return)
	rg.POST("/transfer", h.Transfer)
	rg.POST("/adjust", h.Adjust)
	rg.GET("/levels/:productId/:locationId", h.Level)
	rg.GET("/availability/:productId", h.Availability)
	rg.GET("/locations/:locationId/stock", h.LocationStock)
	rg.GET("/movements", h.History)
}
