package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/domain/catalogs/location"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// LocationHTTPHandler aliases the generic handler so signatures stay short.
type LocationHTTPHandler = CatalogHandler[
	*location.Location,
	dto.CreateLocationRequest,
	dto.UpdateLocationRequest,
]

// LocationHandler extends the generic catalog handler with the
// default-location lookup.
type LocationHandler struct {
	*LocationHTTPHandler
	service *location.Service
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(base *BaseHandler, service *location.Service) *LocationHandler {
	config := CatalogHandlerConfig[
		*location.Location,
		dto.CreateLocationRequest,
		dto.UpdateLocationRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "location",
		MapCreateDTO: func(req dto.CreateLocationRequest) *location.Location {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateLocationRequest, existing *location.Location) *location.Location {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &LocationHandler{
		LocationHTTPHandler: NewCatalogHandler(base, config),
		service:             service,
	}
}

// Default handles GET /locations/default.
func (h *LocationHandler) Default(c *gin.Context) {
	ctx := c.Request.Context()

	loc, err := h.service.GetDefault(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, loc)
}

// RegisterRoutes registers location routes.
func (h *LocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Static route first so gin does not swallow it with :id.
	rg.GET("/default", h.Default)
	h.LocationHTTPHandler.RegisterRoutes(rg)
}
