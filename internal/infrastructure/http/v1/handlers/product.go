package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/domain/catalogs/product"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// ProductHTTPHandler aliases the generic handler so signatures stay short.
type ProductHTTPHandler = CatalogHandler[
	*product.Product,
	dto.CreateProductRequest,
	dto.UpdateProductRequest,
]

// ProductHandler extends the generic catalog handler with SKU lookup.
type ProductHandler struct {
	*ProductHTTPHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",
		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &ProductHandler{
		ProductHTTPHandler: NewCatalogHandler(base, config),
		service:            service,
	}
}

// BySKU handles GET /products/by-sku/:sku.
func (h *ProductHandler) BySKU(c *gin.Context) {
	ctx := c.Request.Context()

	sku := c.Param("sku")
	if sku == "" {
		h.Error(c, apperror.NewValidation("sku is required"))
		return
	}

	p, err := h.service.FindBySKU(ctx, sku)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}

// RegisterRoutes registers product routes.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.ProductHTTPHandler.RegisterRoutes(rg)
	rg.GET("/by-sku/:sku", h.BySKU)
}
