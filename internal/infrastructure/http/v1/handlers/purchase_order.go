package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/documents/purchaseorder"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// PurchaseOrderHandler handles purchase order endpoints.
type PurchaseOrderHandler struct {
	*BaseDocumentHandler[*purchaseorder.PurchaseOrder, dto.CreatePurchaseOrderRequest, dto.UpdatePurchaseOrderRequest]
	service *purchaseorder.Service
}

// NewPurchaseOrderHandler creates a new purchase order handler.
func NewPurchaseOrderHandler(base *BaseHandler, service *purchaseorder.Service) *PurchaseOrderHandler {
	config := BaseDocumentHandlerConfig[*purchaseorder.PurchaseOrder, dto.CreatePurchaseOrderRequest, dto.UpdatePurchaseOrderRequest]{
		Service:    service,
		EntityName: "purchase_order",
		MapCreateDTO: func(req dto.CreatePurchaseOrderRequest) *purchaseorder.PurchaseOrder {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdatePurchaseOrderRequest, existing *purchaseorder.PurchaseOrder) *purchaseorder.PurchaseOrder {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &PurchaseOrderHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		service:             service,
	}
}

// List handles GET /purchase-orders.
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := purchaseorder.ListFilter{ListFilter: h.ParseListFilter(c)}
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if vendorID := c.Query("vendorId"); vendorID != "" {
		parsed, err := id.Parse(vendorID)
		if err == nil {
			filter.VendorID = &parsed
		}
	}
	if locationID := c.Query("locationId"); locationID != "" {
		parsed, err := id.Parse(locationID)
		if err == nil {
			filter.LocationID = &parsed
		}
	}
	if status := c.Query("status"); status != "" {
		s := purchaseorder.Status(status)
		filter.Status = &s
	}

	var err error
	if filter.DateFrom, err = h.ParseDateQuery(c, "dateFrom"); err != nil {
		h.Error(c, err)
		return
	}
	if filter.DateTo, err = h.ParseDateQuery(c, "dateTo"); err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Send handles POST /purchase-orders/:id/send.
func (h *PurchaseOrderHandler) Send(c *gin.Context) {
	h.transition(c, h.service.Send)
}

// Cancel handles POST /purchase-orders/:id/cancel.
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

// Receive handles POST /purchase-orders/:id/receive.
// Records received quantities and books the stock into the order's
// location.
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.ReceivePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Receive(ctx, docID, req.ToReceiptLines())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

func (h *PurchaseOrderHandler) transition(c *gin.Context, op func(ctx context.Context, docID id.ID) (*purchaseorder.PurchaseOrder, error)) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := op(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// RegisterRoutes registers purchase order routes.
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/send", h.Send)
	rg.POST("/:id/cancel", h.Cancel)
	rg.POST("/:id/receive", h.Receive)
}
