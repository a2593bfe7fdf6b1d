package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/documents/vendorbill"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// VendorBillHandler handles vendor bill endpoints.
type VendorBillHandler struct {
	*BaseDocumentHandler[*vendorbill.VendorBill, dto.CreateVendorBillRequest, dto.UpdateVendorBillRequest]
	service *vendorbill.Service
}

// NewVendorBillHandler creates a new vendor bill handler.
func NewVendorBillHandler(base *BaseHandler, service *vendorbill.Service) *VendorBillHandler {
	config := BaseDocumentHandlerConfig[*vendorbill.VendorBill, dto.CreateVendorBillRequest, dto.UpdateVendorBillRequest]{
		Service:    service,
		EntityName: "vendor_bill",
		MapCreateDTO: func(req dto.CreateVendorBillRequest) *vendorbill.VendorBill {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateVendorBillRequest, existing *vendorbill.VendorBill) *vendorbill.VendorBill {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &VendorBillHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		service:             service,
	}
}

// List handles GET /vendor-bills.
func (h *VendorBillHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := vendorbill.ListFilter{ListFilter: h.ParseListFilter(c)}
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if vendorID := c.Query("vendorId"); vendorID != "" {
		parsed, err := id.Parse(vendorID)
		if err == nil {
			filter.VendorID = &parsed
		}
	}
	if status := c.Query("status"); status != "" {
		s := vendorbill.Status(status)
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

// Open handles POST /vendor-bills/:id/open.
func (h *VendorBillHandler) Open(c *gin.Context) {
	h.transition(c, h.service.Open)
}

// Void handles POST /vendor-bills/:id/void.
func (h *VendorBillHandler) Void(c *gin.Context) {
	h.transition(c, h.service.Void)
}

// RecordPayment handles POST /vendor-bills/:id/record-payment.
func (h *VendorBillHandler) RecordPayment(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.RecordBillPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.RecordPayment(ctx, docID, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

func (h *VendorBillHandler) transition(c *gin.Context, op func(ctx context.Context, docID id.ID) (*vendorbill.VendorBill, error)) {
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

// RegisterRoutes registers vendor bill routes.
func (h *VendorBillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/open", h.Open)
	rg.POST("/:id/void", h.Void)
	rg.POST("/:id/record-payment", h.RecordPayment)
}
