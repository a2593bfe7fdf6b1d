package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/payment"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// PaymentHandler handles customer payment endpoints.
type PaymentHandler struct {
	*BaseHandler
	service *payment.Service
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(base *BaseHandler, service *payment.Service) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	if err := h.service.Create(ctx, p); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, p)
}

// Get handles GET /payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	paymentID, ok := h.ParseID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(ctx, paymentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}

// List handles GET /payments.
func (h *PaymentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := payment.ListFilter{ListFilter: h.ParseListFilter(c)}
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err == nil {
			filter.CustomerID = &parsed
		}
	}
	if method := c.Query("method"); method != "" {
		m := payment.Method(method)
		filter.Method = &m
	}
	filter.Unallocated = c.Query("unallocated") == "true"

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

// Delete handles DELETE /payments/:id.
func (h *PaymentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	paymentID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, paymentID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Allocate handles POST /payments/:id/allocations.
func (h *PaymentHandler) Allocate(c *gin.Context) {
	ctx := c.Request.Context()

	paymentID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.AllocatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoiceID, err := id.Parse(req.InvoiceID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid invoice id format"))
		return
	}

	alloc, err := h.service.Allocate(ctx, paymentID, invoiceID, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, alloc)
}

// Deallocate handles DELETE /payments/allocations/:allocationId.
func (h *PaymentHandler) Deallocate(c *gin.Context) {
	ctx := c.Request.Context()

	allocationID, err := id.Parse(c.Param("allocationId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid allocation id format"))
		return
	}

	if err := h.service.Deallocate(ctx, allocationID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers payment routes.
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.DELETE("/allocations/:allocationId", h.Deallocate)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/allocations", h.Allocate)
}
