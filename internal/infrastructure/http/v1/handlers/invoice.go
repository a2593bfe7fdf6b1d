package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/documents/invoice"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	*BaseDocumentHandler[*invoice.Invoice, dto.CreateInvoiceRequest, dto.UpdateInvoiceRequest]
	service *invoice.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	config := BaseDocumentHandlerConfig[*invoice.Invoice, dto.CreateInvoiceRequest, dto.UpdateInvoiceRequest]{
		Service:    service,
		EntityName: "invoice",
		MapCreateDTO: func(req dto.CreateInvoiceRequest) *invoice.Invoice {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateInvoiceRequest, existing *invoice.Invoice) *invoice.Invoice {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &InvoiceHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		service:             service,
	}
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := invoice.ListFilter{ListFilter: h.ParseListFilter(c)}
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err == nil {
			filter.CustomerID = &parsed
		}
	}
	if status := c.Query("status"); status != "" {
		s := invoice.Status(status)
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
	if filter.OverdueAsOf, err = h.ParseDateQuery(c, "overdueAsOf"); err != nil {
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

// Send handles POST /invoices/:id/send.
func (h *InvoiceHandler) Send(c *gin.Context) {
	h.transition(c, h.service.Send)
}

// Void handles POST /invoices/:id/void.
func (h *InvoiceHandler) Void(c *gin.Context) {
	h.transition(c, h.service.Void)
}

func (h *InvoiceHandler) transition(c *gin.Context, op func(ctx context.Context, docID id.ID) (*invoice.Invoice, error)) {
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

// RegisterRoutes registers invoice routes.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/send", h.Send)
	rg.POST("/:id/void", h.Void)
}
