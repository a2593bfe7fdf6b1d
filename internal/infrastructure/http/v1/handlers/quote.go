package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/documents/quote"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// QuoteHandler handles quote endpoints.
type QuoteHandler struct {
	*BaseDocumentHandler[*quote.Quote, dto.CreateQuoteRequest, dto.UpdateQuoteRequest]
	service *quote.Service
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(base *BaseHandler, service *quote.Service) *QuoteHandler {
	config := BaseDocumentHandlerConfig[*quote.Quote, dto.CreateQuoteRequest, dto.UpdateQuoteRequest]{
		Service:    service,
		EntityName: "quote",
		MapCreateDTO: func(req dto.CreateQuoteRequest) *quote.Quote {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateQuoteRequest, existing *quote.Quote) *quote.Quote {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &QuoteHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		service:             service,
	}
}

// List handles GET /quotes.
func (h *QuoteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := quote.ListFilter{ListFilter: h.ParseListFilter(c)}
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err == nil {
			filter.CustomerID = &parsed
		}
	}
	if status := c.Query("status"); status != "" {
		s := quote.Status(status)
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

// Send handles POST /quotes/:id/send.
func (h *QuoteHandler) Send(c *gin.Context) {
	h.transition(c, h.service.Send)
}

// Accept handles POST /quotes/:id/accept.
func (h *QuoteHandler) Accept(c *gin.Context) {
	h.transition(c, h.service.Accept)
}

// Reject handles POST /quotes/:id/reject.
func (h *QuoteHandler) Reject(c *gin.Context) {
	h.transition(c, h.service.Reject)
}

// ConvertToInvoice handles POST /quotes/:id/convert.
func (h *QuoteHandler) ConvertToInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	inv, err := h.service.ConvertToInvoice(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, inv)
}

func (h *QuoteHandler) transition(c *gin.Context, op func(ctx context.Context, docID id.ID) (*quote.Quote, error)) {
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

// RegisterRoutes registers quote routes.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/send", h.Send)
	rg.POST("/:id/accept", h.Accept)
	rg.POST("/:id/reject", h.Reject)
	rg.POST("/:id/convert", h.ConvertToInvoice)
}
