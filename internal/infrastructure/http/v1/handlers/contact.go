package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/catalogs/contact"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// ContactHTTPHandler aliases the generic handler so signatures stay short.
type ContactHTTPHandler = CatalogHandler[
	*contact.Contact,
	dto.CreateContactRequest,
	dto.UpdateContactRequest,
]

// ContactHandler extends the generic catalog handler with contact
// specific endpoints.
type ContactHandler struct {
	*ContactHTTPHandler
	service *contact.Service
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(base *BaseHandler, service *contact.Service) *ContactHandler {
	config := CatalogHandlerConfig[
		*contact.Contact,
		dto.CreateContactRequest,
		dto.UpdateContactRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "contact",
		MapCreateDTO: func(req dto.CreateContactRequest) *contact.Contact {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateContactRequest, existing *contact.Contact) *contact.Contact {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &ContactHandler{
		ContactHTTPHandler: NewCatalogHandler(base, config),
		service:            service,
	}
}

// ByCustomer handles GET /contacts/by-customer/:customerId.
func (h *ContactHandler) ByCustomer(c *gin.Context) {
	ctx := c.Request.Context()

	customerID, err := id.Parse(c.Param("customerId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid customer id format"))
		return
	}

	contacts, err := h.service.ListByCustomer(ctx, customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": contacts})
}

// SetPrimary handles POST /contacts/:id/set-primary.
func (h *ContactHandler) SetPrimary(c *gin.Context) {
	ctx := c.Request.Context()

	contactID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.SetPrimary(ctx, contactID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "primary contact updated")
}

// RegisterRoutes registers contact routes.
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.ContactHTTPHandler.RegisterRoutes(rg)
	rg.GET("/by-customer/:customerId", h.ByCustomer)
	rg.POST("/:id/set-primary", h.SetPrimary)
}
