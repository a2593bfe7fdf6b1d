package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/catalogs/account"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// AccountHTTPHandler aliases the generic handler so signatures stay short.
type AccountHTTPHandler = CatalogHandler[
	*account.Account,
	dto.CreateAccountRequest,
	dto.UpdateAccountRequest,
]

// AccountHandler extends the generic catalog handler with chart of
// accounts specific endpoints.
type AccountHandler struct {
	*AccountHTTPHandler
	service *account.Service
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(base *BaseHandler, service *account.Service) *AccountHandler {
	config := CatalogHandlerConfig[
		*account.Account,
		dto.CreateAccountRequest,
		dto.UpdateAccountRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "account",
		MapCreateDTO: func(req dto.CreateAccountRequest) *account.Account {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateAccountRequest, existing *account.Account) *account.Account {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &AccountHandler{
		AccountHTTPHandler: NewCatalogHandler(base, config),
		service:            service,
	}
}

// ByType handles GET /accounts/by-type/:type.
func (h *AccountHandler) ByType(c *gin.Context) {
	ctx := c.Request.Context()

	accType := account.AccountType(c.Param("type"))
	accounts, err := h.service.ListByType(ctx, accType)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": accounts})
}

// Deactivate handles POST /accounts/:id/deactivate.
func (h *AccountHandler) Deactivate(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Deactivate(ctx, accountID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "account deactivated")
}

// RegisterRoutes registers account routes.
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.AccountHTTPHandler.RegisterRoutes(rg)
	rg.GET("/by-type/:type", h.ByType)
	rg.POST("/:id/deactivate", h.Deactivate)
}
