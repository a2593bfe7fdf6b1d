package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/catalogs/customer"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// CustomerHTTPHandler aliases the generic handler so signatures stay short.
type CustomerHTTPHandler = CatalogHandler[
	*customer.Customer,
	dto.CreateCustomerRequest,
	dto.UpdateCustomerRequest,
]

// CustomerHandler extends the generic catalog handler with customer
// specific endpoints.
type CustomerHandler struct {
	*CustomerHTTPHandler
	service *customer.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	config := CatalogHandlerConfig[
		*customer.Customer,
		dto.CreateCustomerRequest,
		dto.UpdateCustomerRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "customer",
		MapCreateDTO: func(req dto.CreateCustomerRequest) *customer.Customer {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) *customer.Customer {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &CustomerHandler{
		CustomerHTTPHandler: NewCatalogHandler(base, config),
		service:             service,
	}
}

// Balance handles GET /customers/:id/balance.
func (h *CustomerHandler) Balance(c *gin.Context) {
	ctx := c.Request.Context()

	customerID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	balance, err := h.service.OutstandingBalance(ctx, customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.CustomerBalanceResponse{
		CustomerID: customerID.String(),
		Balance:    balance,
	})
}

// RegisterRoutes registers customer routes.
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.CustomerHTTPHandler.RegisterRoutes(rg)
	rg.GET("/:id/balance", h.Balance)
}
