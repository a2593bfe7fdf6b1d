package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/reports"
)

// ReportsHandler handles financial report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// asOf reads the asOf query parameter, defaulting to now.
func (h *ReportsHandler) asOf(c *gin.Context) (time.Time, error) {
	parsed, err := h.ParseDateQuery(c, "asOf")
	if err != nil {
		return time.Time{}, err
	}
	if parsed == nil {
		return time.Now().UTC(), nil
	}
	return *parsed, nil
}

// period reads the required start/end query parameters.
func (h *ReportsHandler) period(c *gin.Context) (time.Time, time.Time, error) {
	start, err := h.ParseDateQuery(c, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := h.ParseDateQuery(c, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start == nil || end == nil {
		return time.Time{}, time.Time{}, apperror.NewValidation("start and end dates are required")
	}
	return *start, *end, nil
}

// TrialBalance handles GET /reports/trial-balance.
func (h *ReportsHandler) TrialBalance(c *gin.Context) {
	ctx := c.Request.Context()

	asOf, err := h.asOf(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.TrialBalance(ctx, asOf)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// ProfitAndLoss handles GET /reports/profit-and-loss.
func (h *ReportsHandler) ProfitAndLoss(c *gin.Context) {
	ctx := c.Request.Context()

	start, end, err := h.period(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.ProfitAndLoss(ctx, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// BalanceSheet handles GET /reports/balance-sheet.
func (h *ReportsHandler) BalanceSheet(c *gin.Context) {
	ctx := c.Request.Context()

	asOf, err := h.asOf(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.BalanceSheet(ctx, asOf)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// ARAging handles GET /reports/ar-aging.
func (h *ReportsHandler) ARAging(c *gin.Context) {
	ctx := c.Request.Context()

	asOf, err := h.asOf(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.ARAging(ctx, asOf)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// CustomerStatement handles GET /reports/customer-statement/:customerId.
func (h *ReportsHandler) CustomerStatement(c *gin.Context) {
	ctx := c.Request.Context()

	customerID, err := id.Parse(c.Param("customerId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid customer id format"))
		return
	}

	start, end, err := h.period(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.CustomerStatement(ctx, customerID, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// RevenueSummary handles GET /reports/revenue-summary.
func (h *ReportsHandler) RevenueSummary(c *gin.Context) {
	ctx := c.Request.Context()

	start, end, err := h.period(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.RevenueSummary(ctx, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/trial-balance", h.TrialBalance)
	rg.GET("/profit-and-loss", h.ProfitAndLoss)
	rg.GET("/balance-sheet", h.BalanceSheet)
	rg.GET("/ar-aging", h.ARAging)
	rg.GET("/customer-statement/:customerId", h.CustomerStatement)
	rg.GET("/revenue-summary", h.RevenueSummary)
}
