package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/ledger"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// LedgerHandler handles journal entry endpoints.
// Entries are immutable once written; the API offers create, read and
// list but no update or delete.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /journal-entries. Manual entries only.
func (h *LedgerHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateJournalEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry := req.ToEntity()
	if err := h.service.CreateEntry(ctx, entry); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entry)
}

// Get handles GET /journal-entries/:id.
func (h *LedgerHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entryID, ok := h.ParseID(c)
	if !ok {
		return
	}

	entry, err := h.service.GetByID(ctx, entryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entry)
}

// List handles GET /journal-entries.
func (h *LedgerHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := ledger.ListFilter{ListFilter: h.ParseListFilter(c)}
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if sourceType := c.Query("sourceType"); sourceType != "" {
		st := ledger.SourceType(sourceType)
		filter.SourceType = &st
	}
	if accountID := c.Query("accountId"); accountID != "" {
		parsed, err := id.Parse(accountID)
		if err == nil {
			filter.AccountID = &parsed
		}
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

// BySource handles GET /journal-entries/by-source/:sourceId.
func (h *LedgerHandler) BySource(c *gin.Context) {
	ctx := c.Request.Context()

	sourceID, err := id.Parse(c.Param("sourceId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid source id format"))
		return
	}

	entries, err := h.service.ListBySource(ctx, sourceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": entries})
}

// RegisterRoutes registers journal entry routes.
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/by-source/:sourceId", h.BySource)
	rg.GET("/:id", h.Get)
}
