package handlers

import (
	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/crm"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// CRMHandler handles opportunity and activity endpoints.
type CRMHandler struct {
	*BaseHandler
	service *crm.Service
}

// NewCRMHandler creates a new CRM handler.
func NewCRMHandler(base *BaseHandler, service *crm.Service) *CRMHandler {
	return &CRMHandler{
		BaseHandler: base,
		service:     service,
	}
}

// --- Opportunities ---

// CreateOpportunity handles POST /crm/opportunities.
func (h *CRMHandler) CreateOpportunity(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOpportunityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o := req.ToEntity()
	if err := h.service.CreateOpportunity(ctx, o); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, o)
}

// GetOpportunity handles GET /crm/opportunities/:id.
func (h *CRMHandler) GetOpportunity(c *gin.Context) {
	ctx := c.Request.Context()

	opID, ok := h.ParseID(c)
	if !ok {
		return
	}

	o, err := h.service.GetOpportunity(ctx, opID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}

// UpdateOpportunity handles PUT /crm/opportunities/:id.
func (h *CRMHandler) UpdateOpportunity(c *gin.Context) {
	ctx := c.Request.Context()

	opID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateOpportunityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.service.GetOpportunity(ctx, opID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(o)
	if err := h.service.UpdateOpportunity(ctx, o); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}

// MoveOpportunityStage handles POST /crm/opportunities/:id/move-stage.
func (h *CRMHandler) MoveOpportunityStage(c *gin.Context) {
	ctx := c.Request.Context()

	opID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.MoveStageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.service.MoveOpportunityStage(ctx, opID, req.Stage)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, o)
}

// DeleteOpportunity handles DELETE /crm/opportunities/:id.
func (h *CRMHandler) DeleteOpportunity(c *gin.Context) {
	ctx := c.Request.Context()

	opID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteOpportunity(ctx, opID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// ListOpportunities handles GET /crm/opportunities.
func (h *CRMHandler) ListOpportunities(c *gin.Context) {
	ctx := c.Request.Context()

	filter := crm.OpportunityFilter{
		Limit:  uint64(h.ParseIntQuery(c, "limit", 50)),
		Offset: uint64(h.ParseIntQuery(c, "offset", 0)),
	}

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err == nil {
			filter.CustomerID = &parsed
		}
	}
	if stage := c.Query("stage"); stage != "" {
		s := crm.Stage(stage)
		filter.Stage = &s
	}

	opportunities, err := h.service.ListOpportunities(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": opportunities})
}

// --- Activities ---

// CreateActivity handles POST /crm/activities.
func (h *CRMHandler) CreateActivity(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateActivityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a := req.ToEntity()
	if err := h.service.CreateActivity(ctx, a); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, a)
}

// GetActivity handles GET /crm/activities/:id.
func (h *CRMHandler) GetActivity(c *gin.Context) {
	ctx := c.Request.Context()

	activityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	a, err := h.service.GetActivity(ctx, activityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, a)
}

// UpdateActivity handles PUT /crm/activities/:id.
func (h *CRMHandler) UpdateActivity(c *gin.Context) {
	ctx := c.Request.Context()

	activityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateActivityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.service.GetActivity(ctx, activityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(a)
	if err := h.service.UpdateActivity(ctx, a); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, a)
}

// CompleteActivity handles POST /crm/activities/:id/complete.
func (h *CRMHandler) CompleteActivity(c *gin.Context) {
	ctx := c.Request.Context()

	activityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	a, err := h.service.CompleteActivity(ctx, activityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, a)
}

// DeleteActivity handles DELETE /crm/activities/:id.
func (h *CRMHandler) DeleteActivity(c *gin.Context) {
	ctx := c.Request.Context()

	activityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteActivity(ctx, activityID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// ListActivities handles GET /crm/activities.
func (h *CRMHandler) ListActivities(c *gin.Context) {
	ctx := c.Request.Context()

	filter := crm.ActivityFilter{
		Limit:  uint64(h.ParseIntQuery(c, "limit", 50)),
		Offset: uint64(h.ParseIntQuery(c, "offset", 0)),
	}

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err == nil {
			filter.CustomerID = &parsed
		}
	}
	if opportunityID := c.Query("opportunityId"); opportunityID != "" {
		parsed, err := id.Parse(opportunityID)
		if err == nil {
			filter.OpportunityID = &parsed
		}
	}
	if activityType := c.Query("type"); activityType != "" {
		t := crm.ActivityType(activityType)
		filter.Type = &t
	}
	if done := c.Query("done"); done != "" {
		val := done == "true"
		filter.Done = &val
	}

	var err error
	if filter.OverdueAsOf, err = h.ParseDateQuery(c, "overdueAsOf"); err != nil {
		h.Error(c, err)
		return
	}

	activities, err := h.service.ListActivities(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": activities})
}

// RegisterRoutes registers CRM routes.
func (h *CRMHandler) RegisterRoutes(rg *gin.RouterGroup) {
	opportunities := rg.Group("/opportunities")
	{
		opportunities.GET("", h.ListOpportunities)
		opportunities.POST("", h.CreateOpportunity)
		opportunities.GET("/:id", h.GetOpportunity)
		opportunities.PUT("/:id", h.UpdateOpportunity)
		opportunities.DELETE("/:id", h.DeleteOpportunity)
		opportunities.POST("/:id/move-stage", h.MoveOpportunityStage)
	}

	activities := rg.Group("/activities")
	{
		activities.GET("", h.ListActivities)
		activities.POST("", h.CreateActivity)
		activities.GET("/:id", h.GetActivity)
		activities.PUT("/:id", h.UpdateActivity)
		activities.DELETE("/:id", h.DeleteActivity)
		activities.POST("/:id/complete", h.CompleteActivity)
	}
}
