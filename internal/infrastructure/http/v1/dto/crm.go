package dto

import (
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/crm"
)

// --- Opportunities ---

// CreateOpportunityRequest is the request body for creating an opportunity.
type CreateOpportunityRequest struct {
	CustomerID    string      `json:"customerId" binding:"required"`
	Name          string      `json:"name" binding:"required"`
	Amount        types.Money `json:"amount"`
	ExpectedClose *time.Time  `json:"expectedClose"`
	Notes         string      `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateOpportunityRequest) ToEntity() *crm.Opportunity {
	customerID, _ := id.Parse(r.CustomerID)

	o := crm.NewOpportunity(customerID, r.Name)
	o.Amount = r.Amount
	o.ExpectedClose = r.ExpectedClose
	o.Notes = r.Notes
	return o
}

// UpdateOpportunityRequest is the request body for updating an opportunity.
type UpdateOpportunityRequest struct {
	Name          string      `json:"name" binding:"required"`
	Amount        types.Money `json:"amount"`
	ExpectedClose *time.Time  `json:"expectedClose"`
	Notes         string      `json:"notes"`
	Version       int         `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to an existing entity.
// Stage changes go through the move-stage endpoint, not here.
func (r *UpdateOpportunityRequest) ApplyTo(o *crm.Opportunity) {
	o.Name = r.Name
	o.Amount = r.Amount
	o.ExpectedClose = r.ExpectedClose
	o.Notes = r.Notes
	o.Version = r.Version
}

// MoveStageRequest advances or rewinds an opportunity stage.
type MoveStageRequest struct {
	Stage crm.Stage `json:"stage" binding:"required"`
}

// --- Activities ---

// CreateActivityRequest is the request body for creating an activity.
type CreateActivityRequest struct {
	CustomerID    string           `json:"customerId" binding:"required"`
	OpportunityID *string          `json:"opportunityId"`
	Type          crm.ActivityType `json:"type" binding:"required"`
	Subject       string           `json:"subject" binding:"required"`
	DueDate       time.Time        `json:"dueDate" binding:"required"`
	Notes         string           `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateActivityRequest) ToEntity() *crm.Activity {
	customerID, _ := id.Parse(r.CustomerID)

	a := crm.NewActivity(customerID, r.Type, r.Subject, r.DueDate)
	a.OpportunityID = parseOptionalID(r.OpportunityID)
	a.Notes = r.Notes
	return a
}

// UpdateActivityRequest is the request body for updating an activity.
type UpdateActivityRequest struct {
	Type    crm.ActivityType `json:"type" binding:"required"`
	Subject string           `json:"subject" binding:"required"`
	DueDate time.Time        `json:"dueDate" binding:"required"`
	Notes   string           `json:"notes"`
	Version int              `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to an existing entity.
func (r *UpdateActivityRequest) ApplyTo(a *crm.Activity) {
	a.Type = r.Type
	a.Subject = r.Subject
	a.DueDate = r.DueDate
	a.Notes = r.Notes
	a.Version = r.Version
}
