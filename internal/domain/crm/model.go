// Package crm provides the sales pipeline side of the system:
// opportunities moving through stages and activities scheduled against
// customers.
package crm

import (
	"context"
	"time"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

// Stage defines the opportunity pipeline stage.
type Stage string

const (
	StageLead      Stage = "lead"
	StageQualified Stage = "qualified"
	StageProposal  Stage = "proposal"
	StageWon       Stage = "won"
	StageLost      Stage = "lost"
)

// IsTerminal reports whether the stage ends the pipeline.
func (s Stage) IsTerminal() bool {
	return s == StageWon || s == StageLost
}

// IsValidStage reports whether s is a known pipeline stage.
func IsValidStage(s Stage) bool {
	switch s {
	case StageLead, StageQualified, StageProposal, StageWon, StageLost:
		return true
	}
	return false
}

// Opportunity represents a potential deal with a customer.
type Opportunity struct {
	entity.BaseDocument

	CustomerID id.ID `db:"customer_id" json:"customerId"`

	Name  string `db:"name" json:"name"`
	Stage Stage  `db:"stage" json:"stage"`

	// Amount is the estimated deal value
	Amount types.Money `db:"amount" json:"amount"`

	ExpectedClose *time.Time `db:"expected_close" json:"expectedClose,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewOpportunity creates a new opportunity in the lead stage.
func NewOpportunity(customerID id.ID, name string) *Opportunity {
	return &Opportunity{
		BaseDocument: entity.NewBaseDocument(),
		CustomerID:   customerID,
		Name:         name,
		Stage:        StageLead,
		Amount:       types.Zero(),
	}
}

// MoveStage transitions the opportunity to a new stage.
// Won and lost are terminal.
func (o *Opportunity) MoveStage(to Stage) error {
	if !IsValidStage(to) {
		return apperror.NewValidation("unknown stage").
			WithDetail("stage", string(to))
	}
	if o.Stage.IsTerminal() {
		return apperror.NewInvalidStateTransition("opportunity", string(o.Stage), "move stage")
	}
	if to == o.Stage {
		return nil
	}
	o.Stage = to
	o.Touch()
	return nil
}

// Validate implements entity.Validatable.
func (o *Opportunity) Validate(ctx context.Context) error {
	if id.IsNil(o.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if o.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !IsValidStage(o.Stage) {
		return apperror.NewValidation("unknown stage").
			WithDetail("stage", string(o.Stage))
	}
	if o.Amount.IsNegative() {
		return apperror.NewValidation("amount cannot be negative").
			WithDetail("field", "amount")
	}
	return nil
}

// ActivityType defines the kind of scheduled activity.
type ActivityType string

const (
	ActivityCall    ActivityType = "call"
	ActivityMeeting ActivityType = "meeting"
	ActivityEmail   ActivityType = "email"
	ActivityTask    ActivityType = "task"
)

// IsValidActivityType reports whether t is a known activity type.
func IsValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityCall, ActivityMeeting, ActivityEmail, ActivityTask:
		return true
	}
	return false
}

// Activity represents a scheduled interaction with a customer.
type Activity struct {
	entity.BaseDocument

	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// OpportunityID optionally ties the activity to a deal
	OpportunityID *id.ID `db:"opportunity_id" json:"opportunityId,omitempty"`

	Type    ActivityType `db:"type" json:"type"`
	Subject string       `db:"subject" json:"subject"`

	DueDate time.Time `db:"due_date" json:"dueDate"`

	Done        bool       `db:"done" json:"done"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewActivity creates a new open activity.
func NewActivity(customerID id.ID, activityType ActivityType, subject string, dueDate time.Time) *Activity {
	return &Activity{
		BaseDocument: entity.NewBaseDocument(),
		CustomerID:   customerID,
		Type:         activityType,
		Subject:      subject,
		DueDate:      dueDate,
	}
}

// Complete marks the activity done. Completing twice is an error.
func (a *Activity) Complete(at time.Time) error {
	if a.Done {
		return apperror.NewInvalidStateTransition("activity", "done", "complete")
	}
	a.Done = true
	a.CompletedAt = &at
	a.Touch()
	return nil
}

// Reopen clears the done flag.
func (a *Activity) Reopen() {
	a.Done = false
	a.CompletedAt = nil
	a.Touch()
}

// IsOverdue reports whether an open activity is past its due date.
func (a *Activity) IsOverdue(asOf time.Time) bool {
	return !a.Done && asOf.After(a.DueDate)
}

// Validate implements entity.Validatable.
func (a *Activity) Validate(ctx context.Context) error {
	if id.IsNil(a.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if !IsValidActivityType(a.Type) {
		return apperror.NewValidation("unknown activity type").
			WithDetail("type", string(a.Type))
	}
	if a.Subject == "" {
		return apperror.NewValidation("subject is required").
			WithDetail("field", "subject")
	}
	if a.DueDate.IsZero() {
		return apperror.NewValidation("due date is required").
			WithDetail("field", "dueDate")
	}
	return nil
}
