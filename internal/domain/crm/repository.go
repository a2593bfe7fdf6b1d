package crm

import (
	"context"
	"time"

	"ledgerhouse/internal/core/id"
)

// OpportunityFilter narrows opportunity listings.
type OpportunityFilter struct {
	CustomerID *id.ID
	Stage      *Stage

	Limit  uint64
	Offset uint64
}

// ActivityFilter narrows activity listings.
type ActivityFilter struct {
	CustomerID    *id.ID
	OpportunityID *id.ID
	Type          *ActivityType
	Done          *bool

	// OverdueAsOf selects open activities due before the given time
	OverdueAsOf *time.Time

	Limit  uint64
	Offset uint64
}

// OpportunityRepository defines persistence for opportunities.
type OpportunityRepository interface {
	Create(ctx context.Context, o *Opportunity) error
	GetByID(ctx context.Context, opID id.ID) (*Opportunity, error)
	Update(ctx context.Context, o *Opportunity) error
	Delete(ctx context.Context, opID id.ID) error
	List(ctx context.Context, filter OpportunityFilter) ([]*Opportunity, error)
}

// ActivityRepository defines persistence for activities.
type ActivityRepository interface {
	Create(ctx context.Context, a *Activity) error
	GetByID(ctx context.Context, activityID id.ID) (*Activity, error)
	Update(ctx context.Context, a *Activity) error
	Delete(ctx context.Context, activityID id.ID) error
	List(ctx context.Context, filter ActivityFilter) ([]*Activity, error)
}
