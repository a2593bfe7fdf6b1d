package crm

import (
	"context"
	"time"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
)

// CustomerDirectory is the minimal customer lookup the CRM service needs.
type CustomerDirectory interface {
	Exists(ctx context.Context, customerID id.ID) (bool, error)
}

// Service provides business logic for opportunities and activities.
type Service struct {
	opportunities OpportunityRepository
	activities    ActivityRepository
	customers     CustomerDirectory
	txManager     tx.Manager
}

// NewService creates a new CRM service.
func NewService(
	opportunities OpportunityRepository,
	activities ActivityRepository,
	customers CustomerDirectory,
	txManager tx.Manager,
) *Service {
	return &Service{
		opportunities: opportunities,
		activities:    activities,
		customers:     customers,
		txManager:     txManager,
	}
}

func (s *Service) checkCustomer(ctx context.Context, customerID id.ID) error {
	ok, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewNotFound("customer", customerID.String())
	}
	return nil
}

// CreateOpportunity validates and persists a new opportunity.
func (s *Service) CreateOpportunity(ctx context.Context, o *Opportunity) error {
	if err := o.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkCustomer(ctx, o.CustomerID); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.opportunities.Create(ctx, o)
	})
}

// GetOpportunity retrieves an opportunity by ID.
func (s *Service) GetOpportunity(ctx context.Context, opID id.ID) (*Opportunity, error) {
	return s.opportunities.GetByID(ctx, opID)
}

// UpdateOpportunity validates and persists opportunity changes.
func (s *Service) UpdateOpportunity(ctx context.Context, o *Opportunity) error {
	if err := o.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		o.Touch()
		return s.opportunities.Update(ctx, o)
	})
}

// MoveOpportunityStage transitions an opportunity to a new stage.
func (s *Service) MoveOpportunityStage(ctx context.Context, opID id.ID, to Stage) (*Opportunity, error) {
	o, err := s.opportunities.GetByID(ctx, opID)
	if err != nil {
		return nil, err
	}
	if err := o.MoveStage(to); err != nil {
		return nil, err
	}
	if err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.opportunities.Update(ctx, o)
	}); err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteOpportunity removes an opportunity.
func (s *Service) DeleteOpportunity(ctx context.Context, opID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.opportunities.Delete(ctx, opID)
	})
}

// ListOpportunities lists opportunities per filter.
func (s *Service) ListOpportunities(ctx context.Context, filter OpportunityFilter) ([]*Opportunity, error) {
	return s.opportunities.List(ctx, filter)
}

// CreateActivity validates and persists a new activity.
func (s *Service) CreateActivity(ctx context.Context, a *Activity) error {
	if err := a.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkCustomer(ctx, a.CustomerID); err != nil {
		return err
	}
	if a.OpportunityID != nil {
		if _, err := s.opportunities.GetByID(ctx, *a.OpportunityID); err != nil {
			return err
		}
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.activities.Create(ctx, a)
	})
}

// GetActivity retrieves an activity by ID.
func (s *Service) GetActivity(ctx context.Context, activityID id.ID) (*Activity, error) {
	return s.activities.GetByID(ctx, activityID)
}

// UpdateActivity validates and persists activity changes.
func (s *Service) UpdateActivity(ctx context.Context, a *Activity) error {
	if err := a.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		a.Touch()
		return s.activities.Update(ctx, a)
	})
}

// CompleteActivity marks an activity done.
func (s *Service) CompleteActivity(ctx context.Context, activityID id.ID) (*Activity, error) {
	a, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if err := a.Complete(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.activities.Update(ctx, a)
	}); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteActivity removes an activity.
func (s *Service) DeleteActivity(ctx context.Context, activityID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.activities.Delete(ctx, activityID)
	})
}

// ListActivities lists activities per filter.
func (s *Service) ListActivities(ctx context.Context, filter ActivityFilter) ([]*Activity, error) {
	return s.activities.List(ctx, filter)
}
