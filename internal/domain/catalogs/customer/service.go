package customer

import (
	"context"
	"fmt"
	"time"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain"
	"ledgerhouse/pkg/numerator"
)

// Service provides business logic for the Customer catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkEmailUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		cfg := numerator.DefaultConfig("CUST")
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	return s.checkEmailUnique(ctx, c)
}

func (s *Service) checkEmailUnique(ctx context.Context, c *Customer) error {
	if c.Email == nil || *c.Email == "" {
		return nil
	}

	existing, err := s.repo.FindByEmail(ctx, *c.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewConflict("customer with this email already exists").
			WithDetail("email", *c.Email)
	}
	return nil
}

// OutstandingBalance returns the customer's total unpaid invoice balance.
func (s *Service) OutstandingBalance(ctx context.Context, customerID id.ID) (types.Money, error) {
	if _, err := s.GetByID(ctx, customerID); err != nil {
		return types.Zero(), err
	}
	return s.repo.OutstandingBalance(ctx, customerID, time.Now())
}

// CheckCreditLimit returns an error if posting an additional amount would
// push the customer past their configured credit limit.
func (s *Service) CheckCreditLimit(ctx context.Context, customerID id.ID, additional types.Money) error {
	c, err := s.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if !c.HasCreditLimit() {
		return nil
	}

	outstanding, err := s.repo.OutstandingBalance(ctx, customerID, time.Now())
	if err != nil {
		return err
	}

	if outstanding.Add(additional).GreaterThan(c.CreditLimit) {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "credit limit exceeded").
			WithDetail("creditLimit", c.CreditLimit.String()).
			WithDetail("outstanding", outstanding.String())
	}
	return nil
}
