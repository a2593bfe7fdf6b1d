package contact

import (
	"context"
	"fmt"
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/domain"
	"ledgerhouse/pkg/numerator"
)

// Service provides business logic for the Contact catalog.
type Service struct {
	*domain.CatalogService[*Contact]
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new Contact service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Contact]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "contact",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		txManager:      txManager,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, c *Contact) error {
	if c.Code == "" {
		cfg := numerator.DefaultConfig("CONT")
		cfg.IncludeYear = false
		cfg.ResetPeriod = "never"
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}
	return nil
}

// ListByCustomer retrieves contacts of one customer.
func (s *Service) ListByCustomer(ctx context.Context, customerID id.ID) ([]*Contact, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// SetPrimary marks one contact as primary, clearing the flag on all
// other contacts of the same customer.
func (s *Service) SetPrimary(ctx context.Context, contactID id.ID) error {
	c, err := s.GetByID(ctx, contactID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.ClearPrimary(ctx, c.CustomerID); err != nil {
			return err
		}
		c.IsPrimary = true
		return s.repo.Update(ctx, c)
	})
}
