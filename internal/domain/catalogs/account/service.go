package account

import (
	"context"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/domain"
)

// Service provides business logic for the chart of accounts.
// Account codes are entered by the accountant, never generated.
type Service struct {
	*domain.CatalogService[*Account]
	repo Repository
}

// NewService creates a new Account service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Account]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "account",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkCodeUnique)
	base.Hooks().OnBeforeUpdate(svc.checkCodeUnique)
	base.Hooks().OnBeforeDelete(svc.guardSystemAccount)

	return svc
}

func (s *Service) checkCodeUnique(ctx context.Context, a *Account) error {
	existing, err := s.repo.GetByCode(ctx, a.Code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != a.ID {
		return apperror.NewConflict("account code already in use").
			WithDetail("code", a.Code)
	}
	return nil
}

func (s *Service) guardSystemAccount(ctx context.Context, a *Account) error {
	if a.IsSystem {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "system accounts cannot be deleted").
			WithDetail("code", a.Code)
	}
	return nil
}

// ListByType retrieves active accounts of the given type.
func (s *Service) ListByType(ctx context.Context, accType AccountType) ([]*Account, error) {
	if !IsValidAccountType(accType) {
		return nil, apperror.NewValidation("invalid account type").
			WithDetail("value", string(accType))
	}
	return s.repo.ListByType(ctx, accType)
}

// Deactivate marks an account inactive without deleting it.
func (s *Service) Deactivate(ctx context.Context, accountID id.ID) error {
	a, err := s.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	a.Active = false
	return s.Update(ctx, a)
}
