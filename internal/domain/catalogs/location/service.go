package location

import (
	"context"
	"fmt"
	"time"

	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/domain"
	"ledgerhouse/pkg/numerator"
)

// Service provides business logic for the Location catalog.
type Service struct {
	*domain.CatalogService[*Location]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Location service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Location]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "location",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, l *Location) error {
	if l.Code == "" {
		cfg := numerator.DefaultConfig("LOC")
		cfg.IncludeYear = false
		cfg.ResetPeriod = "never"
		cfg.PadWidth = 4
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		l.Code = code
	}
	return nil
}

// GetDefault retrieves the default location.
func (s *Service) GetDefault(ctx context.Context) (*Location, error) {
	return s.repo.GetDefault(ctx)
}
