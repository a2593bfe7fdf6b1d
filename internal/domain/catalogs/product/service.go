package product

import (
	"context"
	"fmt"
	"time"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/domain"
	"ledgerhouse/pkg/numerator"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkSKUUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		cfg := numerator.DefaultConfig("PROD")
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	}

	return s.checkSKUUnique(ctx, p)
}

func (s *Service) checkSKUUnique(ctx context.Context, p *Product) error {
	if p.SKU == nil || *p.SKU == "" {
		return nil
	}

	existing, err := s.repo.FindBySKU(ctx, *p.SKU)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != p.ID {
		return apperror.NewConflict("product with this SKU already exists").
			WithDetail("sku", *p.SKU)
	}
	return nil
}

// FindBySKU retrieves product by SKU.
func (s *Service) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	return s.repo.FindBySKU(ctx, sku)
}
