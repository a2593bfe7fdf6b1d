// Package vendorbill provides the VendorBill document service.
package vendorbill

import (
	"context"
	"fmt"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain"
	"ledgerhouse/pkg/logger"
	"ledgerhouse/pkg/numerator"
)

const numberPrefix = "BILL"

// Poster writes journal entries for vendor bills. Implemented by the
// ledger service; nil disables automatic posting.
type Poster interface {
	PostBill(ctx context.Context, bill *VendorBill) error
	PostBillPayment(ctx context.Context, bill *VendorBill, amount types.Money) error
	ReverseDocumentEntries(ctx context.Context, docID id.ID) error
}

// Service provides business operations for vendor bills.
type Service struct {
	repo      Repository
	poster    Poster
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new vendor bill service.
func NewService(repo Repository, poster Poster, num *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		poster:    poster,
		numerator: num,
		txManager: txManager,
	}
}

// Create creates a new draft bill.
func (s *Service) Create(ctx context.Context, doc *VendorBill) error {
	doc.Recalculate()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(numberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: numerator.StrategyStrict}, doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
}

// GetByID retrieves a bill with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*VendorBill, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update replaces header fields and lines of a draft bill.
func (s *Service) Update(ctx context.Context, doc *VendorBill) error {
	if err := doc.CanModify(); err != nil {
		return err
	}

	doc.Recalculate()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
}

// Delete soft-deletes a draft bill.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if err := doc.CanModify(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, docID)
}

// Open marks the bill payable and posts it to the ledger.
func (s *Service) Open(ctx context.Context, docID id.ID) (*VendorBill, error) {
	return s.transition(ctx, docID, func(doc *VendorBill) error {
		return doc.Open()
	}, func(ctx context.Context, doc *VendorBill) error {
		if s.poster == nil {
			return nil
		}
		if err := s.poster.PostBill(ctx, doc); err != nil {
			return fmt.Errorf("post bill: %w", err)
		}
		doc.MarkPosted()
		return nil
	})
}

// Void cancels an unpaid bill and reverses its journal entries.
func (s *Service) Void(ctx context.Context, docID id.ID) (*VendorBill, error) {
	return s.transition(ctx, docID, func(doc *VendorBill) error {
		return doc.Void()
	}, func(ctx context.Context, doc *VendorBill) error {
		if s.poster == nil || !doc.Posted {
			return nil
		}
		if err := s.poster.ReverseDocumentEntries(ctx, doc.ID); err != nil {
			return fmt.Errorf("reverse entries: %w", err)
		}
		doc.MarkUnposted()
		return nil
	})
}

// RecordPayment books a direct payment against an open bill and posts
// the cash movement.
func (s *Service) RecordPayment(ctx context.Context, docID id.ID, amount types.Money) (*VendorBill, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount")
	}

	return s.transition(ctx, docID, func(doc *VendorBill) error {
		return doc.ApplyPayment(amount)
	}, func(ctx context.Context, doc *VendorBill) error {
		if s.poster == nil {
			return nil
		}
		return s.poster.PostBillPayment(ctx, doc, amount)
	})
}

func (s *Service) transition(
	ctx context.Context,
	docID id.ID,
	change func(*VendorBill) error,
	ledgerStep func(context.Context, *VendorBill) error,
) (*VendorBill, error) {
	var doc *VendorBill

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines

		if err := change(doc); err != nil {
			return err
		}
		if err := ledgerStep(ctx, doc); err != nil {
			return err
		}
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "vendor bill status changed", "id", doc.ID, "number", doc.Number, "status", doc.Status)
	return doc, nil
}

// List retrieves vendor bills with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*VendorBill], error) {
	return s.repo.List(ctx, filter)
}
