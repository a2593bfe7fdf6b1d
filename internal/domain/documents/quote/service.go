// Package quote provides the Quote document service.
package quote

import (
	"context"
	"fmt"
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/documents/invoice"
	"ledgerhouse/pkg/logger"
	"ledgerhouse/pkg/numerator"
)

const numberPrefix = "QUO"

// Service provides business operations for quotes.
type Service struct {
	repo      Repository
	invoices  *invoice.Service
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new quote service.
func NewService(repo Repository, invoices *invoice.Service, num *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		invoices:  invoices,
		numerator: num,
		txManager: txManager,
	}
}

// Create creates a new draft quote.
func (s *Service) Create(ctx context.Context, doc *Quote) error {
	doc.Recalculate()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(numberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, nil, doc.Date)
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

// GetByID retrieves a quote with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Quote, error) {
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

// Update replaces header fields and lines of a draft quote.
func (s *Service) Update(ctx context.Context, doc *Quote) error {
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

// Delete soft-deletes a draft quote.
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

// Send transitions the quote to sent.
func (s *Service) Send(ctx context.Context, docID id.ID) (*Quote, error) {
	return s.transition(ctx, docID, (*Quote).Send)
}

// Accept transitions the quote to accepted.
func (s *Service) Accept(ctx context.Context, docID id.ID) (*Quote, error) {
	now := time.Now().UTC()
	return s.transition(ctx, docID, func(q *Quote) error { return q.Accept(now) })
}

// Reject transitions the quote to rejected.
func (s *Service) Reject(ctx context.Context, docID id.ID) (*Quote, error) {
	return s.transition(ctx, docID, (*Quote).Reject)
}

func (s *Service) transition(ctx context.Context, docID id.ID, change func(*Quote) error) (*Quote, error) {
	var doc *Quote

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		if err := change(doc); err != nil {
			return err
		}
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "quote status changed", "id", doc.ID, "number", doc.Number, "status", doc.Status)
	return doc, nil
}

// ConvertToInvoice builds a draft invoice from an accepted quote and
// marks the quote converted, atomically.
func (s *Service) ConvertToInvoice(ctx context.Context, docID id.ID) (*invoice.Invoice, error) {
	var inv *invoice.Invoice

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines

		inv, err = doc.ToInvoice()
		if err != nil {
			return err
		}

		if err := s.invoices.Create(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		doc.MarkConverted(inv.ID)
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "quote converted to invoice",
		"quoteId", docID,
		"invoiceId", inv.ID,
		"invoiceNumber", inv.Number)

	return inv, nil
}

// List retrieves quotes with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quote], error) {
	return s.repo.List(ctx, filter)
}
