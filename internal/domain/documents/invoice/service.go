// Package invoice provides the Invoice document service.
package invoice

import (
	"context"
	"fmt"
	"time"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/catalogs/customer"
	"ledgerhouse/pkg/logger"
	"ledgerhouse/pkg/numerator"
)

// Poster writes journal entries for invoices. Implemented by the ledger
// service; nil disables automatic posting.
type Poster interface {
	PostInvoice(ctx context.Context, inv *Invoice) error
	ReverseDocumentEntries(ctx context.Context, docID id.ID) error
}

// Service provides business operations for invoices.
type Service struct {
	repo      Repository
	customers customer.Repository
	poster    Poster
	numerator *numerator.Service
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Invoice]
}

// NewService creates a new invoice service.
func NewService(
	repo Repository,
	customers customer.Repository,
	poster Poster,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		poster:    poster,
		numerator: num,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Invoice](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Invoice] {
	return s.hooks
}

// Create creates a new draft invoice.
func (s *Service) Create(ctx context.Context, doc *Invoice) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	cust, err := s.customers.GetByID(ctx, doc.CustomerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("customer", doc.CustomerID.String())
		}
		return err
	}

	// Due date defaults from the customer's payment terms
	if doc.DueDate.IsZero() || doc.DueDate.Before(doc.Date) {
		doc.DueDate = doc.Date.AddDate(0, 0, cust.PaymentTerms.DueDays())
	}

	doc.Recalculate()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "invoice created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GetByID retrieves an invoice with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
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

// Update replaces header fields and lines of a draft invoice.
func (s *Service) Update(ctx context.Context, doc *Invoice) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

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
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes a draft invoice.
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

// Send transitions the invoice to sent and posts it to the ledger.
// Document update and journal entry commit in one transaction.
func (s *Service) Send(ctx context.Context, docID id.ID) (*Invoice, error) {
	return s.transition(ctx, docID, func(doc *Invoice) error {
		return doc.Send()
	}, func(ctx context.Context, doc *Invoice) error {
		if s.poster == nil {
			return nil
		}
		if err := s.poster.PostInvoice(ctx, doc); err != nil {
			return fmt.Errorf("post invoice: %w", err)
		}
		doc.MarkPosted()
		return nil
	})
}

// Void cancels an unpaid invoice and reverses its journal entries.
func (s *Service) Void(ctx context.Context, docID id.ID) (*Invoice, error) {
	return s.transition(ctx, docID, func(doc *Invoice) error {
		return doc.Void()
	}, func(ctx context.Context, doc *Invoice) error {
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

func (s *Service) transition(
	ctx context.Context,
	docID id.ID,
	change func(*Invoice) error,
	ledgerStep func(context.Context, *Invoice) error,
) (*Invoice, error) {
	var doc *Invoice

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

	logger.Info(ctx, "invoice status changed",
		"id", doc.ID,
		"number", doc.Number,
		"status", doc.Status)

	return doc, nil
}

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}

// MarkOverdueCandidates returns sent invoices past due as of now.
func (s *Service) MarkOverdueCandidates(ctx context.Context) ([]*Invoice, error) {
	now := time.Now().UTC()
	res, err := s.repo.List(ctx, ListFilter{OverdueAsOf: &now})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}
