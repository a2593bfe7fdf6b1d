// Package payment provides the payment and allocation service.
package payment

import (
	"context"
	"fmt"
	"time"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/documents/invoice"
	"ledgerhouse/pkg/logger"
	"ledgerhouse/pkg/numerator"
)

const numberPrefix = "PAY"

// Poster books received payments to the ledger. Implemented by the
// ledger service; nil disables automatic posting.
type Poster interface {
	PostPaymentReceived(ctx context.Context, paymentID id.ID, number string, amount types.Money) error
}

// Service provides payment and allocation operations.
// Allocation touches the payment, the allocation row and the invoice in
// one transaction; partial application is never observable.
type Service struct {
	repo      Repository
	invoices  invoice.Repository
	poster    Poster
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new payment service.
func NewService(
	repo Repository,
	invoices invoice.Repository,
	poster Poster,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		invoices:  invoices,
		poster:    poster,
		numerator: num,
		txManager: txManager,
	}
}

// Create records a received payment and posts it to the ledger.
func (s *Service) Create(ctx context.Context, p *Payment) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if p.Number == "" {
		cfg := numerator.DefaultConfig(numberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: numerator.StrategyStrict}, p.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		p.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		if s.poster != nil {
			if err := s.poster.PostPaymentReceived(ctx, p.ID, p.Number, p.Amount); err != nil {
				return fmt.Errorf("post payment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "payment received",
		"id", p.ID,
		"number", p.Number,
		"amount", p.Amount,
		"customerId", p.CustomerID)
	return nil
}

// GetByID retrieves a payment with its allocations.
func (s *Service) GetByID(ctx context.Context, paymentID id.ID) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	allocations, err := s.repo.ListAllocations(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	p.Allocations = allocations

	return p, nil
}

// Allocate applies part of a payment against one invoice.
// Fails if the amount exceeds the payment's unallocated amount or the
// invoice's balance due. All four effects (payment split, allocation
// row, invoice paid amount, invoice status) commit atomically.
func (s *Service) Allocate(ctx context.Context, paymentID, invoiceID id.ID, amount types.Money) (*Allocation, error) {
	var allocation Allocation

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}

		inv, err := s.invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}

		if p.CustomerID != inv.CustomerID {
			return apperror.NewValidation("payment and invoice belong to different customers").
				WithDetail("paymentId", paymentID.String()).
				WithDetail("invoiceId", invoiceID.String())
		}
		if inv.Status == invoice.StatusDraft || inv.Status == invoice.StatusVoid {
			return apperror.NewInvalidStateTransition("invoice", string(inv.Status), "allocate payment to")
		}
		if amount.GreaterThan(inv.BalanceDue) {
			return apperror.NewValidation("allocation exceeds invoice balance due").
				WithDetail("requested", amount.String()).
				WithDetail("balanceDue", inv.BalanceDue.String())
		}

		if err := p.Allocate(amount); err != nil {
			return err
		}
		if err := inv.ApplyPayment(amount); err != nil {
			return err
		}

		allocation = Allocation{
			ID:          id.New(),
			PaymentID:   paymentID,
			InvoiceID:   invoiceID,
			Amount:      amount,
			AllocatedAt: time.Now().UTC(),
		}

		if err := s.repo.CreateAllocation(ctx, allocation); err != nil {
			return fmt.Errorf("create allocation: %w", err)
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}
		if err := s.invoices.Update(ctx, inv); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "payment allocated",
		"paymentId", paymentID,
		"invoiceId", invoiceID,
		"amount", amount)

	return &allocation, nil
}

// Deallocate removes an allocation, reversing all four effects.
func (s *Service) Deallocate(ctx context.Context, allocationID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetAllocation(ctx, allocationID)
		if err != nil {
			return err
		}

		p, err := s.repo.GetForUpdate(ctx, a.PaymentID)
		if err != nil {
			return err
		}

		inv, err := s.invoices.GetForUpdate(ctx, a.InvoiceID)
		if err != nil {
			return err
		}

		if err := p.Deallocate(a.Amount); err != nil {
			return err
		}
		if err := inv.ApplyPayment(a.Amount.Neg()); err != nil {
			return err
		}

		if err := s.repo.DeleteAllocation(ctx, allocationID); err != nil {
			return fmt.Errorf("delete allocation: %w", err)
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}
		if err := s.invoices.Update(ctx, inv); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "allocation removed", "allocationId", allocationID)
	return nil
}

// Delete removes a payment that has no allocations.
func (s *Service) Delete(ctx context.Context, paymentID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if p.AllocatedAmount.IsPositive() {
			return apperror.NewBusinessRule(apperror.CodeBusinessRule, "cannot delete a payment with allocations").
				WithDetail("allocated", p.AllocatedAmount.String())
		}
		return s.repo.Delete(ctx, paymentID)
	})
}

// List retrieves payments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Payment], error) {
	return s.repo.List(ctx, filter)
}
