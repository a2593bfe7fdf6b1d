// Package purchaseorder provides the PurchaseOrder document service.
package purchaseorder

import (
	"context"
	"fmt"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/inventory"
	"ledgerhouse/pkg/logger"
	"ledgerhouse/pkg/numerator"
)

const numberPrefix = "PO"

// ReceiptLine is one line of a goods receipt against a purchase order.
type ReceiptLine struct {
	LineID   id.ID
	Quantity types.Quantity
}

// Service provides business operations for purchase orders.
type Service struct {
	repo      Repository
	stock     *inventory.Service
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new purchase order service.
func NewService(repo Repository, stock *inventory.Service, num *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		stock:     stock,
		numerator: num,
		txManager: txManager,
	}
}

// Create creates a new draft purchase order.
func (s *Service) Create(ctx context.Context, doc *PurchaseOrder) error {
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

// GetByID retrieves a purchase order with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*PurchaseOrder, error) {
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

// Update replaces header fields and lines of a draft order.
func (s *Service) Update(ctx context.Context, doc *PurchaseOrder) error {
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

// Delete soft-deletes a draft order.
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

// Send transitions the order to sent.
func (s *Service) Send(ctx context.Context, docID id.ID) (*PurchaseOrder, error) {
	return s.transition(ctx, docID, (*PurchaseOrder).Send)
}

// Cancel cancels an order with no receipts against it.
func (s *Service) Cancel(ctx context.Context, docID id.ID) (*PurchaseOrder, error) {
	return s.transition(ctx, docID, (*PurchaseOrder).Cancel)
}

func (s *Service) transition(ctx context.Context, docID id.ID, change func(*PurchaseOrder) error) (*PurchaseOrder, error) {
	var doc *PurchaseOrder

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
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase order status changed", "id", doc.ID, "number", doc.Number, "status", doc.Status)
	return doc, nil
}

// Receive books received quantities against order lines and moves stock
// into the order's location. Line updates, stock level mutations and
// movement records commit in one transaction.
func (s *Service) Receive(ctx context.Context, docID id.ID, receipts []ReceiptLine) (*PurchaseOrder, error) {
	var doc *PurchaseOrder

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

		for _, r := range receipts {
			if err := doc.RecordReceipt(r.LineID, r.Quantity.Decimal()); err != nil {
				return err
			}

			var productID id.ID
			for _, l := range doc.Lines {
				if l.LineID == r.LineID {
					productID = l.ProductID
					break
				}
			}

			_, err := s.stock.Receive(ctx, inventory.MovementParams{
				ProductID:  productID,
				LocationID: doc.LocationID,
				Quantity:   r.Quantity,
				Reference:  doc.Number,
				Notes:      "purchase order receipt",
			})
			if err != nil {
				return err
			}
		}

		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase order receipt booked",
		"id", doc.ID,
		"number", doc.Number,
		"status", doc.Status,
		"lines", len(receipts))

	return doc, nil
}

// List retrieves purchase orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error) {
	return s.repo.List(ctx, filter)
}
