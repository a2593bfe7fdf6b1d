// Package ledger provides the posting service.
package ledger

import (
	"context"
	"fmt"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/catalogs/account"
	"ledgerhouse/internal/domain/catalogs/product"
	"ledgerhouse/internal/domain/documents/invoice"
	"ledgerhouse/internal/domain/documents/vendorbill"
	"ledgerhouse/pkg/logger"
	"ledgerhouse/pkg/numerator"
)

const numberPrefix = "JE"

// SystemAccounts holds the accounts wired into automatic postings.
// Resolved from the chart of accounts at startup.
type SystemAccounts struct {
	AccountsReceivable id.ID
	AccountsPayable    id.ID
	Cash               id.ID
	SalesRevenue       id.ID
	TaxPayable         id.ID
	TaxReceivable      id.ID
	DefaultExpense     id.ID
}

// ProductDirectory resolves product account overrides.
// Satisfied by product.Repository.
type ProductDirectory interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// Service writes journal entries. All posting methods are called inside
// the caller's transaction so the document and its entry commit
// together.
type Service struct {
	repo      Repository
	accounts  account.Repository
	products  ProductDirectory
	system    SystemAccounts
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new ledger service.
func NewService(
	repo Repository,
	accounts account.Repository,
	products ProductDirectory,
	system SystemAccounts,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		accounts:  accounts,
		products:  products,
		system:    system,
		numerator: num,
		txManager: txManager,
	}
}

// CreateEntry validates and persists a manual journal entry.
func (s *Service) CreateEntry(ctx context.Context, entry *JournalEntry) error {
	if err := entry.Validate(ctx); err != nil {
		return err
	}

	for _, l := range entry.Lines {
		acc, err := s.accounts.GetByID(ctx, l.AccountID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("account", l.AccountID.String())
			}
			return err
		}
		if !acc.Active {
			return apperror.NewValidation("account is inactive").
				WithDetail("code", acc.Code)
		}
	}

	return s.persist(ctx, entry)
}

func (s *Service) persist(ctx context.Context, entry *JournalEntry) error {
	// Posting paths build entries line by line, so re-check the full
	// entry here: the two-line minimum and one-sided lines, not just
	// the balance.
	if err := entry.Validate(ctx); err != nil {
		return err
	}

	if entry.Number == "" {
		cfg := numerator.DefaultConfig(numberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: numerator.StrategyStrict}, entry.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		entry.Number = number
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entry); err != nil {
			return fmt.Errorf("create journal entry: %w", err)
		}
		return nil
	})
}

// PostInvoice books a sent invoice:
//
//	Dr accounts receivable        total
//	Cr revenue (per line)         amount - discount
//	Cr sales tax payable          tax
func (s *Service) PostInvoice(ctx context.Context, inv *invoice.Invoice) error {
	// A zero-total invoice has no economic effect; Debit/Credit skip
	// zero amounts, so posting it would produce an empty entry.
	if inv.TotalAmount.IsZero() {
		logger.Info(ctx, "zero-total invoice not posted", "invoiceId", inv.ID)
		return nil
	}

	entry := NewJournalEntry(SourceInvoice, &inv.ID)
	entry.Date = inv.Date
	entry.Memo = "invoice " + inv.Number

	entry.Debit(s.system.AccountsReceivable, inv.TotalAmount, inv.Number)

	for _, l := range inv.Lines {
		net := l.Amount.Sub(l.DiscountAmount)
		revenueAccount, err := s.incomeAccountFor(ctx, l.ProductID)
		if err != nil {
			return err
		}
		entry.Credit(revenueAccount, net, l.Description)
	}
	entry.Credit(s.system.TaxPayable, inv.TaxAmount, "sales tax")

	if err := s.persist(ctx, entry); err != nil {
		return err
	}

	logger.Info(ctx, "invoice posted",
		"invoiceId", inv.ID,
		"entryNumber", entry.Number,
		"amount", inv.TotalAmount)
	return nil
}

// PostBill books an opened vendor bill:
//
//	Dr expense (per line)   amount - discount
//	Dr tax receivable       tax
//	Cr accounts payable     total
func (s *Service) PostBill(ctx context.Context, bill *vendorbill.VendorBill) error {
	if bill.TotalAmount.IsZero() {
		logger.Info(ctx, "zero-total bill not posted", "billId", bill.ID)
		return nil
	}

	entry := NewJournalEntry(SourceBill, &bill.ID)
	entry.Date = bill.Date
	entry.Memo = "vendor bill " + bill.Number

	for _, l := range bill.Lines {
		net := l.Amount.Sub(l.DiscountAmount)
		expenseAccount, err := s.expenseAccountFor(ctx, l.ExpenseAccountID, l.ProductID)
		if err != nil {
			return err
		}
		entry.Debit(expenseAccount, net, l.Description)
	}
	entry.Debit(s.system.TaxReceivable, bill.TaxAmount, "input tax")
	entry.Credit(s.system.AccountsPayable, bill.TotalAmount, bill.Number)

	if err := s.persist(ctx, entry); err != nil {
		return err
	}

	logger.Info(ctx, "vendor bill posted",
		"billId", bill.ID,
		"entryNumber", entry.Number,
		"amount", bill.TotalAmount)
	return nil
}

// PostPaymentReceived books a customer payment:
//
//	Dr cash                       amount
//	Cr accounts receivable        amount
func (s *Service) PostPaymentReceived(ctx context.Context, paymentID id.ID, number string, amount types.Money) error {
	entry := NewJournalEntry(SourcePayment, &paymentID)
	entry.Memo = "payment " + number

	entry.Debit(s.system.Cash, amount, number)
	entry.Credit(s.system.AccountsReceivable, amount, number)

	return s.persist(ctx, entry)
}

// PostBillPayment books a payment against a vendor bill:
//
//	Dr accounts payable   amount
//	Cr cash               amount
func (s *Service) PostBillPayment(ctx context.Context, bill *vendorbill.VendorBill, amount types.Money) error {
	entry := NewJournalEntry(SourcePayment, &bill.ID)
	entry.Memo = "payment for bill " + bill.Number

	entry.Debit(s.system.AccountsPayable, amount, bill.Number)
	entry.Credit(s.system.Cash, amount, bill.Number)

	return s.persist(ctx, entry)
}

// ReverseDocumentEntries writes cancelling entries for every entry
// generated from the given document that is not yet reversed.
func (s *Service) ReverseDocumentEntries(ctx context.Context, sourceID id.ID) error {
	entries, err := s.repo.ListBySource(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	reversed := make(map[id.ID]bool)
	for _, e := range entries {
		if e.ReversesID != nil {
			reversed[*e.ReversesID] = true
		}
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, e := range entries {
			if e.SourceType == SourceReversal || reversed[e.ID] {
				continue
			}

			lines, err := s.repo.GetLines(ctx, e.ID)
			if err != nil {
				return fmt.Errorf("get lines: %w", err)
			}
			e.Lines = lines

			rev := e.Reverse()
			if err := s.persist(ctx, rev); err != nil {
				return err
			}

			logger.Info(ctx, "journal entry reversed",
				"entryId", e.ID,
				"reversalNumber", rev.Number)
		}
		return nil
	})
}

// GetByID retrieves an entry with lines.
func (s *Service) GetByID(ctx context.Context, entryID id.ID) (*JournalEntry, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	entry.Lines = lines

	return entry, nil
}

// List retrieves journal entries with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*JournalEntry], error) {
	return s.repo.List(ctx, filter)
}

// ListBySource returns every entry a document produced, reversals included.
func (s *Service) ListBySource(ctx context.Context, sourceID id.ID) ([]*JournalEntry, error) {
	entries, err := s.repo.ListBySource(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		lines, err := s.repo.GetLines(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("get lines: %w", err)
		}
		e.Lines = lines
	}
	return entries, nil
}

func (s *Service) incomeAccountFor(ctx context.Context, productID *id.ID) (id.ID, error) {
	if productID == nil {
		return s.system.SalesRevenue, nil
	}
	p, err := s.products.GetByID(ctx, *productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return s.system.SalesRevenue, nil
		}
		return id.Nil(), err
	}
	if p.IncomeAccountID != nil {
		return *p.IncomeAccountID, nil
	}
	return s.system.SalesRevenue, nil
}

func (s *Service) expenseAccountFor(ctx context.Context, override, productID *id.ID) (id.ID, error) {
	if override != nil {
		return *override, nil
	}
	if productID == nil {
		return s.system.DefaultExpense, nil
	}
	p, err := s.products.GetByID(ctx, *productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return s.system.DefaultExpense, nil
		}
		return id.Nil(), err
	}
	if p.ExpenseAccountID != nil {
		return *p.ExpenseAccountID, nil
	}
	return s.system.DefaultExpense, nil
}

// Compile-time checks that the service satisfies the document poster
// interfaces.
var (
	_ invoice.Poster    = (*Service)(nil)
	_ vendorbill.Poster = (*Service)(nil)
)
