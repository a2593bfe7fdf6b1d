package payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/documents/invoice"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memPaymentRepo struct {
	payments    map[id.ID]*Payment
	allocations map[id.ID]Allocation
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{
		payments:    make(map[id.ID]*Payment),
		allocations: make(map[id.ID]Allocation),
	}
}

func (r *memPaymentRepo) Create(ctx context.Context, p *Payment) error {
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) GetByID(ctx context.Context, paymentID id.ID) (*Payment, error) {
	p, ok := r.payments[paymentID]
	if !ok {
		return nil, apperror.NewNotFound("payment", paymentID.String())
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) GetByNumber(ctx context.Context, number string) (*Payment, error) {
	for _, p := range r.payments {
		if p.Number == number {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("payment", number)
}

func (r *memPaymentRepo) Update(ctx context.Context, p *Payment) error {
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) Delete(ctx context.Context, paymentID id.ID) error {
	delete(r.payments, paymentID)
	return nil
}

func (r *memPaymentRepo) GetForUpdate(ctx context.Context, paymentID id.ID) (*Payment, error) {
	return r.GetByID(ctx, paymentID)
}

func (r *memPaymentRepo) CreateAllocation(ctx context.Context, a Allocation) error {
	r.allocations[a.ID] = a
	return nil
}

func (r *memPaymentRepo) GetAllocation(ctx context.Context, allocationID id.ID) (Allocation, error) {
	a, ok := r.allocations[allocationID]
	if !ok {
		return Allocation{}, apperror.NewNotFound("allocation", allocationID.String())
	}
	return a, nil
}

func (r *memPaymentRepo) DeleteAllocation(ctx context.Context, allocationID id.ID) error {
	delete(r.allocations, allocationID)
	return nil
}

func (r *memPaymentRepo) ListAllocations(ctx context.Context, paymentID id.ID) ([]Allocation, error) {
	var out []Allocation
	for _, a := range r.allocations {
		if a.PaymentID == paymentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) ListAllocationsByInvoice(ctx context.Context, invoiceID id.ID) ([]Allocation, error) {
	var out []Allocation
	for _, a := range r.allocations {
		if a.InvoiceID == invoiceID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Payment], error) {
	return domain.ListResult[*Payment]{}, nil
}

type memInvoiceRepo struct {
	invoices map[id.ID]*invoice.Invoice
}

func (r *memInvoiceRepo) Create(ctx context.Context, doc *invoice.Invoice) error {
	cp := *doc
	r.invoices[doc.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) GetByID(ctx context.Context, docID id.ID) (*invoice.Invoice, error) {
	doc, ok := r.invoices[docID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *memInvoiceRepo) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	return nil, apperror.NewNotFound("invoice", number)
}

func (r *memInvoiceRepo) Update(ctx context.Context, doc *invoice.Invoice) error {
	cp := *doc
	r.invoices[doc.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(r.invoices, docID)
	return nil
}

func (r *memInvoiceRepo) GetLines(ctx context.Context, docID id.ID) ([]invoice.Line, error) {
	doc, ok := r.invoices[docID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", docID.String())
	}
	return doc.Lines, nil
}

func (r *memInvoiceRepo) SaveLines(ctx context.Context, docID id.ID, lines []invoice.Line) error {
	return nil
}

func (r *memInvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	return domain.ListResult[*invoice.Invoice]{}, nil
}

func (r *memInvoiceRepo) GetForUpdate(ctx context.Context, docID id.ID) (*invoice.Invoice, error) {
	return r.GetByID(ctx, docID)
}

type fixture struct {
	svc      *Service
	payments *memPaymentRepo
	invoices *memInvoiceRepo
	customer id.ID
	invoice  *invoice.Invoice
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	customerID := id.New()

	inv := invoice.NewInvoice(customerID)
	inv.Number = "INV-2026-00001"
	inv.AddLine(nil, "Widget", decimal.NewFromInt(2), types.MustMoney("100"), types.Zero(), types.MustMoney("10"))
	inv.AddLine(nil, "Gadget", decimal.NewFromInt(1), types.MustMoney("50"), types.Zero(), types.MustMoney("10"))
	require.NoError(t, inv.Send())

	invoices := &memInvoiceRepo{invoices: map[id.ID]*invoice.Invoice{}}
	require.NoError(t, invoices.Create(context.Background(), inv))

	payments := newMemPaymentRepo()
	svc := NewService(payments, invoices, nil, nil, nopTxManager{})

	return &fixture{svc: svc, payments: payments, invoices: invoices, customer: customerID, invoice: inv}
}

func TestPayment_SplitInvariant(t *testing.T) {
	p := NewPayment(id.New(), types.MustMoney("500"), MethodBankTransfer)

	require.NoError(t, p.Allocate(types.MustMoney("200")))
	assert.True(t, p.AllocatedAmount.Equal(types.MustMoney("200")))
	assert.True(t, p.UnallocatedAmount.Equal(types.MustMoney("300")))
	assert.True(t, p.AllocatedAmount.Add(p.UnallocatedAmount).Equal(p.Amount))

	err := p.Allocate(types.MustMoney("301"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.True(t, p.AllocatedAmount.Add(p.UnallocatedAmount).Equal(p.Amount))

	require.NoError(t, p.Deallocate(types.MustMoney("200")))
	assert.True(t, p.UnallocatedAmount.Equal(p.Amount))
}

func TestAllocate_FullPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPayment(f.customer, types.MustMoney("275"), MethodBankTransfer)
	p.Number = "PAY-2026-00001"
	require.NoError(t, f.payments.Create(ctx, p))

	a, err := f.svc.Allocate(ctx, p.ID, f.invoice.ID, types.MustMoney("275"))
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.False(t, a.AllocatedAt.IsZero())

	got, _ := f.payments.GetByID(ctx, p.ID)
	assert.True(t, got.UnallocatedAmount.IsZero())
	assert.True(t, got.AllocatedAmount.Equal(types.MustMoney("275")))

	inv, _ := f.invoices.GetByID(ctx, f.invoice.ID)
	assert.True(t, inv.BalanceDue.IsZero())
	assert.Equal(t, invoice.StatusPaid, inv.Status)
}

func TestAllocate_ExceedsUnallocated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPayment(f.customer, types.MustMoney("100"), MethodCash)
	require.NoError(t, f.payments.Create(ctx, p))

	_, err := f.svc.Allocate(ctx, p.ID, f.invoice.ID, types.MustMoney("150"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	// No side effects
	got, _ := f.payments.GetByID(ctx, p.ID)
	assert.True(t, got.AllocatedAmount.IsZero())
	inv, _ := f.invoices.GetByID(ctx, f.invoice.ID)
	assert.True(t, inv.PaidAmount.IsZero())
}

func TestAllocate_ExceedsBalanceDue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPayment(f.customer, types.MustMoney("500"), MethodBankTransfer)
	require.NoError(t, f.payments.Create(ctx, p))

	_, err := f.svc.Allocate(ctx, p.ID, f.invoice.ID, types.MustMoney("300"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestAllocate_CustomerMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPayment(id.New(), types.MustMoney("275"), MethodBankTransfer)
	require.NoError(t, f.payments.Create(ctx, p))

	_, err := f.svc.Allocate(ctx, p.ID, f.invoice.ID, types.MustMoney("100"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestAllocate_DraftInvoiceRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := invoice.NewInvoice(f.customer)
	draft.AddLine(nil, "Widget", decimal.NewFromInt(1), types.MustMoney("100"), types.Zero(), types.Zero())
	require.NoError(t, f.invoices.Create(ctx, draft))

	p := NewPayment(f.customer, types.MustMoney("100"), MethodCash)
	require.NoError(t, f.payments.Create(ctx, p))

	_, err := f.svc.Allocate(ctx, p.ID, draft.ID, types.MustMoney("100"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidStateTransition))
}

func TestDeallocate_ReversesAllEffects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPayment(f.customer, types.MustMoney("275"), MethodBankTransfer)
	require.NoError(t, f.payments.Create(ctx, p))

	a, err := f.svc.Allocate(ctx, p.ID, f.invoice.ID, types.MustMoney("275"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Deallocate(ctx, a.ID))

	got, _ := f.payments.GetByID(ctx, p.ID)
	assert.True(t, got.AllocatedAmount.IsZero())
	assert.True(t, got.UnallocatedAmount.Equal(types.MustMoney("275")))

	inv, _ := f.invoices.GetByID(ctx, f.invoice.ID)
	assert.True(t, inv.PaidAmount.IsZero())
	assert.True(t, inv.BalanceDue.Equal(inv.TotalAmount))
	assert.Equal(t, invoice.StatusSent, inv.Status)

	_, err = f.payments.GetAllocation(ctx, a.ID)
	require.Error(t, err)
}

func TestDelete_GuardedByAllocations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := NewPayment(f.customer, types.MustMoney("275"), MethodBankTransfer)
	require.NoError(t, f.payments.Create(ctx, p))

	_, err := f.svc.Allocate(ctx, p.ID, f.invoice.ID, types.MustMoney("100"))
	require.NoError(t, err)

	err = f.svc.Delete(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeBusinessRule))
}

func TestPayment_Validate(t *testing.T) {
	p := NewPayment(id.New(), types.MustMoney("100"), MethodCash)
	require.NoError(t, p.Validate(context.Background()))

	p.UnallocatedAmount = types.MustMoney("50")
	err := p.Validate(context.Background())
	require.Error(t, err, "broken split invariant rejected")

	bad := NewPayment(id.New(), types.Zero(), MethodCash)
	require.Error(t, bad.Validate(context.Background()))
}
