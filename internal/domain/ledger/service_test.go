package ledger

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/catalogs/product"
	"ledgerhouse/internal/domain/documents/invoice"
	"ledgerhouse/internal/domain/documents/vendorbill"
	"ledgerhouse/pkg/numerator"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memEntryRepo struct {
	entries map[id.ID]*JournalEntry
}

func newMemEntryRepo() *memEntryRepo {
	return &memEntryRepo{entries: make(map[id.ID]*JournalEntry)}
}

func (r *memEntryRepo) Create(ctx context.Context, entry *JournalEntry) error {
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *memEntryRepo) GetByID(ctx context.Context, entryID id.ID) (*JournalEntry, error) {
	e, ok := r.entries[entryID]
	if !ok {
		return nil, apperror.NewNotFound("journal entry", entryID.String())
	}
	cp := *e
	return &cp, nil
}

func (r *memEntryRepo) GetByNumber(ctx context.Context, number string) (*JournalEntry, error) {
	for _, e := range r.entries {
		if e.Number == number {
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("journal entry", number)
}

func (r *memEntryRepo) GetLines(ctx context.Context, entryID id.ID) ([]JournalLine, error) {
	e, ok := r.entries[entryID]
	if !ok {
		return nil, apperror.NewNotFound("journal entry", entryID.String())
	}
	return e.Lines, nil
}

func (r *memEntryRepo) ListBySource(ctx context.Context, sourceID id.ID) ([]*JournalEntry, error) {
	var out []*JournalEntry
	for _, e := range r.entries {
		if e.SourceID != nil && *e.SourceID == sourceID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memEntryRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*JournalEntry], error) {
	result := domain.ListResult[*JournalEntry]{}
	for _, e := range r.entries {
		cp := *e
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

type stubProducts struct{}

func (stubProducts) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return nil, apperror.NewNotFound("product", productID.String())
}

type seqRow struct{ val int64 }

func (r *seqRow) Scan(dest ...any) error {
	if ptr, ok := dest[0].(*int64); ok {
		*ptr = r.val
	}
	return nil
}

type seqQuerier struct{ current int64 }

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.current++
	return &seqRow{val: q.current}
}

func testSystemAccounts() SystemAccounts {
	return SystemAccounts{
		AccountsReceivable: id.New(),
		AccountsPayable:    id.New(),
		Cash:               id.New(),
		SalesRevenue:       id.New(),
		TaxPayable:         id.New(),
		TaxReceivable:      id.New(),
		DefaultExpense:     id.New(),
	}
}

func newTestService(repo *memEntryRepo, system SystemAccounts) *Service {
	return NewService(repo, nil, stubProducts{}, system, numerator.New(&seqQuerier{}), nopTxManager{})
}

func TestPostInvoice_BalancedEntry(t *testing.T) {
	repo := newMemEntryRepo()
	system := testSystemAccounts()
	svc := newTestService(repo, system)

	inv := invoice.NewInvoice(id.New())
	inv.Number = "INV-2026-00001"
	inv.AddLine(nil, "Widget", decimal.NewFromInt(2), types.MustMoney("100"), types.Zero(), types.MustMoney("10"))

	require.NoError(t, svc.PostInvoice(context.Background(), inv))
	require.Len(t, repo.entries, 1)

	for _, e := range repo.entries {
		assert.GreaterOrEqual(t, len(e.Lines), 2)
		assert.True(t, e.IsBalanced())
		assert.True(t, e.TotalDebit.Equal(inv.TotalAmount))
		assert.Equal(t, system.AccountsReceivable, e.Lines[0].AccountID)
	}
}

func TestPostInvoice_ZeroTotalNotPosted(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newTestService(repo, testSystemAccounts())

	inv := invoice.NewInvoice(id.New())
	inv.AddLine(nil, "Free item", decimal.NewFromInt(1), types.Zero(), types.Zero(), types.Zero())

	require.NoError(t, inv.Send())
	require.NoError(t, svc.PostInvoice(context.Background(), inv))

	assert.Empty(t, repo.entries, "zero-total invoice must not produce a journal entry")
}

func TestPostBill_ZeroTotalNotPosted(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newTestService(repo, testSystemAccounts())

	bill := vendorbill.NewVendorBill(id.New())
	bill.AddLine(nil, nil, "Warranty replacement", decimal.NewFromInt(1), types.Zero(), types.Zero(), types.Zero())

	require.NoError(t, svc.PostBill(context.Background(), bill))

	assert.Empty(t, repo.entries)
}

func TestPostPaymentReceived_ZeroAmountRejected(t *testing.T) {
	repo := newMemEntryRepo()
	svc := newTestService(repo, testSystemAccounts())

	err := svc.PostPaymentReceived(context.Background(), id.New(), "PAY-2026-00001", types.Zero())

	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Empty(t, repo.entries)
}
