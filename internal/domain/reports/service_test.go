package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/catalogs/account"
)

type stubRepo struct {
	balances []AccountBalance
	activity []AccountBalance
	open     []OpenInvoice
	docs     []StatementDoc
	opening  types.Money
	months   []MonthlyRevenue
	custName string
}

func (r *stubRepo) AccountBalances(ctx context.Context, asOf time.Time) ([]AccountBalance, error) {
	return r.balances, nil
}

func (r *stubRepo) AccountActivity(ctx context.Context, start, end time.Time) ([]AccountBalance, error) {
	return r.activity, nil
}

func (r *stubRepo) OpenInvoices(ctx context.Context, asOf time.Time) ([]OpenInvoice, error) {
	return r.open, nil
}

func (r *stubRepo) CustomerDocs(ctx context.Context, customerID id.ID, start, end time.Time) ([]StatementDoc, error) {
	return r.docs, nil
}

func (r *stubRepo) CustomerBalanceBefore(ctx context.Context, customerID id.ID, before time.Time) (types.Money, error) {
	return r.opening, nil
}

func (r *stubRepo) RevenueByMonth(ctx context.Context, start, end time.Time) ([]MonthlyRevenue, error) {
	return r.months, nil
}

func (r *stubRepo) CustomerName(ctx context.Context, customerID id.ID) (string, error) {
	return r.custName, nil
}

func bal(code string, accType account.AccountType, debit, credit string) AccountBalance {
	return AccountBalance{
		AccountID:   id.New(),
		AccountCode: code,
		AccountName: code,
		AccountType: accType,
		Debit:       types.MustMoney(debit),
		Credit:      types.MustMoney(credit),
	}
}

var asOf = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func TestTrialBalance_Balanced(t *testing.T) {
	repo := &stubRepo{balances: []AccountBalance{
		bal("1100", account.TypeAsset, "275", "0"),
		bal("4000", account.TypeRevenue, "0", "250"),
		bal("2200", account.TypeLiability, "0", "25"),
	}}

	tb, err := NewService(repo).TrialBalance(context.Background(), asOf)
	require.NoError(t, err)
	assert.Len(t, tb.Rows, 3)
	assert.True(t, tb.TotalDebit.Equal(types.MustMoney("275")))
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit))
}

func TestTrialBalance_OutOfBalanceIsInternalError(t *testing.T) {
	repo := &stubRepo{balances: []AccountBalance{
		bal("1100", account.TypeAsset, "100", "0"),
		bal("4000", account.TypeRevenue, "0", "90"),
	}}

	_, err := NewService(repo).TrialBalance(context.Background(), asOf)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInternal))
}

func TestProfitAndLoss(t *testing.T) {
	repo := &stubRepo{activity: []AccountBalance{
		bal("4000", account.TypeRevenue, "0", "1000"),
		bal("4100", account.TypeRevenue, "50", "250"),
		bal("5000", account.TypeExpense, "400", "0"),
		bal("1100", account.TypeAsset, "1250", "0"),
	}}

	pl, err := NewService(repo).ProfitAndLoss(context.Background(), asOf.AddDate(0, -1, 0), asOf)
	require.NoError(t, err)

	assert.Len(t, pl.Revenue, 2)
	assert.Len(t, pl.Expenses, 1)
	assert.True(t, pl.TotalRevenue.Equal(types.MustMoney("1200")))
	assert.True(t, pl.TotalExpenses.Equal(types.MustMoney("400")))
	assert.True(t, pl.NetIncome.Equal(types.MustMoney("800")))
}

func TestProfitAndLoss_InvalidPeriod(t *testing.T) {
	_, err := NewService(&stubRepo{}).ProfitAndLoss(context.Background(), asOf, asOf.AddDate(0, -1, 0))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestBalanceSheet_Identity(t *testing.T) {
	// Invoice posted for 275 (250 revenue + 25 tax), nothing else:
	// AR 275 = tax payable 25 + current earnings 250
	repo := &stubRepo{balances: []AccountBalance{
		bal("1100", account.TypeAsset, "275", "0"),
		bal("2200", account.TypeLiability, "0", "25"),
		bal("4000", account.TypeRevenue, "0", "250"),
	}}

	bs, err := NewService(repo).BalanceSheet(context.Background(), asOf)
	require.NoError(t, err)

	assert.True(t, bs.TotalAssets.Equal(types.MustMoney("275")))
	assert.True(t, bs.TotalLiabilities.Equal(types.MustMoney("25")))
	assert.True(t, bs.CurrentEarnings.Equal(types.MustMoney("250")))
	assert.True(t, bs.TotalEquity.Equal(types.MustMoney("250")))
	assert.True(t, bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity)))
}

func TestARAging_Buckets(t *testing.T) {
	custA := id.New()
	custB := id.New()

	repo := &stubRepo{open: []OpenInvoice{
		// Due 45 days before asOf: lands in 31-60, not 61-90
		{InvoiceID: id.New(), CustomerID: custA, CustomerName: "Acme", Number: "INV-1",
			DueDate: asOf.AddDate(0, 0, -45), BalanceDue: types.MustMoney("100")},
		// Not yet due
		{InvoiceID: id.New(), CustomerID: custA, CustomerName: "Acme", Number: "INV-2",
			DueDate: asOf.AddDate(0, 0, 10), BalanceDue: types.MustMoney("50")},
		// 95 days overdue
		{InvoiceID: id.New(), CustomerID: custB, CustomerName: "Globex", Number: "INV-3",
			DueDate: asOf.AddDate(0, 0, -95), BalanceDue: types.MustMoney("200")},
	}}

	aging, err := NewService(repo).ARAging(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, aging.Rows, 2)

	acme := aging.Rows[0]
	assert.Equal(t, "Acme", acme.CustomerName)
	assert.True(t, acme.Days31To60.Equal(types.MustMoney("100")))
	assert.True(t, acme.Days61To90.IsZero())
	assert.True(t, acme.Current.Equal(types.MustMoney("50")))
	assert.True(t, acme.Total.Equal(types.MustMoney("150")))

	globex := aging.Rows[1]
	assert.True(t, globex.Over90.Equal(types.MustMoney("200")))

	assert.True(t, aging.Total.Equal(types.MustMoney("350")))
}

func TestARAging_BoundaryDays(t *testing.T) {
	cust := id.New()
	repo := &stubRepo{open: []OpenInvoice{
		{InvoiceID: id.New(), CustomerID: cust, CustomerName: "Acme", Number: "INV-30",
			DueDate: asOf.AddDate(0, 0, -30), BalanceDue: types.MustMoney("10")},
		{InvoiceID: id.New(), CustomerID: cust, CustomerName: "Acme", Number: "INV-31",
			DueDate: asOf.AddDate(0, 0, -31), BalanceDue: types.MustMoney("20")},
		{InvoiceID: id.New(), CustomerID: cust, CustomerName: "Acme", Number: "INV-0",
			DueDate: asOf, BalanceDue: types.MustMoney("40")},
	}}

	aging, err := NewService(repo).ARAging(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, aging.Rows, 1)

	row := aging.Rows[0]
	assert.True(t, row.Days1To30.Equal(types.MustMoney("10")))
	assert.True(t, row.Days31To60.Equal(types.MustMoney("20")))
	assert.True(t, row.Current.Equal(types.MustMoney("40")), "due today is current")
}

func TestCustomerStatement_RunningBalance(t *testing.T) {
	start := asOf.AddDate(0, -1, 0)

	repo := &stubRepo{
		custName: "Acme",
		opening:  types.MustMoney("100"),
		docs: []StatementDoc{
			{Date: start.AddDate(0, 0, 2), DocType: "invoice", Number: "INV-5", Amount: types.MustMoney("275")},
			{Date: start.AddDate(0, 0, 10), DocType: "payment", Number: "PAY-3", Amount: types.MustMoney("-275")},
			{Date: start.AddDate(0, 0, 20), DocType: "invoice", Number: "INV-6", Amount: types.MustMoney("80")},
		},
	}

	stmt, err := NewService(repo).CustomerStatement(context.Background(), id.New(), start, asOf)
	require.NoError(t, err)

	assert.True(t, stmt.OpeningBalance.Equal(types.MustMoney("100")))
	require.Len(t, stmt.Lines, 3)

	assert.True(t, stmt.Lines[0].Charge.Equal(types.MustMoney("275")))
	assert.True(t, stmt.Lines[0].Balance.Equal(types.MustMoney("375")))

	assert.True(t, stmt.Lines[1].Credit.Equal(types.MustMoney("275")))
	assert.True(t, stmt.Lines[1].Balance.Equal(types.MustMoney("100")))

	assert.True(t, stmt.Lines[2].Balance.Equal(types.MustMoney("180")))
	assert.True(t, stmt.ClosingBalance.Equal(types.MustMoney("180")))
}

func TestRevenueSummary(t *testing.T) {
	repo := &stubRepo{months: []MonthlyRevenue{
		{Year: 2026, Month: 7, Invoiced: types.MustMoney("1000"), Collected: types.MustMoney("900")},
		{Year: 2026, Month: 8, Invoiced: types.MustMoney("500"), Collected: types.MustMoney("450")},
	}}

	rs, err := NewService(repo).RevenueSummary(context.Background(), asOf.AddDate(0, -2, 0), asOf)
	require.NoError(t, err)

	require.Len(t, rs.Periods, 2)
	assert.True(t, rs.TotalInvoiced.Equal(types.MustMoney("1500")))
	assert.True(t, rs.TotalCollected.Equal(types.MustMoney("1350")))
}
