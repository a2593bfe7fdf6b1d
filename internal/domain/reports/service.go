// Package reports provides the reporting service.
package reports

import (
	"context"
	"fmt"
	"time"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/catalogs/account"
)

// Service assembles reports from aggregation queries.
// All methods are read-only.
type Service struct {
	repo Repository
}

// NewService creates a new reporting service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// TrialBalance sums debits and credits per account as of a date.
// Returns an internal error if the books do not balance: that means
// corrupted journal data, not a report problem.
func (s *Service) TrialBalance(ctx context.Context, asOf time.Time) (*TrialBalance, error) {
	if asOf.IsZero() {
		return nil, apperror.NewValidation("as-of date is required").
			WithDetail("field", "asOf")
	}

	balances, err := s.repo.AccountBalances(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("account balances: %w", err)
	}

	tb := &TrialBalance{
		AsOf:        asOf,
		Rows:        make([]TrialBalanceRow, 0, len(balances)),
		TotalDebit:  types.Zero(),
		TotalCredit: types.Zero(),
	}

	for _, b := range balances {
		tb.Rows = append(tb.Rows, TrialBalanceRow{
			AccountID:   b.AccountID,
			AccountCode: b.AccountCode,
			AccountName: b.AccountName,
			AccountType: b.AccountType,
			Debit:       b.Debit,
			Credit:      b.Credit,
		})
		tb.TotalDebit = tb.TotalDebit.Add(b.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(b.Credit)
	}

	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		return nil, apperror.NewInternal(
			fmt.Errorf("trial balance out of balance: debit %s, credit %s", tb.TotalDebit, tb.TotalCredit))
	}

	return tb, nil
}

// ProfitAndLoss aggregates revenue and expense activity in [start, end].
// Net income = revenue - expenses.
func (s *Service) ProfitAndLoss(ctx context.Context, start, end time.Time) (*ProfitAndLoss, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	activity, err := s.repo.AccountActivity(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("account activity: %w", err)
	}

	pl := &ProfitAndLoss{
		StartDate:     start,
		EndDate:       end,
		Revenue:       make([]AccountAmount, 0),
		Expenses:      make([]AccountAmount, 0),
		TotalRevenue:  types.Zero(),
		TotalExpenses: types.Zero(),
	}

	for _, b := range activity {
		switch b.AccountType {
		case account.TypeRevenue:
			// Revenue accounts are credit-normal
			amount := b.Credit.Sub(b.Debit)
			pl.Revenue = append(pl.Revenue, toAccountAmount(b, amount))
			pl.TotalRevenue = pl.TotalRevenue.Add(amount)
		case account.TypeExpense:
			amount := b.Debit.Sub(b.Credit)
			pl.Expenses = append(pl.Expenses, toAccountAmount(b, amount))
			pl.TotalExpenses = pl.TotalExpenses.Add(amount)
		}
	}

	pl.NetIncome = pl.TotalRevenue.Sub(pl.TotalExpenses)
	return pl, nil
}

// BalanceSheet aggregates asset, liability and equity balances as of a
// date. Accumulated earnings from revenue and expense accounts appear
// as a derived equity line, so assets = liabilities + equity holds by
// construction of the double entry.
func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (*BalanceSheet, error) {
	if asOf.IsZero() {
		return nil, apperror.NewValidation("as-of date is required").
			WithDetail("field", "asOf")
	}

	balances, err := s.repo.AccountBalances(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("account balances: %w", err)
	}

	bs := &BalanceSheet{
		AsOf:             asOf,
		Assets:           make([]AccountAmount, 0),
		Liabilities:      make([]AccountAmount, 0),
		Equity:           make([]AccountAmount, 0),
		CurrentEarnings:  types.Zero(),
		TotalAssets:      types.Zero(),
		TotalLiabilities: types.Zero(),
		TotalEquity:      types.Zero(),
	}

	for _, b := range balances {
		switch b.AccountType {
		case account.TypeAsset:
			amount := b.Debit.Sub(b.Credit)
			bs.Assets = append(bs.Assets, toAccountAmount(b, amount))
			bs.TotalAssets = bs.TotalAssets.Add(amount)
		case account.TypeLiability:
			amount := b.Credit.Sub(b.Debit)
			bs.Liabilities = append(bs.Liabilities, toAccountAmount(b, amount))
			bs.TotalLiabilities = bs.TotalLiabilities.Add(amount)
		case account.TypeEquity:
			amount := b.Credit.Sub(b.Debit)
			bs.Equity = append(bs.Equity, toAccountAmount(b, amount))
			bs.TotalEquity = bs.TotalEquity.Add(amount)
		case account.TypeRevenue:
			bs.CurrentEarnings = bs.CurrentEarnings.Add(b.Credit.Sub(b.Debit))
		case account.TypeExpense:
			bs.CurrentEarnings = bs.CurrentEarnings.Sub(b.Debit.Sub(b.Credit))
		}
	}

	bs.TotalEquity = bs.TotalEquity.Add(bs.CurrentEarnings)

	if !bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity)) {
		return nil, apperror.NewInternal(
			fmt.Errorf("balance sheet identity broken: assets %s, liabilities+equity %s",
				bs.TotalAssets, bs.TotalLiabilities.Add(bs.TotalEquity)))
	}

	return bs, nil
}

// ARAging buckets outstanding invoice balances by days overdue relative
// to asOf: current (not yet due), 1-30, 31-60, 61-90 and over 90 days.
func (s *Service) ARAging(ctx context.Context, asOf time.Time) (*ARAging, error) {
	if asOf.IsZero() {
		return nil, apperror.NewValidation("as-of date is required").
			WithDetail("field", "asOf")
	}

	open, err := s.repo.OpenInvoices(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("open invoices: %w", err)
	}

	byCustomer := make(map[id.ID]*ARAgingRow)
	order := make([]id.ID, 0)

	report := &ARAging{AsOf: asOf, Total: types.Zero()}

	for _, inv := range open {
		row, ok := byCustomer[inv.CustomerID]
		if !ok {
			row = &ARAgingRow{
				CustomerID:   inv.CustomerID,
				CustomerName: inv.CustomerName,
				Current:      types.Zero(),
				Days1To30:    types.Zero(),
				Days31To60:   types.Zero(),
				Days61To90:   types.Zero(),
				Over90:       types.Zero(),
				Total:        types.Zero(),
			}
			byCustomer[inv.CustomerID] = row
			order = append(order, inv.CustomerID)
		}

		days := daysOverdue(inv.DueDate, asOf)
		switch {
		case days <= 0:
			row.Current = row.Current.Add(inv.BalanceDue)
		case days <= 30:
			row.Days1To30 = row.Days1To30.Add(inv.BalanceDue)
		case days <= 60:
			row.Days31To60 = row.Days31To60.Add(inv.BalanceDue)
		case days <= 90:
			row.Days61To90 = row.Days61To90.Add(inv.BalanceDue)
		default:
			row.Over90 = row.Over90.Add(inv.BalanceDue)
		}
		row.Total = row.Total.Add(inv.BalanceDue)
		report.Total = report.Total.Add(inv.BalanceDue)
	}

	report.Rows = make([]ARAgingRow, 0, len(order))
	for _, cid := range order {
		report.Rows = append(report.Rows, *byCustomer[cid])
	}

	return report, nil
}

// CustomerStatement lists a customer's invoices and payments within
// [start, end] with a running balance on top of the opening balance.
func (s *Service) CustomerStatement(ctx context.Context, customerID id.ID, start, end time.Time) (*CustomerStatement, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	name, err := s.repo.CustomerName(ctx, customerID)
	if err != nil {
		return nil, err
	}

	opening, err := s.repo.CustomerBalanceBefore(ctx, customerID, start)
	if err != nil {
		return nil, fmt.Errorf("opening balance: %w", err)
	}

	docs, err := s.repo.CustomerDocs(ctx, customerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("customer docs: %w", err)
	}

	stmt := &CustomerStatement{
		CustomerID:     customerID,
		CustomerName:   name,
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: opening,
		Lines:          make([]StatementLine, 0, len(docs)),
	}

	running := opening
	for _, d := range docs {
		line := StatementLine{
			Date:    d.Date,
			DocType: d.DocType,
			Number:  d.Number,
			Charge:  types.Zero(),
			Credit:  types.Zero(),
		}
		if d.Amount.IsNegative() {
			line.Credit = d.Amount.Neg()
		} else {
			line.Charge = d.Amount
		}
		running = running.Add(d.Amount)
		line.Balance = running
		stmt.Lines = append(stmt.Lines, line)
	}

	stmt.ClosingBalance = running
	return stmt, nil
}

// RevenueSummary breaks invoiced and collected revenue down by month.
func (s *Service) RevenueSummary(ctx context.Context, start, end time.Time) (*RevenueSummary, error) {
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	months, err := s.repo.RevenueByMonth(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}

	rs := &RevenueSummary{
		StartDate:      start,
		EndDate:        end,
		Periods:        make([]RevenuePeriod, 0, len(months)),
		TotalInvoiced:  types.Zero(),
		TotalCollected: types.Zero(),
	}

	for _, m := range months {
		rs.Periods = append(rs.Periods, RevenuePeriod{
			Year:      m.Year,
			Month:     m.Month,
			Invoiced:  m.Invoiced,
			Collected: m.Collected,
		})
		rs.TotalInvoiced = rs.TotalInvoiced.Add(m.Invoiced)
		rs.TotalCollected = rs.TotalCollected.Add(m.Collected)
	}

	return rs, nil
}

func toAccountAmount(b AccountBalance, amount types.Money) AccountAmount {
	return AccountAmount{
		AccountID:   b.AccountID,
		AccountCode: b.AccountCode,
		AccountName: b.AccountName,
		Amount:      amount,
	}
}

func daysOverdue(dueDate, asOf time.Time) int {
	return int(asOf.Sub(dueDate).Hours() / 24)
}

func validatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperror.NewValidation("start and end dates are required")
	}
	if end.Before(start) {
		return apperror.NewValidation("end date cannot precede start date").
			WithDetail("start", start.Format(time.DateOnly)).
			WithDetail("end", end.Format(time.DateOnly))
	}
	return nil
}
