// Package reports provides read-only financial reports aggregated from
// journal lines and open documents.
package reports

import (
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/catalogs/account"
)

// TrialBalanceRow is one account's accumulated debit and credit.
type TrialBalanceRow struct {
	AccountID   id.ID               `json:"accountId"`
	AccountCode string              `json:"accountCode"`
	AccountName string              `json:"accountName"`
	AccountType account.AccountType `json:"accountType"`
	Debit       types.Money         `json:"debit"`
	Credit      types.Money         `json:"credit"`
}

// TrialBalance lists all account balances as of a date.
// TotalDebit always equals TotalCredit.
type TrialBalance struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  types.Money       `json:"totalDebit"`
	TotalCredit types.Money       `json:"totalCredit"`
}

// AccountAmount is one account's net amount for a report section.
type AccountAmount struct {
	AccountID   id.ID       `json:"accountId"`
	AccountCode string      `json:"accountCode"`
	AccountName string      `json:"accountName"`
	Amount      types.Money `json:"amount"`
}

// ProfitAndLoss aggregates revenue and expense activity for a period.
type ProfitAndLoss struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	Revenue  []AccountAmount `json:"revenue"`
	Expenses []AccountAmount `json:"expenses"`

	TotalRevenue  types.Money `json:"totalRevenue"`
	TotalExpenses types.Money `json:"totalExpenses"`
	NetIncome     types.Money `json:"netIncome"`
}

// BalanceSheet aggregates asset, liability and equity balances as of a
// date. TotalAssets always equals TotalLiabilities + TotalEquity; the
// equity section carries current earnings as a derived line.
type BalanceSheet struct {
	AsOf time.Time `json:"asOf"`

	Assets      []AccountAmount `json:"assets"`
	Liabilities []AccountAmount `json:"liabilities"`
	Equity      []AccountAmount `json:"equity"`

	CurrentEarnings types.Money `json:"currentEarnings"`

	TotalAssets      types.Money `json:"totalAssets"`
	TotalLiabilities types.Money `json:"totalLiabilities"`
	TotalEquity      types.Money `json:"totalEquity"`
}

// ARAgingRow buckets one customer's outstanding invoice balances by age.
type ARAgingRow struct {
	CustomerID   id.ID  `json:"customerId"`
	CustomerName string `json:"customerName"`

	Current    types.Money `json:"current"`
	Days1To30  types.Money `json:"days1to30"`
	Days31To60 types.Money `json:"days31to60"`
	Days61To90 types.Money `json:"days61to90"`
	Over90     types.Money `json:"over90"`

	Total types.Money `json:"total"`
}

// ARAging is the accounts receivable aging report.
type ARAging struct {
	AsOf  time.Time    `json:"asOf"`
	Rows  []ARAgingRow `json:"rows"`
	Total types.Money  `json:"total"`
}

// StatementLine is one document on a customer statement.
type StatementLine struct {
	Date    time.Time `json:"date"`
	DocType string    `json:"docType"`
	Number  string    `json:"number"`

	// Charge increases what the customer owes, Credit decreases it
	Charge types.Money `json:"charge"`
	Credit types.Money `json:"credit"`

	// Balance is the running balance after this line
	Balance types.Money `json:"balance"`
}

// CustomerStatement is the chronological document list with a running
// balance for one customer.
type CustomerStatement struct {
	CustomerID   id.ID  `json:"customerId"`
	CustomerName string `json:"customerName"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	OpeningBalance types.Money     `json:"openingBalance"`
	Lines          []StatementLine `json:"lines"`
	ClosingBalance types.Money     `json:"closingBalance"`
}

// RevenuePeriod is one month of invoiced and collected totals.
type RevenuePeriod struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Invoiced  types.Money `json:"invoiced"`
	Collected types.Money `json:"collected"`
}

// RevenueSummary breaks revenue down by month over a period.
type RevenueSummary struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	Periods []RevenuePeriod `json:"periods"`

	TotalInvoiced  types.Money `json:"totalInvoiced"`
	TotalCollected types.Money `json:"totalCollected"`
}
