// Package account provides the chart of accounts.
// Every journal line references exactly one account; the account type
// determines which side (debit or credit) increases the balance and
// which financial statement the account rolls up into.
package account

import (
	"context"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
)

// AccountType classifies an account for reporting.
type AccountType string

const (
	TypeAsset     AccountType = "asset"
	TypeLiability AccountType = "liability"
	TypeEquity    AccountType = "equity"
	TypeRevenue   AccountType = "revenue"
	TypeExpense   AccountType = "expense"
)

// Account represents one entry of the chart of accounts.
type Account struct {
	entity.Catalog

	Type AccountType `db:"type" json:"type"`

	Description *string `db:"description" json:"description,omitempty"`

	// IsSystem marks accounts wired into automatic postings
	// (AR, AP, sales tax); these cannot be deleted.
	IsSystem bool `db:"is_system" json:"isSystem"`

	// Active accounts are selectable in new documents
	Active bool `db:"active" json:"active"`
}

// NewAccount creates a new Account with required fields.
func NewAccount(code, name string, accType AccountType) *Account {
	return &Account{
		Catalog: entity.NewCatalog(code, name),
		Type:    accType,
		Active:  true,
	}
}

// Validate implements entity.Validatable interface.
func (a *Account) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if a.Code == "" {
		return apperror.NewValidation("account code is required").
			WithDetail("field", "code")
	}

	if !IsValidAccountType(a.Type) {
		return apperror.NewValidation("invalid account type").
			WithDetail("field", "type").
			WithDetail("value", string(a.Type))
	}

	return nil
}

// NormalSideDebit reports whether the account's balance increases on the
// debit side. Assets and expenses are debit-normal; liabilities, equity
// and revenue are credit-normal.
func (a *Account) NormalSideDebit() bool {
	return a.Type == TypeAsset || a.Type == TypeExpense
}

// IsBalanceSheet reports whether the account appears on the balance sheet.
func (a *Account) IsBalanceSheet() bool {
	switch a.Type {
	case TypeAsset, TypeLiability, TypeEquity:
		return true
	}
	return false
}

// IsValidAccountType reports whether t is a known account type.
func IsValidAccountType(t AccountType) bool {
	switch t {
	case TypeAsset, TypeLiability, TypeEquity, TypeRevenue, TypeExpense:
		return true
	}
	return false
}
