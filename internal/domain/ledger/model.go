// Package ledger provides double-entry journal entries.
// Every entry holds at least two lines; the sum of debits always equals
// the sum of credits, enforced before any entry is persisted.
package ledger

import (
	"context"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

// SourceType names the document kind an entry was generated from.
type SourceType string

const (
	SourceManual   SourceType = "manual"
	SourceInvoice  SourceType = "invoice"
	SourceBill     SourceType = "vendor_bill"
	SourcePayment  SourceType = "payment"
	SourceReversal SourceType = "reversal"
)

// JournalEntry represents one double-entry posting.
type JournalEntry struct {
	entity.Document

	// SourceType and SourceID reference the originating document;
	// manual entries carry SourceManual and a nil SourceID.
	SourceType SourceType `db:"source_type" json:"sourceType"`
	SourceID   *id.ID     `db:"source_id" json:"sourceId,omitempty"`

	// ReversesID links a reversal to the entry it cancels
	ReversesID *id.ID `db:"reverses_id" json:"reversesId,omitempty"`

	TotalDebit  types.Money `db:"total_debit" json:"totalDebit"`
	TotalCredit types.Money `db:"total_credit" json:"totalCredit"`

	Lines []JournalLine `db:"-" json:"lines"`
}

// JournalLine represents one side of a posting.
// Exactly one of Debit or Credit is positive, the other is zero.
type JournalLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	AccountID id.ID `db:"account_id" json:"accountId"`

	Debit  types.Money `db:"debit" json:"debit"`
	Credit types.Money `db:"credit" json:"credit"`

	Memo string `db:"memo" json:"memo,omitempty"`
}

// NewJournalEntry creates an empty entry.
func NewJournalEntry(sourceType SourceType, sourceID *id.ID) *JournalEntry {
	return &JournalEntry{
		Document:    entity.NewDocument(),
		SourceType:  sourceType,
		SourceID:    sourceID,
		TotalDebit:  types.Zero(),
		TotalCredit: types.Zero(),
		Lines:       make([]JournalLine, 0),
	}
}

// Debit appends a debit line. Zero amounts are skipped.
func (e *JournalEntry) Debit(accountID id.ID, amount types.Money, memo string) {
	e.addLine(accountID, amount, types.Zero(), memo)
}

// Credit appends a credit line. Zero amounts are skipped.
func (e *JournalEntry) Credit(accountID id.ID, amount types.Money, memo string) {
	e.addLine(accountID, types.Zero(), amount, memo)
}

func (e *JournalEntry) addLine(accountID id.ID, debit, credit types.Money, memo string) {
	if debit.IsZero() && credit.IsZero() {
		return
	}
	e.Lines = append(e.Lines, JournalLine{
		LineID:    id.New(),
		LineNo:    len(e.Lines) + 1,
		AccountID: accountID,
		Debit:     debit,
		Credit:    credit,
		Memo:      memo,
	})
	e.TotalDebit = e.TotalDebit.Add(debit)
	e.TotalCredit = e.TotalCredit.Add(credit)
}

// IsBalanced reports whether debits equal credits.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit.Equal(e.TotalCredit)
}

// Reverse builds the cancelling entry: every line with debit and credit
// swapped, dated with the given entry date.
func (e *JournalEntry) Reverse() *JournalEntry {
	rev := NewJournalEntry(SourceReversal, e.SourceID)
	rev.ReversesID = &e.ID
	rev.Memo = "reversal of " + e.Number
	for _, l := range e.Lines {
		rev.addLine(l.AccountID, l.Credit, l.Debit, l.Memo)
	}
	return rev
}

// Validate implements entity.Validatable.
func (e *JournalEntry) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}

	if len(e.Lines) < 2 {
		return apperror.NewValidation("journal entry needs at least two lines").
			WithDetail("field", "lines")
	}

	for i, l := range e.Lines {
		if id.IsNil(l.AccountID) {
			return apperror.NewValidation("account is required").
				WithDetail("lineNo", i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return apperror.NewValidation("amounts cannot be negative").
				WithDetail("lineNo", i+1)
		}
		oneSide := (l.Debit.IsPositive() && l.Credit.IsZero()) ||
			(l.Credit.IsPositive() && l.Debit.IsZero())
		if !oneSide {
			return apperror.NewValidation("line must debit or credit exactly one side").
				WithDetail("lineNo", i+1)
		}
	}

	if !e.IsBalanced() {
		return apperror.NewUnbalancedEntry(e.TotalDebit.String(), e.TotalCredit.String())
	}

	return nil
}
