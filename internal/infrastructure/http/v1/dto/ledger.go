package dto

import (
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/ledger"
)

// JournalLineRequest is one side of a manual journal entry.
type JournalLineRequest struct {
	AccountID string      `json:"accountId" binding:"required"`
	Debit     types.Money `json:"debit"`
	Credit    types.Money `json:"credit"`
	Memo      string      `json:"memo"`
}

// CreateJournalEntryRequest is the request body for a manual journal entry.
type CreateJournalEntryRequest struct {
	Number string               `json:"number"`
	Date   *time.Time           `json:"date"`
	Memo   string               `json:"memo"`
	Lines  []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToEntity converts request to a manual domain entry.
func (r *CreateJournalEntryRequest) ToEntity() *ledger.JournalEntry {
	entry := ledger.NewJournalEntry(ledger.SourceManual, nil)
	entry.Number = r.Number
	if r.Date != nil {
		entry.Date = *r.Date
	}
	entry.Memo = r.Memo

	for _, line := range r.Lines {
		accountID, _ := id.Parse(line.AccountID)
		if !line.Debit.IsZero() {
			entry.Debit(accountID, line.Debit, line.Memo)
		}
		if !line.Credit.IsZero() {
			entry.Credit(accountID, line.Credit, line.Memo)
		}
	}

	return entry
}
