package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

func TestJournalEntry_Balanced(t *testing.T) {
	ar := id.New()
	revenue := id.New()
	tax := id.New()

	e := NewJournalEntry(SourceInvoice, nil)
	e.Debit(ar, types.MustMoney("275"), "INV-2026-00001")
	e.Credit(revenue, types.MustMoney("250"), "")
	e.Credit(tax, types.MustMoney("25"), "sales tax")

	assert.True(t, e.IsBalanced())
	require.NoError(t, e.Validate(context.Background()))
	assert.True(t, e.TotalDebit.Equal(types.MustMoney("275")))
	assert.True(t, e.TotalCredit.Equal(types.MustMoney("275")))
}

func TestJournalEntry_Unbalanced(t *testing.T) {
	e := NewJournalEntry(SourceManual, nil)
	e.Debit(id.New(), types.MustMoney("100"), "")
	e.Credit(id.New(), types.MustMoney("90"), "")

	assert.False(t, e.IsBalanced())
	err := e.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnbalancedEntry))
}

func TestJournalEntry_ZeroLinesSkipped(t *testing.T) {
	e := NewJournalEntry(SourceManual, nil)
	e.Debit(id.New(), types.MustMoney("100"), "")
	e.Credit(id.New(), types.Zero(), "skipped")
	e.Credit(id.New(), types.MustMoney("100"), "")

	assert.Len(t, e.Lines, 2)
	assert.True(t, e.IsBalanced())
}

func TestJournalEntry_SingleLineRejected(t *testing.T) {
	e := NewJournalEntry(SourceManual, nil)
	e.Debit(id.New(), types.MustMoney("100"), "")

	err := e.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestJournalEntry_Reverse(t *testing.T) {
	ar := id.New()
	revenue := id.New()
	src := id.New()

	e := NewJournalEntry(SourceInvoice, &src)
	e.Number = "JE-2026-00042"
	e.Debit(ar, types.MustMoney("100"), "")
	e.Credit(revenue, types.MustMoney("100"), "")

	rev := e.Reverse()

	assert.Equal(t, SourceReversal, rev.SourceType)
	require.NotNil(t, rev.ReversesID)
	assert.Equal(t, e.ID, *rev.ReversesID)
	require.Len(t, rev.Lines, 2)

	// Sides swapped, entry still balanced
	assert.True(t, rev.Lines[0].Credit.Equal(types.MustMoney("100")))
	assert.True(t, rev.Lines[0].Debit.IsZero())
	assert.Equal(t, ar, rev.Lines[0].AccountID)
	assert.True(t, rev.Lines[1].Debit.Equal(types.MustMoney("100")))
	assert.True(t, rev.IsBalanced())
}

func TestJournalLine_OneSideOnly(t *testing.T) {
	e := NewJournalEntry(SourceManual, nil)
	e.Lines = append(e.Lines, JournalLine{
		LineID:    id.New(),
		LineNo:    1,
		AccountID: id.New(),
		Debit:     types.MustMoney("50"),
		Credit:    types.MustMoney("50"),
	})
	e.Lines = append(e.Lines, JournalLine{
		LineID:    id.New(),
		LineNo:    2,
		AccountID: id.New(),
		Debit:     types.MustMoney("50"),
		Credit:    types.Zero(),
	})
	e.TotalDebit = types.MustMoney("100")
	e.TotalCredit = types.MustMoney("50")

	err := e.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}
