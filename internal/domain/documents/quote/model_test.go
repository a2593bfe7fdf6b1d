package quote

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestNewQuote_ValidFor30Days(t *testing.T) {
	q := NewQuote(id.New())

	assert.Equal(t, StatusDraft, q.Status)
	assert.Equal(t, q.Date.AddDate(0, 0, 30), q.ValidUntil)
}

func TestAccept_WithinValidity(t *testing.T) {
	q := NewQuote(id.New())
	q.AddLine(nil, "Consulting", qty(4), types.MustMoney("150"), types.Zero(), types.Zero())
	require.NoError(t, q.Send())

	require.NoError(t, q.Accept(q.ValidUntil))
	assert.Equal(t, StatusAccepted, q.Status)
}

func TestAccept_ExpiredQuote(t *testing.T) {
	q := NewQuote(id.New())
	q.AddLine(nil, "Consulting", qty(4), types.MustMoney("150"), types.Zero(), types.Zero())
	require.NoError(t, q.Send())

	err := q.Accept(q.ValidUntil.Add(24 * time.Hour))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidStateTransition))
	assert.Equal(t, StatusExpired, q.Status)
}

func TestToInvoice_CarriesLinesAndTotals(t *testing.T) {
	productID := id.New()
	q := NewQuote(id.New())
	q.AddLine(&productID, "Widget", qty(2), types.MustMoney("100"), types.Zero(), types.MustMoney("10"))
	q.AddLine(nil, "Shipping", qty(1), types.MustMoney("50"), types.Zero(), types.MustMoney("10"))
	require.NoError(t, q.Send())
	require.NoError(t, q.Accept(q.ValidUntil))

	inv, err := q.ToInvoice()
	require.NoError(t, err)

	assert.Equal(t, q.CustomerID, inv.CustomerID)
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, &productID, inv.Lines[0].ProductID)
	assert.True(t, inv.Subtotal.Equal(q.Subtotal))
	assert.True(t, inv.TotalAmount.Equal(q.TotalAmount))
}

func TestToInvoice_RequiresAccepted(t *testing.T) {
	q := NewQuote(id.New())
	q.AddLine(nil, "Widget", qty(1), types.MustMoney("10"), types.Zero(), types.Zero())

	_, err := q.ToInvoice()
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidStateTransition))
}

func TestMarkConverted(t *testing.T) {
	q := NewQuote(id.New())
	invoiceID := id.New()

	q.MarkConverted(invoiceID)

	assert.Equal(t, StatusConverted, q.Status)
	require.NotNil(t, q.InvoiceID)
	assert.Equal(t, invoiceID, *q.InvoiceID)
}

func TestReject_OnlyFromSent(t *testing.T) {
	q := NewQuote(id.New())

	err := q.Reject()
	require.Error(t, err)

	q.AddLine(nil, "Widget", qty(1), types.MustMoney("10"), types.Zero(), types.Zero())
	require.NoError(t, q.Send())
	require.NoError(t, q.Reject())
	assert.Equal(t, StatusRejected, q.Status)
}

func TestSend_EmptyQuoteRejected(t *testing.T) {
	q := NewQuote(id.New())

	err := q.Send()
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}
