package invoice

import (
	"context"
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

func TestRecalculate_TwoLinesWithTax(t *testing.T) {
	inv := NewInvoice(id.New())
	inv.AddLine(nil, "Widget", qty(2), types.MustMoney("100"), types.Zero(), types.MustMoney("10"))
	inv.AddLine(nil, "Gadget", qty(1), types.MustMoney("50"), types.Zero(), types.MustMoney("10"))

	assert.True(t, inv.Subtotal.Equal(types.MustMoney("250")), "subtotal: %s", inv.Subtotal)
	assert.True(t, inv.TaxAmount.Equal(types.MustMoney("25")), "tax: %s", inv.TaxAmount)
	assert.True(t, inv.TotalAmount.Equal(types.MustMoney("275")), "total: %s", inv.TotalAmount)
	assert.True(t, inv.BalanceDue.Equal(types.MustMoney("275")))
}

func TestRecalculate_DiscountBeforeTax(t *testing.T) {
	inv := NewInvoice(id.New())
	// 10 * 100 = 1000, 10% discount = 100, tax 20% on 900 = 180
	inv.AddLine(nil, "Bulk order", qty(10), types.MustMoney("100"), types.MustMoney("10"), types.MustMoney("20"))

	assert.True(t, inv.Subtotal.Equal(types.MustMoney("1000")))
	assert.True(t, inv.DiscountAmount.Equal(types.MustMoney("100")))
	assert.True(t, inv.TaxAmount.Equal(types.MustMoney("180")))
	assert.True(t, inv.TotalAmount.Equal(types.MustMoney("1080")))
}

func TestRecalculate_Idempotent(t *testing.T) {
	inv := NewInvoice(id.New())
	inv.AddLine(nil, "Service fee", decimal.NewFromFloat(1.5), types.MustMoney("99.99"), types.MustMoney("5"), types.MustMoney("7"))

	first := inv.TotalAmount
	inv.Recalculate()
	inv.Recalculate()

	assert.True(t, inv.TotalAmount.Equal(first))
	assert.True(t, inv.BalanceDue.Equal(inv.TotalAmount.Sub(inv.PaidAmount)))
}

func TestRemoveLine_RenumbersAndRecalculates(t *testing.T) {
	inv := NewInvoice(id.New())
	inv.AddLine(nil, "A", qty(1), types.MustMoney("10"), types.Zero(), types.Zero())
	inv.AddLine(nil, "B", qty(1), types.MustMoney("20"), types.Zero(), types.Zero())
	inv.AddLine(nil, "C", qty(1), types.MustMoney("30"), types.Zero(), types.Zero())

	inv.RemoveLine(inv.Lines[1].LineID)

	require.Len(t, inv.Lines, 2)
	assert.Equal(t, 1, inv.Lines[0].LineNo)
	assert.Equal(t, 2, inv.Lines[1].LineNo)
	assert.True(t, inv.TotalAmount.Equal(types.MustMoney("40")))
}

func TestApplyPayment_FullCycle(t *testing.T) {
	inv := NewInvoice(id.New())
	inv.AddLine(nil, "Widget", qty(2), types.MustMoney("100"), types.Zero(), types.MustMoney("10"))
	inv.AddLine(nil, "Gadget", qty(1), types.MustMoney("50"), types.Zero(), types.MustMoney("10"))
	require.NoError(t, inv.Send())

	require.NoError(t, inv.ApplyPayment(types.MustMoney("100")))
	assert.Equal(t, StatusPartiallyPaid, inv.Status)
	assert.True(t, inv.BalanceDue.Equal(types.MustMoney("175")))

	require.NoError(t, inv.ApplyPayment(types.MustMoney("175")))
	assert.Equal(t, StatusPaid, inv.Status)
	assert.True(t, inv.BalanceDue.IsZero())

	// Deallocation rolls status back
	require.NoError(t, inv.ApplyPayment(types.MustMoney("-275")))
	assert.Equal(t, StatusSent, inv.Status)
	assert.True(t, inv.BalanceDue.Equal(inv.TotalAmount))
}

func TestApplyPayment_Overpayment(t *testing.T) {
	inv := NewInvoice(id.New())
	inv.AddLine(nil, "Widget", qty(1), types.MustMoney("100"), types.Zero(), types.Zero())
	require.NoError(t, inv.Send())

	err := inv.ApplyPayment(types.MustMoney("150"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.True(t, inv.PaidAmount.IsZero(), "failed payment must not change state")
}

func TestStatusTransitions(t *testing.T) {
	inv := NewInvoice(id.New())
	inv.AddLine(nil, "Widget", qty(1), types.MustMoney("100"), types.Zero(), types.Zero())

	// Draft can be modified, sent cannot
	require.NoError(t, inv.CanModify())
	require.NoError(t, inv.Send())
	err := inv.CanModify()
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidStateTransition))

	// Double send rejected
	err = inv.Send()
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidStateTransition))

	// Paid invoice cannot be voided
	require.NoError(t, inv.ApplyPayment(types.MustMoney("100")))
	err = inv.Void()
	require.Error(t, err)
}

func TestVoid_UnpaidOnly(t *testing.T) {
	inv := NewInvoice(id.New())
	inv.AddLine(nil, "Widget", qty(1), types.MustMoney("100"), types.Zero(), types.Zero())
	require.NoError(t, inv.Send())

	require.NoError(t, inv.Void())
	assert.Equal(t, StatusVoid, inv.Status)

	// Void is terminal
	err := inv.Send()
	require.Error(t, err)
}

func TestSend_EmptyInvoiceRejected(t *testing.T) {
	inv := NewInvoice(id.New())
	err := inv.Send()
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	inv := NewInvoice(id.New())
	inv.Date = now.AddDate(0, 0, -60)
	inv.DueDate = now.AddDate(0, 0, -45)
	inv.AddLine(nil, "Widget", qty(1), types.MustMoney("100"), types.Zero(), types.Zero())
	require.NoError(t, inv.Send())

	assert.True(t, inv.IsOverdue(now))
	assert.Equal(t, 45, inv.DaysOverdue(now))

	// Fully paid invoices are never overdue
	require.NoError(t, inv.ApplyPayment(types.MustMoney("100")))
	assert.False(t, inv.IsOverdue(now))
}

func TestValidate(t *testing.T) {
	inv := NewInvoice(id.Nil())
	err := inv.Validate(context.Background())
	require.Error(t, err, "nil customer rejected")

	inv = NewInvoice(id.New())
	inv.AddLine(nil, "Widget", qty(-1), types.MustMoney("100"), types.Zero(), types.Zero())
	err = inv.Validate(context.Background())
	require.Error(t, err, "negative quantity rejected")

	inv = NewInvoice(id.New())
	inv.AddLine(nil, "Widget", qty(1), types.MustMoney("100"), types.MustMoney("120"), types.Zero())
	err = inv.Validate(context.Background())
	require.Error(t, err, "discount above 100 rejected")
}
