package vendorbill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func openBill(t *testing.T) *VendorBill {
	t.Helper()
	b := NewVendorBill(id.New())
	b.AddLine(nil, nil, "Office supplies", qty(3), types.MustMoney("50"), types.Zero(), types.MustMoney("10"))
	require.NoError(t, b.Open())
	return b
}

func TestRecalculate_Totals(t *testing.T) {
	b := NewVendorBill(id.New())
	// 3 * 50 = 150, tax 10% = 15
	b.AddLine(nil, nil, "Office supplies", qty(3), types.MustMoney("50"), types.Zero(), types.MustMoney("10"))

	assert.True(t, b.Subtotal.Equal(types.MustMoney("150")))
	assert.True(t, b.TaxAmount.Equal(types.MustMoney("15")))
	assert.True(t, b.TotalAmount.Equal(types.MustMoney("165")))
	assert.True(t, b.BalanceDue.Equal(types.MustMoney("165")))
}

func TestApplyPayment_PartialThenFull(t *testing.T) {
	b := openBill(t)

	require.NoError(t, b.ApplyPayment(types.MustMoney("100")))
	assert.Equal(t, StatusPartiallyPaid, b.Status)
	assert.True(t, b.BalanceDue.Equal(types.MustMoney("65")))

	require.NoError(t, b.ApplyPayment(types.MustMoney("65")))
	assert.Equal(t, StatusPaid, b.Status)
	assert.True(t, b.BalanceDue.IsZero())
}

func TestApplyPayment_Overpayment(t *testing.T) {
	b := openBill(t)

	err := b.ApplyPayment(types.MustMoney("200"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Equal(t, StatusOpen, b.Status)
	assert.True(t, b.PaidAmount.IsZero())
}

func TestApplyPayment_ReversalRestoresStatus(t *testing.T) {
	b := openBill(t)
	require.NoError(t, b.ApplyPayment(types.MustMoney("165")))
	require.Equal(t, StatusPaid, b.Status)

	require.NoError(t, b.ApplyPayment(types.MustMoney("-165")))
	assert.Equal(t, StatusOpen, b.Status)
	assert.True(t, b.BalanceDue.Equal(b.TotalAmount))
}

func TestOpen_EmptyBillRejected(t *testing.T) {
	b := NewVendorBill(id.New())

	err := b.Open()
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestVoid_BlockedByPayments(t *testing.T) {
	b := openBill(t)
	require.NoError(t, b.ApplyPayment(types.MustMoney("10")))

	err := b.Void()
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeBusinessRule))
}

func TestVoid_UnpaidBill(t *testing.T) {
	b := openBill(t)

	require.NoError(t, b.Void())
	assert.Equal(t, StatusVoid, b.Status)
}
