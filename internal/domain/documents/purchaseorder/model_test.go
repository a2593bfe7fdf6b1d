package purchaseorder

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

func sentOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	po := NewPurchaseOrder(id.New(), id.New())
	po.AddLine(id.New(), "Widget", qty(10), types.MustMoney("20"), types.Zero(), types.Zero())
	po.AddLine(id.New(), "Gadget", qty(5), types.MustMoney("40"), types.Zero(), types.Zero())
	require.NoError(t, po.Send())
	return po
}

func TestRecordReceipt_PartialThenFull(t *testing.T) {
	po := sentOrder(t)
	line := po.Lines[0]

	require.NoError(t, po.RecordReceipt(line.LineID, qty(4)))
	assert.Equal(t, StatusPartiallyReceived, po.Status)
	assert.True(t, po.Lines[0].ReceivedQuantity.Equal(qty(4)))
	assert.True(t, po.Lines[0].Remaining().Equal(qty(6)))

	require.NoError(t, po.RecordReceipt(line.LineID, qty(6)))
	require.NoError(t, po.RecordReceipt(po.Lines[1].LineID, qty(5)))
	assert.Equal(t, StatusReceived, po.Status)
}

func TestRecordReceipt_OverReceiptRejected(t *testing.T) {
	po := sentOrder(t)

	err := po.RecordReceipt(po.Lines[0].LineID, qty(11))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.True(t, po.Lines[0].ReceivedQuantity.IsZero())
	assert.Equal(t, StatusSent, po.Status)
}

func TestRecordReceipt_UnknownLine(t *testing.T) {
	po := sentOrder(t)

	err := po.RecordReceipt(id.New(), qty(1))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}

func TestRecordReceipt_DraftRejected(t *testing.T) {
	po := NewPurchaseOrder(id.New(), id.New())
	po.AddLine(id.New(), "Widget", qty(10), types.MustMoney("20"), types.Zero(), types.Zero())

	err := po.RecordReceipt(po.Lines[0].LineID, qty(1))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidStateTransition))
}

func TestCancel_BlockedByReceipts(t *testing.T) {
	po := sentOrder(t)
	require.NoError(t, po.RecordReceipt(po.Lines[0].LineID, qty(1)))

	err := po.Cancel()
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeBusinessRule))
}

func TestCancel_CleanOrder(t *testing.T) {
	po := sentOrder(t)

	require.NoError(t, po.Cancel())
	assert.Equal(t, StatusCancelled, po.Status)
}

func TestRecalculate_Totals(t *testing.T) {
	po := NewPurchaseOrder(id.New(), id.New())
	// 10 * 20 = 200, 5% discount = 10, tax 10% on 190 = 19
	po.AddLine(id.New(), "Widget", qty(10), types.MustMoney("20"), types.MustMoney("5"), types.MustMoney("10"))

	assert.True(t, po.Subtotal.Equal(types.MustMoney("200")))
	assert.True(t, po.DiscountAmount.Equal(types.MustMoney("10")))
	assert.True(t, po.TaxAmount.Equal(types.MustMoney("19")))
	assert.True(t, po.TotalAmount.Equal(types.MustMoney("209")))
}
