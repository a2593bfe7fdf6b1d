// Package purchaseorder provides the PurchaseOrder document.
// A purchase order commits to buying goods from a vendor; receiving
// against it moves stock into a location and tracks per-line received
// quantities until the order is fully received.
package purchaseorder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

// Status defines the purchase order lifecycle state.
type Status string

const (
	StatusDraft             Status = "draft"
	StatusSent              Status = "sent"
	StatusPartiallyReceived Status = "partially_received"
	StatusReceived          Status = "received"
	StatusCancelled         Status = "cancelled"
)

// PurchaseOrder represents a purchase order.
type PurchaseOrder struct {
	entity.Document

	VendorID id.ID `db:"vendor_id" json:"vendorId"`

	// LocationID is the default receiving location
	LocationID id.ID `db:"location_id" json:"locationId"`

	Status Status `db:"status" json:"status"`

	// ExpectedDate is the promised delivery date
	ExpectedDate *time.Time `db:"expected_date" json:"expectedDate,omitempty"`

	Subtotal       types.Money `db:"subtotal" json:"subtotal"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	TaxAmount      types.Money `db:"tax_amount" json:"taxAmount"`
	TotalAmount    types.Money `db:"total_amount" json:"totalAmount"`

	Lines []Line `db:"-" json:"lines"`
}

// Line represents one purchase order line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	Description string `db:"description" json:"description"`

	Quantity decimal.Decimal `db:"quantity" json:"quantity"`

	// ReceivedQuantity accumulates across receipts, never exceeds Quantity
	ReceivedQuantity decimal.Decimal `db:"received_quantity" json:"receivedQuantity"`

	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	DiscountPercent types.Money `db:"discount_percent" json:"discountPercent"`
	TaxPercent      types.Money `db:"tax_percent" json:"taxPercent"`

	Amount         types.Money `db:"amount" json:"amount"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	TaxAmount      types.Money `db:"tax_amount" json:"taxAmount"`
	TotalAmount    types.Money `db:"total_amount" json:"totalAmount"`
}

// Remaining returns the quantity still to be received.
func (l *Line) Remaining() decimal.Decimal {
	return l.Quantity.Sub(l.ReceivedQuantity)
}

// NewPurchaseOrder creates a new draft purchase order.
func NewPurchaseOrder(vendorID, locationID id.ID) *PurchaseOrder {
	po := &PurchaseOrder{
		Document:   entity.NewDocument(),
		VendorID:   vendorID,
		LocationID: locationID,
		Status:     StatusDraft,
		Lines:      make([]Line, 0),
	}
	po.Recalculate()
	return po
}

// AddLine appends a line and recalculates totals.
func (po *PurchaseOrder) AddLine(productID id.ID, description string, quantity decimal.Decimal, unitPrice, discountPercent, taxPercent types.Money) {
	line := Line{
		LineID:          id.New(),
		LineNo:          len(po.Lines) + 1,
		ProductID:       productID,
		Description:     description,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		TaxPercent:      taxPercent,
	}
	po.Lines = append(po.Lines, line)
	po.Recalculate()
}

// Recalculate derives line amounts and header totals.
func (po *PurchaseOrder) Recalculate() {
	subtotal := types.Zero()
	discount := types.Zero()
	tax := types.Zero()

	for i := range po.Lines {
		l := &po.Lines[i]
		l.Amount = types.RoundMoney(l.Quantity.Mul(l.UnitPrice))
		l.DiscountAmount = types.RoundMoney(l.Amount.Mul(l.DiscountPercent).Div(types.Hundred))
		l.TaxAmount = types.RoundMoney(l.Amount.Sub(l.DiscountAmount).Mul(l.TaxPercent).Div(types.Hundred))
		l.TotalAmount = l.Amount.Sub(l.DiscountAmount).Add(l.TaxAmount)

		subtotal = subtotal.Add(l.Amount)
		discount = discount.Add(l.DiscountAmount)
		tax = tax.Add(l.TaxAmount)
	}

	po.Subtotal = subtotal
	po.DiscountAmount = discount
	po.TaxAmount = tax
	po.TotalAmount = subtotal.Sub(discount).Add(tax)
}

// CanModify returns an error unless the order is still a draft.
func (po *PurchaseOrder) CanModify() error {
	if po.Status != StatusDraft {
		return apperror.NewInvalidStateTransition("purchase order", string(po.Status), "modify")
	}
	return nil
}

// Send transitions draft -> sent.
func (po *PurchaseOrder) Send() error {
	if po.Status != StatusDraft {
		return apperror.NewInvalidStateTransition("purchase order", string(po.Status), "send")
	}
	if len(po.Lines) == 0 {
		return apperror.NewValidation("cannot send a purchase order without lines").
			WithDetail("field", "lines")
	}
	po.Status = StatusSent
	po.Touch()
	return nil
}

// Cancel cancels an order with no receipts against it.
func (po *PurchaseOrder) Cancel() error {
	switch po.Status {
	case StatusDraft, StatusSent:
	default:
		return apperror.NewInvalidStateTransition("purchase order", string(po.Status), "cancel")
	}
	for _, l := range po.Lines {
		if l.ReceivedQuantity.IsPositive() {
			return apperror.NewBusinessRule(apperror.CodeBusinessRule, "cannot cancel an order with received goods").
				WithDetail("lineNo", l.LineNo)
		}
	}
	po.Status = StatusCancelled
	po.Touch()
	return nil
}

// RecordReceipt books received quantity against a line and refreshes the
// order status. Receiving more than the outstanding quantity fails.
func (po *PurchaseOrder) RecordReceipt(lineID id.ID, quantity decimal.Decimal) error {
	switch po.Status {
	case StatusSent, StatusPartiallyReceived:
	default:
		return apperror.NewInvalidStateTransition("purchase order", string(po.Status), "receive")
	}

	if !quantity.IsPositive() {
		return apperror.NewValidation("received quantity must be positive").
			WithDetail("field", "quantity")
	}

	var line *Line
	for i := range po.Lines {
		if po.Lines[i].LineID == lineID {
			line = &po.Lines[i]
			break
		}
	}
	if line == nil {
		return apperror.NewNotFound("purchase order line", lineID.String())
	}

	if quantity.GreaterThan(line.Remaining()) {
		return apperror.NewValidation("received quantity exceeds outstanding quantity").
			WithDetail("lineNo", line.LineNo).
			WithDetail("remaining", line.Remaining().String())
	}

	line.ReceivedQuantity = line.ReceivedQuantity.Add(quantity)
	po.refreshReceiptStatus()
	po.Touch()
	return nil
}

func (po *PurchaseOrder) refreshReceiptStatus() {
	fully := true
	any := false
	for _, l := range po.Lines {
		if l.ReceivedQuantity.IsPositive() {
			any = true
		}
		if l.Remaining().IsPositive() {
			fully = false
		}
	}
	switch {
	case fully:
		po.Status = StatusReceived
	case any:
		po.Status = StatusPartiallyReceived
	default:
		po.Status = StatusSent
	}
}

// Validate implements entity.Validatable.
func (po *PurchaseOrder) Validate(ctx context.Context) error {
	if err := po.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(po.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}
	if id.IsNil(po.LocationID) {
		return apperror.NewValidation("receiving location is required").
			WithDetail("field", "locationId")
	}

	for i, line := range po.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("lineNo", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("lineNo", i+1)
		}
		if line.ReceivedQuantity.IsNegative() || line.ReceivedQuantity.GreaterThan(line.Quantity) {
			return apperror.NewValidation("received quantity out of range").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
