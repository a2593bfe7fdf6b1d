// Package invoice provides the sales Invoice document.
// An invoice bills a customer for goods or services; its line items
// drive recalculation of header totals, and payment allocations drive
// the paid amount and status.
package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

// Status defines the invoice lifecycle state.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusSent          Status = "sent"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
	StatusVoid          Status = "void"
)

// Invoice represents a sales invoice.
type Invoice struct {
	entity.Document

	CustomerID id.ID `db:"customer_id" json:"customerId"`

	Status Status `db:"status" json:"status"`

	// DueDate is derived from the customer's payment terms at creation
	DueDate time.Time `db:"due_date" json:"dueDate"`

	// Reference is a free-form external reference (PO number, contract)
	Reference *string `db:"reference" json:"reference,omitempty"`

	// Totals (derived from lines, never entered directly)
	Subtotal       types.Money `db:"subtotal" json:"subtotal"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	TaxAmount      types.Money `db:"tax_amount" json:"taxAmount"`
	TotalAmount    types.Money `db:"total_amount" json:"totalAmount"`

	// PaidAmount is maintained by payment allocation
	PaidAmount types.Money `db:"paid_amount" json:"paidAmount"`
	BalanceDue types.Money `db:"balance_due" json:"balanceDue"`

	// Table part: invoice lines
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one invoice line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// ProductID is optional; free-text lines carry only a description
	ProductID *id.ID `db:"product_id" json:"productId,omitempty"`

	Description string `db:"description" json:"description"`

	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice types.Money     `db:"unit_price" json:"unitPrice"`

	// DiscountPercent and TaxPercent are rates in 0..100
	DiscountPercent types.Money `db:"discount_percent" json:"discountPercent"`
	TaxPercent      types.Money `db:"tax_percent" json:"taxPercent"`

	// Derived amounts
	Amount         types.Money `db:"amount" json:"amount"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	TaxAmount      types.Money `db:"tax_amount" json:"taxAmount"`
	TotalAmount    types.Money `db:"total_amount" json:"totalAmount"`
}

// NewInvoice creates a new draft invoice.
func NewInvoice(customerID id.ID) *Invoice {
	inv := &Invoice{
		Document:   entity.NewDocument(),
		CustomerID: customerID,
		Status:     StatusDraft,
		DueDate:    time.Now().UTC(),
		Lines:      make([]Line, 0),
	}
	inv.Recalculate()
	return inv
}

// AddLine appends a line and recalculates totals.
func (inv *Invoice) AddLine(productID *id.ID, description string, quantity decimal.Decimal, unitPrice, discountPercent, taxPercent types.Money) {
	line := Line{
		LineID:          id.New(),
		LineNo:          len(inv.Lines) + 1,
		ProductID:       productID,
		Description:     description,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		TaxPercent:      taxPercent,
	}
	inv.Lines = append(inv.Lines, line)
	inv.Recalculate()
}

// RemoveLine deletes the line with the given id and recalculates.
func (inv *Invoice) RemoveLine(lineID id.ID) {
	kept := inv.Lines[:0]
	for _, l := range inv.Lines {
		if l.LineID != lineID {
			kept = append(kept, l)
		}
	}
	inv.Lines = kept
	for i := range inv.Lines {
		inv.Lines[i].LineNo = i + 1
	}
	inv.Recalculate()
}

// recalcLine derives per-line amounts:
//
//	amount   = quantity * unitPrice
//	discount = amount * discountPercent / 100
//	tax      = (amount - discount) * taxPercent / 100
//	total    = amount - discount + tax
func recalcLine(l *Line) {
	l.Amount = types.RoundMoney(l.Quantity.Mul(l.UnitPrice))
	l.DiscountAmount = types.RoundMoney(l.Amount.Mul(l.DiscountPercent).Div(types.Hundred))
	taxable := l.Amount.Sub(l.DiscountAmount)
	l.TaxAmount = types.RoundMoney(taxable.Mul(l.TaxPercent).Div(types.Hundred))
	l.TotalAmount = l.Amount.Sub(l.DiscountAmount).Add(l.TaxAmount)
}

// Recalculate derives line amounts and header totals from the lines.
// Header: subtotal = sum of line amounts before discount and tax,
// total = subtotal - discount + tax, balance = total - paid.
func (inv *Invoice) Recalculate() {
	subtotal := types.Zero()
	discount := types.Zero()
	tax := types.Zero()

	for i := range inv.Lines {
		recalcLine(&inv.Lines[i])
		subtotal = subtotal.Add(inv.Lines[i].Amount)
		discount = discount.Add(inv.Lines[i].DiscountAmount)
		tax = tax.Add(inv.Lines[i].TaxAmount)
	}

	inv.Subtotal = subtotal
	inv.DiscountAmount = discount
	inv.TaxAmount = tax
	inv.TotalAmount = subtotal.Sub(discount).Add(tax)
	inv.BalanceDue = inv.TotalAmount.Sub(inv.PaidAmount)
}

// ApplyPayment adjusts the paid amount by delta (negative on
// deallocation) and refreshes balance and status.
func (inv *Invoice) ApplyPayment(delta types.Money) error {
	newPaid := inv.PaidAmount.Add(delta)
	if newPaid.IsNegative() {
		return apperror.NewValidation("paid amount cannot go negative").
			WithDetail("invoiceId", inv.ID.String())
	}
	if newPaid.GreaterThan(inv.TotalAmount) {
		return apperror.NewValidation("payment exceeds invoice total").
			WithDetail("invoiceId", inv.ID.String()).
			WithDetail("total", inv.TotalAmount.String())
	}

	inv.PaidAmount = newPaid
	inv.BalanceDue = inv.TotalAmount.Sub(inv.PaidAmount)
	inv.refreshPaymentStatus()
	return nil
}

func (inv *Invoice) refreshPaymentStatus() {
	if inv.Status == StatusDraft || inv.Status == StatusVoid {
		return
	}
	switch {
	case inv.BalanceDue.IsZero() && inv.TotalAmount.IsPositive():
		inv.Status = StatusPaid
	case inv.PaidAmount.IsPositive():
		inv.Status = StatusPartiallyPaid
	default:
		inv.Status = StatusSent
	}
}

// CanModify returns an error unless the invoice is still a draft.
func (inv *Invoice) CanModify() error {
	if inv.Status != StatusDraft {
		return apperror.NewInvalidStateTransition("invoice", string(inv.Status), "modify")
	}
	return nil
}

// Send transitions draft -> sent.
func (inv *Invoice) Send() error {
	if inv.Status != StatusDraft {
		return apperror.NewInvalidStateTransition("invoice", string(inv.Status), "send")
	}
	if len(inv.Lines) == 0 {
		return apperror.NewValidation("cannot send an invoice without lines").
			WithDetail("field", "lines")
	}
	inv.Status = StatusSent
	inv.Touch()
	return nil
}

// Void cancels the invoice. Only unpaid invoices can be voided.
func (inv *Invoice) Void() error {
	switch inv.Status {
	case StatusDraft, StatusSent:
	default:
		return apperror.NewInvalidStateTransition("invoice", string(inv.Status), "void")
	}
	if inv.PaidAmount.IsPositive() {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "cannot void an invoice with payments applied").
			WithDetail("paidAmount", inv.PaidAmount.String())
	}
	inv.Status = StatusVoid
	inv.Touch()
	return nil
}

// IsOverdue reports whether the invoice carries an open balance past its
// due date as of the given time.
func (inv *Invoice) IsOverdue(asOf time.Time) bool {
	if inv.Status == StatusVoid || inv.Status == StatusDraft {
		return false
	}
	return inv.BalanceDue.IsPositive() && inv.DueDate.Before(asOf)
}

// DaysOverdue returns whole days past due as of the given time (0 if not overdue).
func (inv *Invoice) DaysOverdue(asOf time.Time) int {
	if !inv.IsOverdue(asOf) {
		return 0
	}
	return int(asOf.Sub(inv.DueDate).Hours() / 24)
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(inv.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if inv.DueDate.Before(inv.Date) {
		return apperror.NewValidation("due date cannot precede invoice date").
			WithDetail("field", "dueDate")
	}

	return validateLines(inv.Lines)
}

func validateLines(lines []Line) error {
	for i, line := range lines {
		if line.Description == "" && line.ProductID == nil {
			return apperror.NewValidation("line needs a product or description").
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
		if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(types.Hundred) {
			return apperror.NewValidation("discount percent must be between 0 and 100").
				WithDetail("lineNo", i+1)
		}
		if line.TaxPercent.IsNegative() || line.TaxPercent.GreaterThan(types.Hundred) {
			return apperror.NewValidation("tax percent must be between 0 and 100").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}
