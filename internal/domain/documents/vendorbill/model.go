// Package vendorbill provides the VendorBill document.
// A vendor bill records a payable owed to a vendor; posting it books the
// expense against accounts payable, and payments reduce the open balance.
package vendorbill

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

// Status defines the vendor bill lifecycle state.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusOpen          Status = "open"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
	StatusVoid          Status = "void"
)

// VendorBill represents a payable document.
type VendorBill struct {
	entity.Document

	VendorID id.ID `db:"vendor_id" json:"vendorId"`

	Status Status `db:"status" json:"status"`

	// BillNumber is the vendor's own document number
	BillNumber *string `db:"bill_number" json:"billNumber,omitempty"`

	DueDate time.Time `db:"due_date" json:"dueDate"`

	Subtotal       types.Money `db:"subtotal" json:"subtotal"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	TaxAmount      types.Money `db:"tax_amount" json:"taxAmount"`
	TotalAmount    types.Money `db:"total_amount" json:"totalAmount"`

	PaidAmount types.Money `db:"paid_amount" json:"paidAmount"`
	BalanceDue types.Money `db:"balance_due" json:"balanceDue"`

	Lines []Line `db:"-" json:"lines"`
}

// Line represents one vendor bill line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID *id.ID `db:"product_id" json:"productId,omitempty"`

	// ExpenseAccountID overrides the product's default expense account
	ExpenseAccountID *id.ID `db:"expense_account_id" json:"expenseAccountId,omitempty"`

	Description string `db:"description" json:"description"`

	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice types.Money     `db:"unit_price" json:"unitPrice"`

	DiscountPercent types.Money `db:"discount_percent" json:"discountPercent"`
	TaxPercent      types.Money `db:"tax_percent" json:"taxPercent"`

	Amount         types.Money `db:"amount" json:"amount"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	TaxAmount      types.Money `db:"tax_amount" json:"taxAmount"`
	TotalAmount    types.Money `db:"total_amount" json:"totalAmount"`
}

// NewVendorBill creates a new draft bill.
func NewVendorBill(vendorID id.ID) *VendorBill {
	b := &VendorBill{
		Document: entity.NewDocument(),
		VendorID: vendorID,
		Status:   StatusDraft,
		Lines:    make([]Line, 0),
	}
	b.DueDate = b.Date.AddDate(0, 0, 30)
	b.Recalculate()
	return b
}

// AddLine appends a line and recalculates totals.
func (b *VendorBill) AddLine(productID, expenseAccountID *id.ID, description string, quantity decimal.Decimal, unitPrice, discountPercent, taxPercent types.Money) {
	line := Line{
		LineID:           id.New(),
		LineNo:           len(b.Lines) + 1,
		ProductID:        productID,
		ExpenseAccountID: expenseAccountID,
		Description:      description,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		DiscountPercent:  discountPercent,
		TaxPercent:       taxPercent,
	}
	b.Lines = append(b.Lines, line)
	b.Recalculate()
}

// Recalculate derives line amounts and header totals.
func (b *VendorBill) Recalculate() {
	subtotal := types.Zero()
	discount := types.Zero()
	tax := types.Zero()

	for i := range b.Lines {
		l := &b.Lines[i]
		l.Amount = types.RoundMoney(l.Quantity.Mul(l.UnitPrice))
		l.DiscountAmount = types.RoundMoney(l.Amount.Mul(l.DiscountPercent).Div(types.Hundred))
		l.TaxAmount = types.RoundMoney(l.Amount.Sub(l.DiscountAmount).Mul(l.TaxPercent).Div(types.Hundred))
		l.TotalAmount = l.Amount.Sub(l.DiscountAmount).Add(l.TaxAmount)

		subtotal = subtotal.Add(l.Amount)
		discount = discount.Add(l.DiscountAmount)
		tax = tax.Add(l.TaxAmount)
	}

	b.Subtotal = subtotal
	b.DiscountAmount = discount
	b.TaxAmount = tax
	b.TotalAmount = subtotal.Sub(discount).Add(tax)
	b.BalanceDue = b.TotalAmount.Sub(b.PaidAmount)
}

// ApplyPayment adjusts the paid amount by delta and refreshes status.
func (b *VendorBill) ApplyPayment(delta types.Money) error {
	newPaid := b.PaidAmount.Add(delta)
	if newPaid.IsNegative() {
		return apperror.NewValidation("paid amount cannot go negative").
			WithDetail("billId", b.ID.String())
	}
	if newPaid.GreaterThan(b.TotalAmount) {
		return apperror.NewValidation("payment exceeds bill total").
			WithDetail("billId", b.ID.String()).
			WithDetail("total", b.TotalAmount.String())
	}

	b.PaidAmount = newPaid
	b.BalanceDue = b.TotalAmount.Sub(b.PaidAmount)

	if b.Status == StatusDraft || b.Status == StatusVoid {
		return nil
	}
	switch {
	case b.BalanceDue.IsZero() && b.TotalAmount.IsPositive():
		b.Status = StatusPaid
	case b.PaidAmount.IsPositive():
		b.Status = StatusPartiallyPaid
	default:
		b.Status = StatusOpen
	}
	return nil
}

// CanModify returns an error unless the bill is still a draft.
func (b *VendorBill) CanModify() error {
	if b.Status != StatusDraft {
		return apperror.NewInvalidStateTransition("vendor bill", string(b.Status), "modify")
	}
	return nil
}

// Open transitions draft -> open.
func (b *VendorBill) Open() error {
	if b.Status != StatusDraft {
		return apperror.NewInvalidStateTransition("vendor bill", string(b.Status), "open")
	}
	if len(b.Lines) == 0 {
		return apperror.NewValidation("cannot open a bill without lines").
			WithDetail("field", "lines")
	}
	b.Status = StatusOpen
	b.Touch()
	return nil
}

// Void cancels an unpaid bill.
func (b *VendorBill) Void() error {
	switch b.Status {
	case StatusDraft, StatusOpen:
	default:
		return apperror.NewInvalidStateTransition("vendor bill", string(b.Status), "void")
	}
	if b.PaidAmount.IsPositive() {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "cannot void a bill with payments applied").
			WithDetail("paidAmount", b.PaidAmount.String())
	}
	b.Status = StatusVoid
	b.Touch()
	return nil
}

// Validate implements entity.Validatable.
func (b *VendorBill) Validate(ctx context.Context) error {
	if err := b.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(b.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}

	if b.DueDate.Before(b.Date) {
		return apperror.NewValidation("due date cannot precede bill date").
			WithDetail("field", "dueDate")
	}

	for i, line := range b.Lines {
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
	}

	return nil
}
