// Package quote provides the sales Quote document.
// A quote is a priced offer to a customer; accepted quotes convert into
// draft invoices carrying over all lines.
package quote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/documents/invoice"
)

// Status defines the quote lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
	StatusConverted Status = "converted"
)

// Quote represents a sales quote.
type Quote struct {
	entity.Document

	CustomerID id.ID `db:"customer_id" json:"customerId"`

	Status Status `db:"status" json:"status"`

	// ValidUntil is the offer expiry date
	ValidUntil time.Time `db:"valid_until" json:"validUntil"`

	// InvoiceID is set once the quote is converted
	InvoiceID *id.ID `db:"invoice_id" json:"invoiceId,omitempty"`

	Subtotal       types.Money `db:"subtotal" json:"subtotal"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	TaxAmount      types.Money `db:"tax_amount" json:"taxAmount"`
	TotalAmount    types.Money `db:"total_amount" json:"totalAmount"`

	Lines []Line `db:"-" json:"lines"`
}

// Line represents one quote line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID *id.ID `db:"product_id" json:"productId,omitempty"`

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

// NewQuote creates a new draft quote valid for 30 days.
func NewQuote(customerID id.ID) *Quote {
	q := &Quote{
		Document:   entity.NewDocument(),
		CustomerID: customerID,
		Status:     StatusDraft,
		Lines:      make([]Line, 0),
	}
	q.ValidUntil = q.Date.AddDate(0, 0, 30)
	q.Recalculate()
	return q
}

// AddLine appends a line and recalculates totals.
func (q *Quote) AddLine(productID *id.ID, description string, quantity decimal.Decimal, unitPrice, discountPercent, taxPercent types.Money) {
	line := Line{
		LineID:          id.New(),
		LineNo:          len(q.Lines) + 1,
		ProductID:       productID,
		Description:     description,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		TaxPercent:      taxPercent,
	}
	q.Lines = append(q.Lines, line)
	q.Recalculate()
}

// Recalculate derives line amounts and header totals.
// Same convention as invoices: discount applies before tax.
func (q *Quote) Recalculate() {
	subtotal := types.Zero()
	discount := types.Zero()
	tax := types.Zero()

	for i := range q.Lines {
		l := &q.Lines[i]
		l.Amount = types.RoundMoney(l.Quantity.Mul(l.UnitPrice))
		l.DiscountAmount = types.RoundMoney(l.Amount.Mul(l.DiscountPercent).Div(types.Hundred))
		l.TaxAmount = types.RoundMoney(l.Amount.Sub(l.DiscountAmount).Mul(l.TaxPercent).Div(types.Hundred))
		l.TotalAmount = l.Amount.Sub(l.DiscountAmount).Add(l.TaxAmount)

		subtotal = subtotal.Add(l.Amount)
		discount = discount.Add(l.DiscountAmount)
		tax = tax.Add(l.TaxAmount)
	}

	q.Subtotal = subtotal
	q.DiscountAmount = discount
	q.TaxAmount = tax
	q.TotalAmount = subtotal.Sub(discount).Add(tax)
}

// CanModify returns an error unless the quote is still a draft.
func (q *Quote) CanModify() error {
	if q.Status != StatusDraft {
		return apperror.NewInvalidStateTransition("quote", string(q.Status), "modify")
	}
	return nil
}

// Send transitions draft -> sent.
func (q *Quote) Send() error {
	if q.Status != StatusDraft {
		return apperror.NewInvalidStateTransition("quote", string(q.Status), "send")
	}
	if len(q.Lines) == 0 {
		return apperror.NewValidation("cannot send a quote without lines").
			WithDetail("field", "lines")
	}
	q.Status = StatusSent
	q.Touch()
	return nil
}

// Accept transitions sent -> accepted.
func (q *Quote) Accept(asOf time.Time) error {
	if q.Status != StatusSent {
		return apperror.NewInvalidStateTransition("quote", string(q.Status), "accept")
	}
	if asOf.After(q.ValidUntil) {
		q.Status = StatusExpired
		return apperror.NewInvalidStateTransition("quote", string(StatusExpired), "accept")
	}
	q.Status = StatusAccepted
	q.Touch()
	return nil
}

// Reject transitions sent -> rejected.
func (q *Quote) Reject() error {
	if q.Status != StatusSent {
		return apperror.NewInvalidStateTransition("quote", string(q.Status), "reject")
	}
	q.Status = StatusRejected
	q.Touch()
	return nil
}

// ToInvoice builds a draft invoice from an accepted quote.
// The quote itself is marked converted by the service after the invoice
// is persisted.
func (q *Quote) ToInvoice() (*invoice.Invoice, error) {
	if q.Status != StatusAccepted {
		return nil, apperror.NewInvalidStateTransition("quote", string(q.Status), "convert")
	}

	inv := invoice.NewInvoice(q.CustomerID)
	inv.Memo = q.Memo
	for _, l := range q.Lines {
		inv.AddLine(l.ProductID, l.Description, l.Quantity, l.UnitPrice, l.DiscountPercent, l.TaxPercent)
	}
	return inv, nil
}

// MarkConverted links the quote to its invoice.
func (q *Quote) MarkConverted(invoiceID id.ID) {
	q.Status = StatusConverted
	q.InvoiceID = &invoiceID
	q.Touch()
}

// Validate implements entity.Validatable.
func (q *Quote) Validate(ctx context.Context) error {
	if err := q.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(q.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if q.ValidUntil.Before(q.Date) {
		return apperror.NewValidation("valid-until date cannot precede quote date").
			WithDetail("field", "validUntil")
	}

	for i, line := range q.Lines {
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
