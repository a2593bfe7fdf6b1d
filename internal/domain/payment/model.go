// Package payment provides customer payments and their allocation to
// invoices. A payment's amount is split between allocated and
// unallocated parts; allocations link slices of the amount to specific
// invoices and always keep allocated + unallocated = amount.
package payment

import (
	"context"
	"time"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

// Method defines how the payment was received.
type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodCard         Method = "card"
	MethodCheck        Method = "check"
)

// Payment represents money received from a customer.
type Payment struct {
	entity.Document

	CustomerID id.ID `db:"customer_id" json:"customerId"`

	Method Method `db:"method" json:"method"`

	// Reference is the bank/check reference
	Reference *string `db:"reference" json:"reference,omitempty"`

	Amount            types.Money `db:"amount" json:"amount"`
	AllocatedAmount   types.Money `db:"allocated_amount" json:"allocatedAmount"`
	UnallocatedAmount types.Money `db:"unallocated_amount" json:"unallocatedAmount"`

	Allocations []Allocation `db:"-" json:"allocations"`
}

// Allocation links part of a payment to one invoice.
type Allocation struct {
	ID id.ID `db:"id" json:"id"`

	PaymentID id.ID `db:"payment_id" json:"paymentId"`
	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`

	Amount types.Money `db:"amount" json:"amount"`

	AllocatedAt time.Time `db:"allocated_at" json:"allocatedAt"`
}

// NewPayment creates a payment with the full amount unallocated.
func NewPayment(customerID id.ID, amount types.Money, method Method) *Payment {
	return &Payment{
		Document:          entity.NewDocument(),
		CustomerID:        customerID,
		Method:            method,
		Amount:            amount,
		AllocatedAmount:   types.Zero(),
		UnallocatedAmount: amount,
		Allocations:       make([]Allocation, 0),
	}
}

// Allocate moves amount from the unallocated to the allocated part.
func (p *Payment) Allocate(amount types.Money) error {
	if !amount.IsPositive() {
		return apperror.NewValidation("allocation amount must be positive").
			WithDetail("field", "amount")
	}
	if amount.GreaterThan(p.UnallocatedAmount) {
		return apperror.NewValidation("allocation exceeds unallocated amount").
			WithDetail("requested", amount.String()).
			WithDetail("unallocated", p.UnallocatedAmount.String())
	}

	p.AllocatedAmount = p.AllocatedAmount.Add(amount)
	p.UnallocatedAmount = p.UnallocatedAmount.Sub(amount)
	p.Touch()
	return nil
}

// Deallocate returns amount to the unallocated part.
func (p *Payment) Deallocate(amount types.Money) error {
	if !amount.IsPositive() {
		return apperror.NewValidation("deallocation amount must be positive").
			WithDetail("field", "amount")
	}
	if amount.GreaterThan(p.AllocatedAmount) {
		return apperror.NewValidation("deallocation exceeds allocated amount").
			WithDetail("requested", amount.String()).
			WithDetail("allocated", p.AllocatedAmount.String())
	}

	p.AllocatedAmount = p.AllocatedAmount.Sub(amount)
	p.UnallocatedAmount = p.UnallocatedAmount.Add(amount)
	p.Touch()
	return nil
}

// Validate implements entity.Validatable.
func (p *Payment) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if !p.Amount.IsPositive() {
		return apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount")
	}

	if !isValidMethod(p.Method) {
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "method").
			WithDetail("value", string(p.Method))
	}

	if !p.AllocatedAmount.Add(p.UnallocatedAmount).Equal(p.Amount) {
		return apperror.NewValidation("allocated and unallocated amounts must sum to the payment amount").
			WithDetail("amount", p.Amount.String()).
			WithDetail("allocated", p.AllocatedAmount.String()).
			WithDetail("unallocated", p.UnallocatedAmount.String())
	}

	return nil
}

func isValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCard, MethodCheck:
		return true
	}
	return false
}
