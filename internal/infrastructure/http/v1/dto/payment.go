package dto

import (
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/payment"
)

// CreatePaymentRequest is the request body for recording a customer payment.
type CreatePaymentRequest struct {
	Number     string         `json:"number"`
	CustomerID string         `json:"customerId" binding:"required"`
	Date       *time.Time     `json:"date"`
	Amount     types.Money    `json:"amount" binding:"required"`
	Method     payment.Method `json:"method" binding:"required"`
	Reference  *string        `json:"reference"`
	Memo       string         `json:"memo"`
}

// ToEntity converts request to domain entity.
func (r *CreatePaymentRequest) ToEntity() *payment.Payment {
	customerID, _ := id.Parse(r.CustomerID)

	p := payment.NewPayment(customerID, r.Amount, r.Method)
	p.Number = r.Number
	if r.Date != nil {
		p.Date = *r.Date
	}
	p.Reference = r.Reference
	p.Memo = r.Memo
	return p
}

// AllocatePaymentRequest applies part of a payment to an invoice.
type AllocatePaymentRequest struct {
	InvoiceID string      `json:"invoiceId" binding:"required"`
	Amount    types.Money `json:"amount" binding:"required"`
}
