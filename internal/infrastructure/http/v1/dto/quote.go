package dto

import (
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/documents/quote"
)

// CreateQuoteRequest is the request body for creating a quote.
type CreateQuoteRequest struct {
	Number     string                `json:"number"`
	CustomerID string                `json:"customerId" binding:"required"`
	Date       *time.Time            `json:"date"`
	ValidUntil time.Time             `json:"validUntil" binding:"required"`
	Memo       string                `json:"memo"`
	Lines      []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateQuoteRequest) ToEntity() *quote.Quote {
	customerID, _ := id.Parse(r.CustomerID)

	doc := quote.NewQuote(customerID)
	doc.Number = r.Number
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.ValidUntil = r.ValidUntil
	doc.Memo = r.Memo

	for _, line := range r.Lines {
		doc.AddLine(parseOptionalID(line.ProductID), line.Description,
			line.Quantity, line.UnitPrice, line.DiscountPercent, line.TaxPercent)
	}

	return doc
}

// UpdateQuoteRequest is the request body for updating a draft quote.
type UpdateQuoteRequest struct {
	Date       *time.Time            `json:"date"`
	ValidUntil *time.Time            `json:"validUntil"`
	Memo       *string               `json:"memo"`
	Lines      []DocumentLineRequest `json:"lines"`
	Version    int                   `json:"version" binding:"required"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateQuoteRequest) ApplyTo(doc *quote.Quote) {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.ValidUntil != nil {
		doc.ValidUntil = *r.ValidUntil
	}
	if r.Memo != nil {
		doc.Memo = *r.Memo
	}
	if r.Lines != nil {
		doc.Lines = nil
		for _, line := range r.Lines {
			doc.AddLine(parseOptionalID(line.ProductID), line.Description,
				line.Quantity, line.UnitPrice, line.DiscountPercent, line.TaxPercent)
		}
	}
	doc.Version = r.Version
}
