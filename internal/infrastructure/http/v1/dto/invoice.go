package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/documents/invoice"
)

// --- Request DTOs ---

// DocumentLineRequest is the shared line shape of sales documents.
type DocumentLineRequest struct {
	ProductID       *string         `json:"productId"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       types.Money     `json:"unitPrice"`
	DiscountPercent types.Money     `json:"discountPercent"`
	TaxPercent      types.Money     `json:"taxPercent"`
}

// CreateInvoiceRequest is the request body for creating an invoice.
type CreateInvoiceRequest struct {
	Number     string                `json:"number"`
	CustomerID string                `json:"customerId" binding:"required"`
	Date       *time.Time            `json:"date"`
	DueDate    time.Time             `json:"dueDate" binding:"required"`
	Reference  *string               `json:"reference"`
	Memo       string                `json:"memo"`
	Lines      []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateInvoiceRequest) ToEntity() *invoice.Invoice {
	customerID, _ := id.Parse(r.CustomerID)

	doc := invoice.NewInvoice(customerID)
	doc.Number = r.Number
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.DueDate = r.DueDate
	doc.Reference = r.Reference
	doc.Memo = r.Memo

	for _, line := range r.Lines {
		doc.AddLine(parseOptionalID(line.ProductID), line.Description,
			line.Quantity, line.UnitPrice, line.DiscountPercent, line.TaxPercent)
	}

	return doc
}

// UpdateInvoiceRequest is the request body for updating a draft invoice.
type UpdateInvoiceRequest struct {
	Date      *time.Time            `json:"date"`
	DueDate   *time.Time            `json:"dueDate"`
	Reference *string               `json:"reference"`
	Memo      *string               `json:"memo"`
	Lines     []DocumentLineRequest `json:"lines"`
	Version   int                   `json:"version" binding:"required"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateInvoiceRequest) ApplyTo(doc *invoice.Invoice) {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.DueDate != nil {
		doc.DueDate = *r.DueDate
	}
	if r.Reference != nil {
		doc.Reference = r.Reference
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
