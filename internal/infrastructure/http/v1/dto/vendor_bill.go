package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/documents/vendorbill"
)

// VendorBillLineRequest is a line in create/update requests.
type VendorBillLineRequest struct {
	ProductID        *string         `json:"productId"`
	ExpenseAccountID *string         `json:"expenseAccountId"`
	Description      string          `json:"description"`
	Quantity         decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice        types.Money     `json:"unitPrice"`
	DiscountPercent  types.Money     `json:"discountPercent"`
	TaxPercent       types.Money     `json:"taxPercent"`
}

// CreateVendorBillRequest is the request body for creating a vendor bill.
type CreateVendorBillRequest struct {
	Number     string                  `json:"number"`
	VendorID   string                  `json:"vendorId" binding:"required"`
	BillNumber *string                 `json:"billNumber"`
	Date       *time.Time              `json:"date"`
	DueDate    time.Time               `json:"dueDate" binding:"required"`
	Memo       string                  `json:"memo"`
	Lines      []VendorBillLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateVendorBillRequest) ToEntity() *vendorbill.VendorBill {
	vendorID, _ := id.Parse(r.VendorID)

	doc := vendorbill.NewVendorBill(vendorID)
	doc.Number = r.Number
	doc.BillNumber = r.BillNumber
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.DueDate = r.DueDate
	doc.Memo = r.Memo

	for _, line := range r.Lines {
		doc.AddLine(parseOptionalID(line.ProductID), parseOptionalID(line.ExpenseAccountID),
			line.Description, line.Quantity, line.UnitPrice, line.DiscountPercent, line.TaxPercent)
	}

	return doc
}

// UpdateVendorBillRequest is the request body for updating a draft bill.
type UpdateVendorBillRequest struct {
	BillNumber *string                 `json:"billNumber"`
	Date       *time.Time              `json:"date"`
	DueDate    *time.Time              `json:"dueDate"`
	Memo       *string                 `json:"memo"`
	Lines      []VendorBillLineRequest `json:"lines"`
	Version    int                     `json:"version" binding:"required"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateVendorBillRequest) ApplyTo(doc *vendorbill.VendorBill) {
	if r.BillNumber != nil {
		doc.BillNumber = r.BillNumber
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.DueDate != nil {
		doc.DueDate = *r.DueDate
	}
	if r.Memo != nil {
		doc.Memo = *r.Memo
	}
	if r.Lines != nil {
		doc.Lines = nil
		for _, line := range r.Lines {
			doc.AddLine(parseOptionalID(line.ProductID), parseOptionalID(line.ExpenseAccountID),
				line.Description, line.Quantity, line.UnitPrice, line.DiscountPercent, line.TaxPercent)
		}
	}
	doc.Version = r.Version
}

// RecordBillPaymentRequest records an outgoing payment against a bill.
type RecordBillPaymentRequest struct {
	Amount types.Money `json:"amount" binding:"required"`
}
