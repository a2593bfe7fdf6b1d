package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/documents/purchaseorder"
)

// PurchaseOrderLineRequest is a line in create/update requests.
type PurchaseOrderLineRequest struct {
	ProductID       string          `json:"productId" binding:"required"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       types.Money     `json:"unitPrice"`
	DiscountPercent types.Money     `json:"discountPercent"`
	TaxPercent      types.Money     `json:"taxPercent"`
}

// CreatePurchaseOrderRequest is the request body for creating a purchase order.
type CreatePurchaseOrderRequest struct {
	Number       string                     `json:"number"`
	VendorID     string                     `json:"vendorId" binding:"required"`
	LocationID   string                     `json:"locationId" binding:"required"`
	Date         *time.Time                 `json:"date"`
	ExpectedDate *time.Time                 `json:"expectedDate"`
	Memo         string                     `json:"memo"`
	Lines        []PurchaseOrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreatePurchaseOrderRequest) ToEntity() *purchaseorder.PurchaseOrder {
	vendorID, _ := id.Parse(r.VendorID)
	locationID, _ := id.Parse(r.LocationID)

	doc := purchaseorder.NewPurchaseOrder(vendorID, locationID)
	doc.Number = r.Number
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.ExpectedDate = r.ExpectedDate
	doc.Memo = r.Memo

	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		doc.AddLine(productID, line.Description,
			line.Quantity, line.UnitPrice, line.DiscountPercent, line.TaxPercent)
	}

	return doc
}

// UpdatePurchaseOrderRequest is the request body for updating a draft order.
type UpdatePurchaseOrderRequest struct {
	Date         *time.Time                 `json:"date"`
	ExpectedDate *time.Time                 `json:"expectedDate"`
	Memo         *string                    `json:"memo"`
	Lines        []PurchaseOrderLineRequest `json:"lines"`
	Version      int                        `json:"version" binding:"required"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdatePurchaseOrderRequest) ApplyTo(doc *purchaseorder.PurchaseOrder) {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.ExpectedDate != nil {
		doc.ExpectedDate = r.ExpectedDate
	}
	if r.Memo != nil {
		doc.Memo = *r.Memo
	}
	if r.Lines != nil {
		doc.Lines = nil
		for _, line := range r.Lines {
			productID, _ := id.Parse(line.ProductID)
			doc.AddLine(productID, line.Description,
				line.Quantity, line.UnitPrice, line.DiscountPercent, line.TaxPercent)
		}
	}
	doc.Version = r.Version
}

// ReceiveLineRequest reports received quantity against one order line.
type ReceiveLineRequest struct {
	LineID   string          `json:"lineId" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ReceivePurchaseOrderRequest is the request body for recording a receipt.
type ReceivePurchaseOrderRequest struct {
	Lines []ReceiveLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToReceiptLines converts the request to domain receipt lines.
func (r *ReceivePurchaseOrderRequest) ToReceiptLines() []purchaseorder.ReceiptLine {
	lines := make([]purchaseorder.ReceiptLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lineID, _ := id.Parse(l.LineID)
		lines = append(lines, purchaseorder.ReceiptLine{
			LineID:   lineID,
			Quantity: types.NewQuantityFromDecimal(l.Quantity),
		})
	}
	return lines
}
