package entity

import (
	"context"
	"time"

	"ledgerhouse/internal/core/apperror"
)

// Document is the base type for business transactions.
// Examples: Invoice, VendorBill, PurchaseOrder, Payment.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type+period)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Posted indicates if the document has been posted to the general ledger
	Posted bool `db:"posted" json:"posted"`

	// Memo is an optional user comment
	Memo string `db:"memo" json:"memo,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// MarkPosted sets the posted flag.
func (d *Document) MarkPosted() {
	d.Posted = true
	d.Touch()
}

// MarkUnposted clears the posted flag.
func (d *Document) MarkUnposted() {
	d.Posted = false
	d.Touch()
}
