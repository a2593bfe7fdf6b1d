// Package customer provides the Customer catalog.
// Customers are the paying side of sales documents and the subject
// of CRM entities (contacts, opportunities, activities).
package customer

import (
	"context"
	"regexp"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/types"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// PaymentTerms defines the default due-date policy for customer invoices.
type PaymentTerms string

const (
	TermsDueOnReceipt PaymentTerms = "due_on_receipt"
	TermsNet15        PaymentTerms = "net_15"
	TermsNet30        PaymentTerms = "net_30"
	TermsNet60        PaymentTerms = "net_60"
)

// DueDays returns the number of days after the invoice date the invoice is due.
func (t PaymentTerms) DueDays() int {
	switch t {
	case TermsNet15:
		return 15
	case TermsNet30:
		return 30
	case TermsNet60:
		return 60
	default:
		return 0
	}
}

// Customer represents a paying business partner.
type Customer struct {
	entity.Catalog

	// CompanyName is the official registered name (optional for individuals)
	CompanyName *string `db:"company_name" json:"companyName,omitempty"`

	Email *string `db:"email" json:"email,omitempty"`
	Phone *string `db:"phone" json:"phone,omitempty"`

	BillingAddress  *string `db:"billing_address" json:"billingAddress,omitempty"`
	ShippingAddress *string `db:"shipping_address" json:"shippingAddress,omitempty"`

	// PaymentTerms is the default terms applied to new invoices
	PaymentTerms PaymentTerms `db:"payment_terms" json:"paymentTerms"`

	// CreditLimit caps the customer's outstanding balance (zero = no limit)
	CreditLimit types.Money `db:"credit_limit" json:"creditLimit"`

	// TaxID is the customer's tax registration number
	TaxID *string `db:"tax_id" json:"taxId,omitempty"`

	Notes *string `db:"notes" json:"notes,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog:      entity.NewCatalog(code, name),
		PaymentTerms: TermsNet30,
		CreditLimit:  types.Zero(),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidPaymentTerms(c.PaymentTerms) {
		return apperror.NewValidation("invalid payment terms").
			WithDetail("field", "paymentTerms").
			WithDetail("value", string(c.PaymentTerms))
	}

	if c.CreditLimit.IsNegative() {
		return apperror.NewValidation("credit limit cannot be negative").
			WithDetail("field", "creditLimit")
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

// HasCreditLimit returns true if a positive credit limit is configured.
func (c *Customer) HasCreditLimit() bool {
	return c.CreditLimit.IsPositive()
}

func isValidPaymentTerms(t PaymentTerms) bool {
	switch t {
	case TermsDueOnReceipt, TermsNet15, TermsNet30, TermsNet60:
		return true
	}
	return false
}
