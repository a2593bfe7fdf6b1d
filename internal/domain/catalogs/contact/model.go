// Package contact provides the Contact catalog.
// Contacts are individual people attached to a customer.
package contact

import (
	"context"
	"regexp"
	"strings"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/id"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Contact represents a person at a customer.
type Contact struct {
	entity.Catalog

	// CustomerID links the contact to its customer
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`

	Email *string `db:"email" json:"email,omitempty"`
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Position is the job title
	Position *string `db:"position" json:"position,omitempty"`

	// IsPrimary marks the main contact for the customer
	IsPrimary bool `db:"is_primary" json:"isPrimary"`

	Notes *string `db:"notes" json:"notes,omitempty"`
}

// NewContact creates a new Contact with required fields.
func NewContact(customerID id.ID, firstName, lastName string) *Contact {
	name := strings.TrimSpace(firstName + " " + lastName)
	return &Contact{
		Catalog:    entity.NewCatalog("", name),
		CustomerID: customerID,
		FirstName:  firstName,
		LastName:   lastName,
	}
}

// Validate implements entity.Validatable interface.
func (c *Contact) Validate(ctx context.Context) error {
	if id.IsNil(c.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if c.FirstName == "" && c.LastName == "" {
		return apperror.NewValidation("contact name is required").
			WithDetail("field", "firstName")
	}

	if c.Name == "" {
		c.Name = strings.TrimSpace(c.FirstName + " " + c.LastName)
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
