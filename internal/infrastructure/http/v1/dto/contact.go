package dto

import (
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/catalogs/contact"
)

// CreateContactRequest is the request body for creating a contact.
type CreateContactRequest struct {
	Code       string  `json:"code"`
	CustomerID string  `json:"customerId" binding:"required"`
	FirstName  string  `json:"firstName" binding:"required"`
	LastName   string  `json:"lastName" binding:"required"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Position   *string `json:"position"`
	IsPrimary  bool    `json:"isPrimary"`
	Notes      *string `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateContactRequest) ToEntity() *contact.Contact {
	customerID, _ := id.Parse(r.CustomerID)

	c := contact.NewContact(customerID, r.FirstName, r.LastName)
	c.Code = r.Code
	c.Email = r.Email
	c.Phone = r.Phone
	c.Position = r.Position
	c.IsPrimary = r.IsPrimary
	c.Notes = r.Notes
	return c
}

// UpdateContactRequest is the request body for updating a contact.
type UpdateContactRequest struct {
	Code      string  `json:"code"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Position  *string `json:"position"`
	IsPrimary bool    `json:"isPrimary"`
	Notes     *string `json:"notes"`
	Version   int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to an existing entity.
// CustomerID is intentionally not updatable: contacts do not move
// between customers.
func (r *UpdateContactRequest) ApplyTo(c *contact.Contact) {
	c.Code = r.Code
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.Email = r.Email
	c.Phone = r.Phone
	c.Position = r.Position
	c.IsPrimary = r.IsPrimary
	c.Notes = r.Notes
	c.Version = r.Version
}
