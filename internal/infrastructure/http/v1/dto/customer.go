package dto

import (
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/catalogs/customer"
)

// --- Request DTOs ---

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Code            string                `json:"code"`
	Name            string                `json:"name" binding:"required"`
	CompanyName     *string               `json:"companyName"`
	Email           *string               `json:"email"`
	Phone           *string               `json:"phone"`
	BillingAddress  *string               `json:"billingAddress"`
	ShippingAddress *string               `json:"shippingAddress"`
	PaymentTerms    customer.PaymentTerms `json:"paymentTerms"`
	CreditLimit     types.Money           `json:"creditLimit"`
	TaxID           *string               `json:"taxId"`
	Notes           *string               `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Code, r.Name)
	c.CompanyName = r.CompanyName
	c.Email = r.Email
	c.Phone = r.Phone
	c.BillingAddress = r.BillingAddress
	c.ShippingAddress = r.ShippingAddress
	if r.PaymentTerms != "" {
		c.PaymentTerms = r.PaymentTerms
	}
	c.CreditLimit = r.CreditLimit
	c.TaxID = r.TaxID
	c.Notes = r.Notes
	return c
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Code            string                `json:"code"`
	Name            string                `json:"name" binding:"required"`
	CompanyName     *string               `json:"companyName"`
	Email           *string               `json:"email"`
	Phone           *string               `json:"phone"`
	BillingAddress  *string               `json:"billingAddress"`
	ShippingAddress *string               `json:"shippingAddress"`
	PaymentTerms    customer.PaymentTerms `json:"paymentTerms"`
	CreditLimit     types.Money           `json:"creditLimit"`
	TaxID           *string               `json:"taxId"`
	Notes           *string               `json:"notes"`
	Version         int                   `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to an existing entity.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	c.Code = r.Code
	c.Name = r.Name
	c.CompanyName = r.CompanyName
	c.Email = r.Email
	c.Phone = r.Phone
	c.BillingAddress = r.BillingAddress
	c.ShippingAddress = r.ShippingAddress
	if r.PaymentTerms != "" {
		c.PaymentTerms = r.PaymentTerms
	}
	c.CreditLimit = r.CreditLimit
	c.TaxID = r.TaxID
	c.Notes = r.Notes
	c.Version = r.Version
}

// CustomerBalanceResponse is the outstanding balance of a customer.
type CustomerBalanceResponse struct {
	CustomerID string      `json:"customerId"`
	Balance    types.Money `json:"balance"`
}
