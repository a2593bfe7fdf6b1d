package dto

import (
	"ledgerhouse/internal/domain/catalogs/vendor"
)

// CreateVendorRequest is the request body for creating a vendor.
type CreateVendorRequest struct {
	Code             string  `json:"code"`
	Name             string  `json:"name" binding:"required"`
	CompanyName      *string `json:"companyName"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	TaxID            *string `json:"taxId"`
	PaymentTermsDays int     `json:"paymentTermsDays"`
	Notes            *string `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateVendorRequest) ToEntity() *vendor.Vendor {
	v := vendor.NewVendor(r.Code, r.Name)
	v.CompanyName = r.CompanyName
	v.Email = r.Email
	v.Phone = r.Phone
	v.Address = r.Address
	v.TaxID = r.TaxID
	if r.PaymentTermsDays > 0 {
		v.PaymentTermsDays = r.PaymentTermsDays
	}
	v.Notes = r.Notes
	return v
}

// UpdateVendorRequest is the request body for updating a vendor.
type UpdateVendorRequest struct {
	Code             string  `json:"code"`
	Name             string  `json:"name" binding:"required"`
	CompanyName      *string `json:"companyName"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	TaxID            *string `json:"taxId"`
	PaymentTermsDays int     `json:"paymentTermsDays"`
	Notes            *string `json:"notes"`
	Version          int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to an existing entity.
func (r *UpdateVendorRequest) ApplyTo(v *vendor.Vendor) {
	v.Code = r.Code
	v.Name = r.Name
	v.CompanyName = r.CompanyName
	v.Email = r.Email
	v.Phone = r.Phone
	v.Address = r.Address
	v.TaxID = r.TaxID
	if r.PaymentTermsDays > 0 {
		v.PaymentTermsDays = r.PaymentTermsDays
	}
	v.Notes = r.Notes
	v.Version = r.Version
}
