package dto

import (
	"ledgerhouse/internal/domain/catalogs/account"
)

// CreateAccountRequest is the request body for creating a ledger account.
type CreateAccountRequest struct {
	Code        string              `json:"code" binding:"required"`
	Name        string              `json:"name" binding:"required"`
	Type        account.AccountType `json:"type" binding:"required"`
	Description *string             `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateAccountRequest) ToEntity() *account.Account {
	a := account.NewAccount(r.Code, r.Name, r.Type)
	a.Description = r.Description
	return a
}

// UpdateAccountRequest is the request body for updating a ledger account.
type UpdateAccountRequest struct {
	Code        string              `json:"code" binding:"required"`
	Name        string              `json:"name" binding:"required"`
	Type        account.AccountType `json:"type" binding:"required"`
	Description *string             `json:"description"`
	Active      bool                `json:"active"`
	Version     int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to an existing entity.
func (r *UpdateAccountRequest) ApplyTo(a *account.Account) {
	a.Code = r.Code
	a.Name = r.Name
	a.Type = r.Type
	a.Description = r.Description
	a.Active = r.Active
	a.Version = r.Version
}
