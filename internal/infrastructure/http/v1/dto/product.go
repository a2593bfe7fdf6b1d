package dto

import (
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/catalogs/product"
)

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code             string              `json:"code"`
	Name             string              `json:"name" binding:"required"`
	Type             product.ProductType `json:"type" binding:"required"`
	SKU              *string             `json:"sku"`
	Unit             string              `json:"unit"`
	UnitPrice        types.Money         `json:"unitPrice"`
	CostPrice        types.Money         `json:"costPrice"`
	TaxRate          types.Money         `json:"taxRate"`
	IncomeAccountID  *string             `json:"incomeAccountId"`
	ExpenseAccountID *string             `json:"expenseAccountId"`
	Tracked          bool                `json:"tracked"`
	Description      *string             `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Type)
	p.SKU = r.SKU
	if r.Unit != "" {
		p.Unit = r.Unit
	}
	p.UnitPrice = r.UnitPrice
	p.CostPrice = r.CostPrice
	p.TaxRate = r.TaxRate
	p.IncomeAccountID = parseOptionalID(r.IncomeAccountID)
	p.ExpenseAccountID = parseOptionalID(r.ExpenseAccountID)
	p.Tracked = r.Tracked
	p.Description = r.Description
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code             string              `json:"code"`
	Name             string              `json:"name" binding:"required"`
	Type             product.ProductType `json:"type" binding:"required"`
	SKU              *string             `json:"sku"`
	Unit             string              `json:"unit"`
	UnitPrice        types.Money         `json:"unitPrice"`
	CostPrice        types.Money         `json:"costPrice"`
	TaxRate          types.Money         `json:"taxRate"`
	IncomeAccountID  *string             `json:"incomeAccountId"`
	ExpenseAccountID *string             `json:"expenseAccountId"`
	Tracked          bool                `json:"tracked"`
	Description      *string             `json:"description"`
	Version          int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to an existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.Type = r.Type
	p.SKU = r.SKU
	if r.Unit != "" {
		p.Unit = r.Unit
	}
	p.UnitPrice = r.UnitPrice
	p.CostPrice = r.CostPrice
	p.TaxRate = r.TaxRate
	p.IncomeAccountID = parseOptionalID(r.IncomeAccountID)
	p.ExpenseAccountID = parseOptionalID(r.ExpenseAccountID)
	p.Tracked = r.Tracked
	p.Description = r.Description
	p.Version = r.Version
}

// parseOptionalID parses an optional string form ID, dropping invalid values.
// Referential checks happen in the services, not here.
func parseOptionalID(s *string) *id.ID {
	if s == nil || *s == "" {
		return nil
	}
	parsed, err := id.Parse(*s)
	if err != nil {
		return nil
	}
	return &parsed
}
