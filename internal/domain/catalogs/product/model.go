// Package product provides the Product catalog.
// Products are sellable goods and services; goods can be stock-tracked
// per location, services bypass inventory entirely.
package product

import (
	"context"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

// ProductType defines the type of item.
type ProductType string

const (
	TypeGoods   ProductType = "goods"
	TypeService ProductType = "service"
)

// Product represents a sellable good or service.
type Product struct {
	entity.Catalog

	// Type defines item category
	Type ProductType `db:"type" json:"type"`

	// SKU is the stock keeping unit
	SKU *string `db:"sku" json:"sku,omitempty"`

	// Unit is the unit of measure (pcs, kg, hour, ...)
	Unit string `db:"unit" json:"unit"`

	// UnitPrice is the default selling price per unit
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// CostPrice is the default purchase cost per unit
	CostPrice types.Money `db:"cost_price" json:"costPrice"`

	// TaxRate is the default sales tax percentage (0..100)
	TaxRate types.Money `db:"tax_rate" json:"taxRate"`

	// IncomeAccountID is the revenue account credited on sale
	IncomeAccountID *id.ID `db:"income_account_id" json:"incomeAccountId,omitempty"`

	// ExpenseAccountID is the expense account debited on purchase
	ExpenseAccountID *id.ID `db:"expense_account_id" json:"expenseAccountId,omitempty"`

	// Tracked indicates whether stock levels are maintained for this product
	Tracked bool `db:"tracked" json:"tracked"`

	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string, productType ProductType) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(code, name),
		Type:      productType,
		Unit:      "pcs",
		UnitPrice: types.Zero(),
		CostPrice: types.Zero(),
		TaxRate:   types.Zero(),
		Tracked:   productType == TypeGoods,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidProductType(p.Type) {
		return apperror.NewValidation("invalid product type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}

	if p.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price cannot be negative").
			WithDetail("field", "costPrice")
	}

	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(types.Hundred) {
		return apperror.NewValidation("tax rate must be between 0 and 100").
			WithDetail("field", "taxRate")
	}

	// Services never hold stock
	if p.Type == TypeService && p.Tracked {
		return apperror.NewValidation("services cannot be stock-tracked").
			WithDetail("field", "tracked")
	}

	return nil
}

func isValidProductType(t ProductType) bool {
	switch t {
	case TypeGoods, TypeService:
		return true
	}
	return false
}
