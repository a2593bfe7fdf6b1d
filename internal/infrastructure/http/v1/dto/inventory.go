package dto

import (
	"github.com/shopspring/decimal"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/inventory"
)

// StockMovementRequest covers receive, ship and return operations.
type StockMovementRequest struct {
	ProductID  string          `json:"productId" binding:"required"`
	LocationID string          `json:"locationId" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
}

// ToParams converts request to domain movement parameters.
func (r *StockMovementRequest) ToParams() inventory.MovementParams {
	productID, _ := id.Parse(r.ProductID)
	locationID, _ := id.Parse(r.LocationID)
	return inventory.MovementParams{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   types.NewQuantityFromDecimal(r.Quantity),
		Reference:  r.Reference,
		Notes:      r.Notes,
	}
}

// StockTransferRequest moves stock between two locations.
type StockTransferRequest struct {
	ProductID      string          `json:"productId" binding:"required"`
	FromLocationID string          `json:"fromLocationId" binding:"required"`
	ToLocationID   string          `json:"toLocationId" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	Reference      string          `json:"reference"`
	Notes          string          `json:"notes"`
}

// ToParams converts request to domain transfer parameters.
func (r *StockTransferRequest) ToParams() inventory.TransferParams {
	productID, _ := id.Parse(r.ProductID)
	fromID, _ := id.Parse(r.FromLocationID)
	toID, _ := id.Parse(r.ToLocationID)
	return inventory.TransferParams{
		ProductID:      productID,
		FromLocationID: fromID,
		ToLocationID:   toID,
		Quantity:       types.NewQuantityFromDecimal(r.Quantity),
		Reference:      r.Reference,
		Notes:          r.Notes,
	}
}

// StockAdjustRequest sets the stock level to an absolute value.
type StockAdjustRequest struct {
	ProductID   string          `json:"productId" binding:"required"`
	LocationID  string          `json:"locationId" binding:"required"`
	NewQuantity decimal.Decimal `json:"newQuantity"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
}

// ToParams converts request to domain adjustment parameters.
func (r *StockAdjustRequest) ToParams() inventory.AdjustParams {
	productID, _ := id.Parse(r.ProductID)
	locationID, _ := id.Parse(r.LocationID)
	return inventory.AdjustParams{
		ProductID:   productID,
		LocationID:  locationID,
		NewQuantity: types.NewQuantityFromDecimal(r.NewQuantity),
		Reference:   r.Reference,
		Notes:       r.Notes,
	}
}

// ProductAvailabilityResponse is the total on-hand quantity of a product.
type ProductAvailabilityResponse struct {
	ProductID string         `json:"productId"`
	Available types.Quantity `json:"available"`
}
