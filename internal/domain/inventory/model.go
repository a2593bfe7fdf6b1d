// Package inventory provides per-location stock tracking.
// Stock levels are mutated only through the operations of this package;
// every mutation writes an immutable movement record in the same
// transaction.
package inventory

import (
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

// MovementType classifies a stock movement.
type MovementType string

const (
	MovementReceipt     MovementType = "receipt"
	MovementShipment    MovementType = "shipment"
	MovementTransferIn  MovementType = "transfer_in"
	MovementTransferOut MovementType = "transfer_out"
	MovementAdjustment  MovementType = "adjustment"
	MovementReturn      MovementType = "return"
)

// StockLevel is the current quantity on hand for one product at one
// location.
type StockLevel struct {
	ProductID  id.ID          `db:"product_id" json:"productId"`
	LocationID id.ID          `db:"location_id" json:"locationId"`
	Quantity   types.Quantity `db:"quantity" json:"quantity"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

// StockMovement is the write-once audit record of a stock mutation.
// Quantity is signed: positive for inflows, negative for outflows;
// adjustments carry the delta between the old and new level.
type StockMovement struct {
	ID id.ID `db:"id" json:"id"`

	Type MovementType `db:"type" json:"type"`

	ProductID  id.ID `db:"product_id" json:"productId"`
	LocationID id.ID `db:"location_id" json:"locationId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// TransferGroupID links the two sides of a transfer
	TransferGroupID *id.ID `db:"transfer_group_id" json:"transferGroupId,omitempty"`

	// Reference is the originating document number, if any
	Reference string `db:"reference" json:"reference,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	CreatedBy *id.ID    `db:"created_by" json:"createdBy,omitempty"`
}

// newMovement builds a movement record with a fresh UUIDv7.
func newMovement(mvType MovementType, productID, locationID id.ID, quantity types.Quantity, reference, notes string) StockMovement {
	return StockMovement{
		ID:         id.New(),
		Type:       mvType,
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   quantity,
		Reference:  reference,
		Notes:      notes,
		CreatedAt:  time.Now().UTC(),
	}
}

// IsInflow reports whether the movement increases stock.
func (m *StockMovement) IsInflow() bool {
	return m.Quantity.IsPositive()
}
