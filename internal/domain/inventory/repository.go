// Package inventory provides the stock repository.
package inventory

import (
	"context"
	"time"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
)

// Repository defines operations for stock levels and movements.
type Repository interface {
	// Level operations

	// GetLevel returns current level for product+location (zero row if absent).
	GetLevel(ctx context.Context, productID, locationID id.ID) (StockLevel, error)

	// GetLevelForUpdate returns the level with a row lock, inserting a
	// zero row first if none exists.
	GetLevelForUpdate(ctx context.Context, productID, locationID id.ID) (StockLevel, error)

	// SetLevel writes the new quantity for product+location.
	SetLevel(ctx context.Context, productID, locationID id.ID, quantity types.Quantity) error

	// ListLevelsByProduct returns levels across all locations.
	ListLevelsByProduct(ctx context.Context, productID id.ID) ([]StockLevel, error)

	// ListLevelsByLocation returns non-zero levels at a location.
	ListLevelsByLocation(ctx context.Context, locationID id.ID) ([]StockLevel, error)

	// Movement operations

	// CreateMovements batch inserts movement records.
	CreateMovements(ctx context.Context, movements []StockMovement) error

	// ListMovements returns movement history, newest first.
	ListMovements(ctx context.Context, filter MovementFilter) ([]StockMovement, error)
}

// MovementFilter for filtering movement history.
type MovementFilter struct {
	ProductID  *id.ID
	LocationID *id.ID
	Type       *MovementType
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}
