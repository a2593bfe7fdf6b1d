// Package location provides the Location catalog.
// Locations are physical or logical stock-keeping places (warehouses,
// shops, consignment sites) referenced by stock levels and movements.
package location

import (
	"context"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/core/id"
)

// LocationType defines the type of location.
type LocationType string

const (
	TypeWarehouse LocationType = "warehouse"
	TypeShop      LocationType = "shop"
	TypeVirtual   LocationType = "virtual"
)

// Location represents a stock-keeping place.
type Location struct {
	entity.Catalog

	Type LocationType `db:"type" json:"type"`

	Address *string `db:"address" json:"address,omitempty"`

	// ManagerID is the responsible user
	ManagerID *id.ID `db:"manager_id" json:"managerId,omitempty"`

	// AllowNegative permits shipping below zero stock at this location
	AllowNegative bool `db:"allow_negative" json:"allowNegative"`

	// IsDefault marks the location pre-selected in documents
	IsDefault bool `db:"is_default" json:"isDefault"`
}

// NewLocation creates a new Location with required fields.
func NewLocation(code, name string, locType LocationType) *Location {
	return &Location{
		Catalog: entity.NewCatalog(code, name),
		Type:    locType,
	}
}

// Validate implements entity.Validatable interface.
func (l *Location) Validate(ctx context.Context) error {
	if err := l.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidLocationType(l.Type) {
		return apperror.NewValidation("invalid location type").
			WithDetail("field", "type").
			WithDetail("value", string(l.Type))
	}

	return nil
}

func isValidLocationType(t LocationType) bool {
	switch t {
	case TypeWarehouse, TypeShop, TypeVirtual:
		return true
	}
	return false
}
