package dto

import (
	"ledgerhouse/internal/domain/catalogs/location"
)

// CreateLocationRequest is the request body for creating a location.
type CreateLocationRequest struct {
	Code          string                `json:"code"`
	Name          string                `json:"name" binding:"required"`
	Type          location.LocationType `json:"type" binding:"required"`
	Address       *string               `json:"address"`
	ManagerID     *string               `json:"managerId"`
	AllowNegative bool                  `json:"allowNegative"`
	IsDefault     bool                  `json:"isDefault"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateLocationRequest) ToEntity() *location.Location {
	l := location.NewLocation(r.Code, r.Name, r.Type)
	l.Address = r.Address
	l.ManagerID = parseOptionalID(r.ManagerID)
	l.AllowNegative = r.AllowNegative
	l.IsDefault = r.IsDefault
	return l
}

// UpdateLocationRequest is the request body for updating a location.
type UpdateLocationRequest struct {
	Code          string                `json:"code"`
	Name          string                `json:"name" binding:"required"`
	Type          location.LocationType `json:"type" binding:"required"`
	Address       *string               `json:"address"`
	ManagerID     *string               `json:"managerId"`
	AllowNegative bool                  `json:"allowNegative"`
	IsDefault     bool                  `json:"isDefault"`
	Version       int                   `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to an existing entity.
func (r *UpdateLocationRequest) ApplyTo(l *location.Location) {
	l.Code = r.Code
	l.Name = r.Name
	l.Type = r.Type
	l.Address = r.Address
	l.ManagerID = parseOptionalID(r.ManagerID)
	l.AllowNegative = r.AllowNegative
	l.IsDefault = r.IsDefault
	l.Version = r.Version
}
