package handlers

import (
	"ledgerhouse/internal/domain/catalogs/vendor"
	"ledgerhouse/internal/infrastructure/http/v1/dto"
)

// VendorHTTPHandler aliases the generic handler so signatures stay short.
type VendorHTTPHandler = CatalogHandler[
	*vendor.Vendor,
	dto.CreateVendorRequest,
	dto.UpdateVendorRequest,
]

// NewVendorHandler creates a new vendor handler.
func NewVendorHandler(base *BaseHandler, service *vendor.Service) *VendorHTTPHandler {
	config := CatalogHandlerConfig[
		*vendor.Vendor,
		dto.CreateVendorRequest,
		dto.UpdateVendorRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "vendor",
		MapCreateDTO: func(req dto.CreateVendorRequest) *vendor.Vendor {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateVendorRequest, existing *vendor.Vendor) *vendor.Vendor {
			req.ApplyTo(existing)
			return existing
		},
	}

	return NewCatalogHandler(base, config)
}
