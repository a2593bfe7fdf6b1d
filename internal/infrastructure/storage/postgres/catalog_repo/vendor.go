package catalog_repo

import (
	"ledgerhouse/internal/domain/catalogs/vendor"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const vendorTable = "cat_vendors"

// VendorRepo implements vendor.Repository.
type VendorRepo struct {
	*BaseCatalogRepo[*vendor.Vendor]
}

// NewVendorRepo creates a new vendor repository.
func NewVendorRepo(txManager *postgres.TxManager) *VendorRepo {
	return &VendorRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*vendor.Vendor](
			txManager,
			vendorTable,
			postgres.ExtractDBColumns[vendor.Vendor](),
			func() *vendor.Vendor { return &vendor.Vendor{} },
		),
	}
}
