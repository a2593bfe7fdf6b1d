package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/domain/catalogs/location"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const locationTable = "cat_locations"

// LocationRepo implements location.Repository.
type LocationRepo struct {
	*BaseCatalogRepo[*location.Location]
}

// NewLocationRepo creates a new location repository.
func NewLocationRepo(txManager *postgres.TxManager) *LocationRepo {
	return &LocationRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*location.Location](
			txManager,
			locationTable,
			postgres.ExtractDBColumns[location.Location](),
			func() *location.Location { return &location.Location{} },
		),
	}
}

// GetDefault retrieves the default location.
func (r *LocationRepo) GetDefault(ctx context.Context) (*location.Location, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"is_default": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	loc, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("location", "default")
		}
		return nil, err
	}
	return loc, nil
}
