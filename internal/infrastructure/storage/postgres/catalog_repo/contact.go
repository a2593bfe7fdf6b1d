package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/catalogs/contact"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const contactTable = "cat_contacts"

// ContactRepo implements contact.Repository.
type ContactRepo struct {
	*BaseCatalogRepo[*contact.Contact]
	txManager *postgres.TxManager
}

// NewContactRepo creates a new contact repository.
func NewContactRepo(txManager *postgres.TxManager) *ContactRepo {
	return &ContactRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*contact.Contact](
			txManager,
			contactTable,
			postgres.ExtractDBColumns[contact.Contact](),
			func() *contact.Contact { return &contact.Contact{} },
		),
		txManager: txManager,
	}
}

// ListByCustomer retrieves contacts of one customer.
func (r *ContactRepo) ListByCustomer(ctx context.Context, customerID id.ID) ([]*contact.Contact, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("is_primary DESC", "name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var contacts []*contact.Contact
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &contacts, sql, args...); err != nil {
		return nil, fmt.Errorf("list by customer: %w", err)
	}
	return contacts, nil
}

// ClearPrimary unsets the primary flag across the customer's contacts.
func (r *ContactRepo) ClearPrimary(ctx context.Context, customerID id.ID) error {
	q := r.Builder().
		Update(contactTable).
		Set("is_primary", false).
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"is_primary": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear primary: %w", err)
	}
	return nil
}
