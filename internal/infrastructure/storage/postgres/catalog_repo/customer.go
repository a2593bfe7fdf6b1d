package catalog_repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/catalogs/customer"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
	txManager *postgres.TxManager
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*customer.Customer](
			txManager,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
		txManager: txManager,
	}
}

// FindByEmail retrieves customer by email.
func (r *CustomerRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", email)
		}
		return nil, err
	}
	return c, nil
}

// OutstandingBalance sums balance_due across unpaid invoices.
func (r *CustomerRepo) OutstandingBalance(ctx context.Context, customerID id.ID, asOf time.Time) (types.Money, error) {
	q := r.Builder().
		Select("COALESCE(SUM(balance_due), 0)").
		From("doc_invoices").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.NotEq{"status": []string{"draft", "void"}}).
		Where(squirrel.LtOrEq{"date": asOf})

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), err
	}

	var balance types.Money
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&balance); err != nil {
		return types.Zero(), err
	}
	return balance, nil
}
