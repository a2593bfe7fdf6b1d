package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/domain/catalogs/account"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const accountTable = "cat_accounts"

// AccountRepo implements account.Repository.
type AccountRepo struct {
	*BaseCatalogRepo[*account.Account]
	txManager *postgres.TxManager
}

// NewAccountRepo creates a new account repository.
func NewAccountRepo(txManager *postgres.TxManager) *AccountRepo {
	return &AccountRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*account.Account](
			txManager,
			accountTable,
			postgres.ExtractDBColumns[account.Account](),
			func() *account.Account { return &account.Account{} },
		),
		txManager: txManager,
	}
}

// ListByType retrieves active accounts of the given type ordered by code.
func (r *AccountRepo) ListByType(ctx context.Context, accType account.AccountType) ([]*account.Account, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"type": accType}).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var accounts []*account.Account
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &accounts, sql, args...); err != nil {
		return nil, fmt.Errorf("list by type: %w", err)
	}
	return accounts, nil
}
