// Package crm_repo provides PostgreSQL implementations for CRM
// repositories.
package crm_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain/crm"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const opportunitiesTable = "crm_opportunities"

// OpportunityRepo implements crm.OpportunityRepository.
type OpportunityRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

func NewOpportunityRepo(txManager *postgres.TxManager) *OpportunityRepo {
	return &OpportunityRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[crm.Opportunity](),
	}
}

var _ crm.OpportunityRepository = (*OpportunityRepo)(nil)

func (r *OpportunityRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *OpportunityRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func (r *OpportunityRepo) Create(ctx context.Context, o *crm.Opportunity) error {
	data := postgres.StructToMap(o)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(opportunitiesTable).
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert opportunity: %w", err)
	}

	return nil
}

func (r *OpportunityRepo) GetByID(ctx context.Context, opID id.ID) (*crm.Opportunity, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(opportunitiesTable).
		Where(squirrel.Eq{"id": opID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var o crm.Opportunity
	if err := pgxscan.Get(ctx, r.querier(ctx), &o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("opportunity", opID.String())
		}
		return nil, fmt.Errorf("get opportunity: %w", err)
	}

	return &o, nil
}

func (r *OpportunityRepo) Update(ctx context.Context, o *crm.Opportunity) error {
	data := postgres.StructToMap(o)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "created_at" || col == "created_by" {
			continue
		}
		if col == "version" || col == "updated_at" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(opportunitiesTable).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": o.ID}).
		Where(squirrel.Eq{"version": o.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("opportunity", o.ID)
	}

	return nil
}

func (r *OpportunityRepo) Delete(ctx context.Context, opID id.ID) error {
	sql, args, err := r.builder().
		Update(opportunitiesTable).
		Set("deletion_mark", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": opID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("opportunity", opID.String())
	}

	return nil
}

func (r *OpportunityRepo) List(ctx context.Context, filter crm.OpportunityFilter) ([]*crm.Opportunity, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(opportunitiesTable).
		Where(squirrel.Eq{"deletion_mark": false})

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Stage != nil {
		q = q.Where(squirrel.Eq{"stage": *filter.Stage})
	}

	q = q.OrderBy("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	opportunities := make([]*crm.Opportunity, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &opportunities, sql, args...); err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}

	return opportunities, nil
}
