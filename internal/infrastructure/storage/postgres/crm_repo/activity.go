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

const activitiesTable = "crm_activities"

// ActivityRepo implements crm.ActivityRepository.
type ActivityRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

func NewActivityRepo(txManager *postgres.TxManager) *ActivityRepo {
	return &ActivityRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[crm.Activity](),
	}
}

var _ crm.ActivityRepository = (*ActivityRepo)(nil)

func (r *ActivityRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ActivityRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func (r *ActivityRepo) Create(ctx context.Context, a *crm.Activity) error {
	data := postgres.StructToMap(a)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(activitiesTable).
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	return nil
}

func (r *ActivityRepo) GetByID(ctx context.Context, activityID id.ID) (*crm.Activity, error) {
	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(activitiesTable).
		Where(squirrel.Eq{"id": activityID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var a crm.Activity
	if err := pgxscan.Get(ctx, r.querier(ctx), &a, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("activity", activityID.String())
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}

	return &a, nil
}

func (r *ActivityRepo) Update(ctx context.Context, a *crm.Activity) error {
	data := postgres.StructToMap(a)

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
		Update(activitiesTable).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Where(squirrel.Eq{"version": a.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("activity", a.ID)
	}

	return nil
}

func (r *ActivityRepo) Delete(ctx context.Context, activityID id.ID) error {
	sql, args, err := r.builder().
		Update(activitiesTable).
		Set("deletion_mark", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": activityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("activity", activityID.String())
	}

	return nil
}

func (r *ActivityRepo) List(ctx context.Context, filter crm.ActivityFilter) ([]*crm.Activity, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(activitiesTable).
		Where(squirrel.Eq{"deletion_mark": false})

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.OpportunityID != nil {
		q = q.Where(squirrel.Eq{"opportunity_id": *filter.OpportunityID})
	}
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.Done != nil {
		q = q.Where(squirrel.Eq{"done": *filter.Done})
	}
	if filter.OverdueAsOf != nil {
		q = q.Where(squirrel.Eq{"done": false}).
			Where(squirrel.Lt{"due_date": *filter.OverdueAsOf})
	}

	q = q.OrderBy("due_date")
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

	activities := make([]*crm.Activity, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &activities, sql, args...); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return activities, nil
}
