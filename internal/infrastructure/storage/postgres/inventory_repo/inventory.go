// Package inventory_repo provides the PostgreSQL stock repository.
package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/inventory"
	"ledgerhouse/internal/infrastructure/storage/postgres"
)

const (
	levelsTable    = "stock_levels"
	movementsTable = "stock_movements"
)

var (
	levelCols = []string{"product_id", "location_id", "quantity", "updated_at"}

	movementCols = []string{
		"id", "type", "product_id", "location_id", "quantity",
		"transfer_group_id", "reference", "notes", "created_at", "created_by",
	}
)

// InventoryRepo implements inventory.Repository.
type InventoryRepo struct {
	txManager *postgres.TxManager
}

func NewInventoryRepo(txManager *postgres.TxManager) *InventoryRepo {
	return &InventoryRepo{txManager: txManager}
}

var _ inventory.Repository = (*InventoryRepo)(nil)

func (r *InventoryRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *InventoryRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// GetLevel returns the current level, or a zero-quantity level when no
// row exists yet.
func (r *InventoryRepo) GetLevel(ctx context.Context, productID, locationID id.ID) (inventory.StockLevel, error) {
	var level inventory.StockLevel

	q := r.builder().
		Select(levelCols...).
		From(levelsTable).
		Where(squirrel.Eq{"product_id": productID, "location_id": locationID})

	sql, args, err := q.ToSql()
	if err != nil {
		return level, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &level, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return inventory.StockLevel{
				ProductID:  productID,
				LocationID: locationID,
				Quantity:   types.Quantity(0),
			}, nil
		}
		return level, fmt.Errorf("get stock level: %w", err)
	}

	return level, nil
}

// GetLevelForUpdate locks the level row, inserting a zero row first so
// there is always something to lock.
func (r *InventoryRepo) GetLevelForUpdate(ctx context.Context, productID, locationID id.ID) (inventory.StockLevel, error) {
	var level inventory.StockLevel
	querier := r.querier(ctx)

	insSQL, insArgs, err := r.builder().
		Insert(levelsTable).
		Columns("product_id", "location_id", "quantity", "updated_at").
		Values(productID, locationID, types.Quantity(0), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (product_id, location_id) DO NOTHING").
		ToSql()
	if err != nil {
		return level, fmt.Errorf("build insert: %w", err)
	}
	if _, err := querier.Exec(ctx, insSQL, insArgs...); err != nil {
		return level, fmt.Errorf("ensure stock level row: %w", err)
	}

	q := r.builder().
		Select(levelCols...).
		From(levelsTable).
		Where(squirrel.Eq{"product_id": productID, "location_id": locationID}).
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return level, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, querier, &level, sql, args...); err != nil {
		return level, fmt.Errorf("lock stock level: %w", err)
	}

	return level, nil
}

// SetLevel upserts the quantity for product+location.
func (r *InventoryRepo) SetLevel(ctx context.Context, productID, locationID id.ID, quantity types.Quantity) error {
	q := r.builder().
		Insert(levelsTable).
		Columns("product_id", "location_id", "quantity", "updated_at").
		Values(productID, locationID, quantity, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (product_id, location_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("set stock level: %w", err)
	}

	return nil
}

func (r *InventoryRepo) ListLevelsByProduct(ctx context.Context, productID id.ID) ([]inventory.StockLevel, error) {
	return r.listLevels(ctx, squirrel.And{squirrel.Eq{"product_id": productID}})
}

func (r *InventoryRepo) ListLevelsByLocation(ctx context.Context, locationID id.ID) ([]inventory.StockLevel, error) {
	return r.listLevels(ctx, squirrel.And{
		squirrel.Eq{"location_id": locationID},
		squirrel.NotEq{"quantity": 0},
	})
}

func (r *InventoryRepo) listLevels(ctx context.Context, cond squirrel.And) ([]inventory.StockLevel, error) {
	q := r.builder().
		Select(levelCols...).
		From(levelsTable).
		Where(cond).
		OrderBy("product_id", "location_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	levels := make([]inventory.StockLevel, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &levels, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}

	return levels, nil
}

// CreateMovements batch inserts movement records.
func (r *InventoryRepo) CreateMovements(ctx context.Context, movements []inventory.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	q := r.builder().
		Insert(movementsTable).
		Columns(movementCols...)

	for _, m := range movements {
		q = q.Values(
			m.ID, m.Type, m.ProductID, m.LocationID, m.Quantity,
			m.TransferGroupID, m.Reference, m.Notes, m.CreatedAt, m.CreatedBy,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert stock movements: %w", err)
	}

	return nil
}

// ListMovements returns movement history, newest first.
func (r *InventoryRepo) ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	q := r.builder().
		Select(movementCols...).
		From(movementsTable)

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.ToDate})
	}

	q = q.OrderBy("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	movements := make([]inventory.StockMovement, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}

	return movements, nil
}
