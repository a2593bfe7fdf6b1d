// Package inventory provides the stock operations service.
package inventory

import (
	"context"
	"fmt"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/tx"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/catalogs/location"
	"ledgerhouse/internal/domain/catalogs/product"
	"ledgerhouse/pkg/logger"
)

// MovementParams carries the inputs of a single-location stock operation.
type MovementParams struct {
	ProductID  id.ID
	LocationID id.ID
	Quantity   types.Quantity
	Reference  string
	Notes      string
}

// TransferParams carries the inputs of a two-location transfer.
type TransferParams struct {
	ProductID      id.ID
	FromLocationID id.ID
	ToLocationID   id.ID
	Quantity       types.Quantity
	Reference      string
	Notes          string
}

// AdjustParams sets the stock level to an absolute value.
// The recorded movement carries the signed delta (new - current).
type AdjustParams struct {
	ProductID   id.ID
	LocationID  id.ID
	NewQuantity types.Quantity
	Reference   string
	Notes       string
}

// ProductDirectory is the slice of the product catalog the inventory
// service needs. Satisfied by product.Repository.
type ProductDirectory interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// LocationDirectory is satisfied by location.Repository.
type LocationDirectory interface {
	GetByID(ctx context.Context, locationID id.ID) (*location.Location, error)
}

// Service provides stock operations. Every operation locks the affected
// level rows, mutates them and writes movement records in one
// transaction.
type Service struct {
	repo      Repository
	products  ProductDirectory
	locations LocationDirectory
	txManager tx.Manager
}

// NewService creates a new inventory service.
func NewService(repo Repository, products ProductDirectory, locations LocationDirectory, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		locations: locations,
		txManager: txManager,
	}
}

// Receive increments stock at the target location.
func (s *Service) Receive(ctx context.Context, p MovementParams) (*StockMovement, error) {
	return s.inflow(ctx, MovementReceipt, p)
}

// Return increments stock at the target location, tagged as a customer
// return for reporting.
func (s *Service) Return(ctx context.Context, p MovementParams) (*StockMovement, error) {
	return s.inflow(ctx, MovementReturn, p)
}

func (s *Service) inflow(ctx context.Context, mvType MovementType, p MovementParams) (*StockMovement, error) {
	if err := s.validateParams(ctx, p.ProductID, p.LocationID, p.Quantity); err != nil {
		return nil, err
	}

	var movement StockMovement

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		level, err := s.repo.GetLevelForUpdate(ctx, p.ProductID, p.LocationID)
		if err != nil {
			return fmt.Errorf("lock level: %w", err)
		}

		if err := s.repo.SetLevel(ctx, p.ProductID, p.LocationID, level.Quantity+p.Quantity); err != nil {
			return fmt.Errorf("set level: %w", err)
		}

		movement = newMovement(mvType, p.ProductID, p.LocationID, p.Quantity, p.Reference, p.Notes)
		return s.repo.CreateMovements(ctx, []StockMovement{movement})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock received",
		"type", mvType,
		"productId", p.ProductID,
		"locationId", p.LocationID,
		"quantity", p.Quantity)

	return &movement, nil
}

// Ship decrements stock at the source location. Fails with
// InsufficientStock when the level would go negative, unless the
// location allows negative stock.
func (s *Service) Ship(ctx context.Context, p MovementParams) (*StockMovement, error) {
	if err := s.validateParams(ctx, p.ProductID, p.LocationID, p.Quantity); err != nil {
		return nil, err
	}

	loc, err := s.locations.GetByID(ctx, p.LocationID)
	if err != nil {
		return nil, err
	}

	var movement StockMovement

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		level, err := s.repo.GetLevelForUpdate(ctx, p.ProductID, p.LocationID)
		if err != nil {
			return fmt.Errorf("lock level: %w", err)
		}

		if level.Quantity < p.Quantity && !loc.AllowNegative {
			return apperror.NewInsufficientStock(
				p.ProductID.String(),
				p.Quantity.Float64(),
				level.Quantity.Float64(),
			)
		}

		if err := s.repo.SetLevel(ctx, p.ProductID, p.LocationID, level.Quantity-p.Quantity); err != nil {
			return fmt.Errorf("set level: %w", err)
		}

		movement = newMovement(MovementShipment, p.ProductID, p.LocationID, p.Quantity.Neg(), p.Reference, p.Notes)
		return s.repo.CreateMovements(ctx, []StockMovement{movement})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock shipped",
		"productId", p.ProductID,
		"locationId", p.LocationID,
		"quantity", p.Quantity)

	return &movement, nil
}

// Transfer moves stock between two locations atomically: either both
// sides commit or neither does. Writes one movement record per side
// linked by a shared transfer group id.
func (s *Service) Transfer(ctx context.Context, p TransferParams) ([]StockMovement, error) {
	if err := s.validateParams(ctx, p.ProductID, p.FromLocationID, p.Quantity); err != nil {
		return nil, err
	}
	if err := s.checkLocation(ctx, p.ToLocationID); err != nil {
		return nil, err
	}
	if p.FromLocationID == p.ToLocationID {
		return nil, apperror.NewValidation("source and destination locations must differ").
			WithDetail("locationId", p.FromLocationID.String())
	}

	from, err := s.locations.GetByID(ctx, p.FromLocationID)
	if err != nil {
		return nil, err
	}

	groupID := id.New()
	var movements []StockMovement

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Lock both rows in a stable order to avoid deadlocks between
		// concurrent opposite transfers.
		first, second := p.FromLocationID, p.ToLocationID
		if second.String() < first.String() {
			first, second = second, first
		}

		levels := make(map[id.ID]StockLevel, 2)
		for _, locID := range []id.ID{first, second} {
			level, err := s.repo.GetLevelForUpdate(ctx, p.ProductID, locID)
			if err != nil {
				return fmt.Errorf("lock level: %w", err)
			}
			levels[locID] = level
		}

		source := levels[p.FromLocationID]
		if source.Quantity < p.Quantity && !from.AllowNegative {
			return apperror.NewInsufficientStock(
				p.ProductID.String(),
				p.Quantity.Float64(),
				source.Quantity.Float64(),
			)
		}

		if err := s.repo.SetLevel(ctx, p.ProductID, p.FromLocationID, source.Quantity-p.Quantity); err != nil {
			return fmt.Errorf("set source level: %w", err)
		}
		dest := levels[p.ToLocationID]
		if err := s.repo.SetLevel(ctx, p.ProductID, p.ToLocationID, dest.Quantity+p.Quantity); err != nil {
			return fmt.Errorf("set destination level: %w", err)
		}

		out := newMovement(MovementTransferOut, p.ProductID, p.FromLocationID, p.Quantity.Neg(), p.Reference, p.Notes)
		out.TransferGroupID = &groupID
		in := newMovement(MovementTransferIn, p.ProductID, p.ToLocationID, p.Quantity, p.Reference, p.Notes)
		in.TransferGroupID = &groupID

		movements = []StockMovement{out, in}
		return s.repo.CreateMovements(ctx, movements)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock transferred",
		"productId", p.ProductID,
		"from", p.FromLocationID,
		"to", p.ToLocationID,
		"quantity", p.Quantity)

	return movements, nil
}

// Adjust sets the stock level at a location to an absolute value.
// The entered quantity is the new level; the movement records the
// signed delta. Negative target levels are rejected.
func (s *Service) Adjust(ctx context.Context, p AdjustParams) (*StockMovement, error) {
	if err := s.checkProduct(ctx, p.ProductID); err != nil {
		return nil, err
	}
	if err := s.checkLocation(ctx, p.LocationID); err != nil {
		return nil, err
	}
	if p.NewQuantity.IsNegative() {
		return nil, apperror.NewValidation("adjusted quantity cannot be negative").
			WithDetail("field", "newQuantity")
	}

	var movement StockMovement

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		level, err := s.repo.GetLevelForUpdate(ctx, p.ProductID, p.LocationID)
		if err != nil {
			return fmt.Errorf("lock level: %w", err)
		}

		delta := p.NewQuantity - level.Quantity
		if delta.IsZero() {
			// Nothing to adjust, no movement written
			return nil
		}

		if err := s.repo.SetLevel(ctx, p.ProductID, p.LocationID, p.NewQuantity); err != nil {
			return fmt.Errorf("set level: %w", err)
		}

		movement = newMovement(MovementAdjustment, p.ProductID, p.LocationID, delta, p.Reference, p.Notes)
		return s.repo.CreateMovements(ctx, []StockMovement{movement})
	})
	if err != nil {
		return nil, err
	}

	if id.IsNil(movement.ID) {
		return nil, nil
	}

	logger.Info(ctx, "stock adjusted",
		"productId", p.ProductID,
		"locationId", p.LocationID,
		"newQuantity", p.NewQuantity,
		"delta", movement.Quantity)

	return &movement, nil
}

// GetLevel returns the current level for product+location.
func (s *Service) GetLevel(ctx context.Context, productID, locationID id.ID) (StockLevel, error) {
	return s.repo.GetLevel(ctx, productID, locationID)
}

// GetProductAvailability returns total quantity across all locations.
func (s *Service) GetProductAvailability(ctx context.Context, productID id.ID) (types.Quantity, error) {
	levels, err := s.repo.ListLevelsByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("list levels: %w", err)
	}

	var total types.Quantity
	for _, l := range levels {
		total += l.Quantity
	}
	return total, nil
}

// ListLocationStock returns non-zero levels at a location.
func (s *Service) ListLocationStock(ctx context.Context, locationID id.ID) ([]StockLevel, error) {
	return s.repo.ListLevelsByLocation(ctx, locationID)
}

// History returns movement records, newest first.
func (s *Service) History(ctx context.Context, filter MovementFilter) ([]StockMovement, error) {
	if filter.Limit <= 0 || filter.Limit > 1000 {
		filter.Limit = 100
	}
	return s.repo.ListMovements(ctx, filter)
}

func (s *Service) validateParams(ctx context.Context, productID, locationID id.ID, quantity types.Quantity) error {
	if !quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if err := s.checkProduct(ctx, productID); err != nil {
		return err
	}
	return s.checkLocation(ctx, locationID)
}

func (s *Service) checkProduct(ctx context.Context, productID id.ID) error {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("product", productID.String())
		}
		return err
	}
	if !p.Tracked {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "product is not stock-tracked").
			WithDetail("productId", productID.String())
	}
	return nil
}

func (s *Service) checkLocation(ctx context.Context, locationID id.ID) error {
	if _, err := s.locations.GetByID(ctx, locationID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("location", locationID.String())
		}
		return err
	}
	return nil
}
