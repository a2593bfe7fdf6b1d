package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/catalogs/location"
	"ledgerhouse/internal/domain/catalogs/product"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type levelKey struct {
	product  id.ID
	location id.ID
}

type memRepo struct {
	levels    map[levelKey]types.Quantity
	movements []StockMovement
}

func newMemRepo() *memRepo {
	return &memRepo{levels: make(map[levelKey]types.Quantity)}
}

func (r *memRepo) GetLevel(ctx context.Context, productID, locationID id.ID) (StockLevel, error) {
	return StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   r.levels[levelKey{productID, locationID}],
		UpdatedAt:  time.Now(),
	}, nil
}

func (r *memRepo) GetLevelForUpdate(ctx context.Context, productID, locationID id.ID) (StockLevel, error) {
	return r.GetLevel(ctx, productID, locationID)
}

func (r *memRepo) SetLevel(ctx context.Context, productID, locationID id.ID, quantity types.Quantity) error {
	r.levels[levelKey{productID, locationID}] = quantity
	return nil
}

func (r *memRepo) ListLevelsByProduct(ctx context.Context, productID id.ID) ([]StockLevel, error) {
	var out []StockLevel
	for k, q := range r.levels {
		if k.product == productID {
			out = append(out, StockLevel{ProductID: k.product, LocationID: k.location, Quantity: q})
		}
	}
	return out, nil
}

func (r *memRepo) ListLevelsByLocation(ctx context.Context, locationID id.ID) ([]StockLevel, error) {
	var out []StockLevel
	for k, q := range r.levels {
		if k.location == locationID && !q.IsZero() {
			out = append(out, StockLevel{ProductID: k.product, LocationID: k.location, Quantity: q})
		}
	}
	return out, nil
}

func (r *memRepo) CreateMovements(ctx context.Context, movements []StockMovement) error {
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *memRepo) ListMovements(ctx context.Context, filter MovementFilter) ([]StockMovement, error) {
	return r.movements, nil
}

type fixedProducts struct{ byID map[id.ID]*product.Product }

func (f fixedProducts) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

type fixedLocations struct{ byID map[id.ID]*location.Location }

func (f fixedLocations) GetByID(ctx context.Context, locationID id.ID) (*location.Location, error) {
	l, ok := f.byID[locationID]
	if !ok {
		return nil, apperror.NewNotFound("location", locationID.String())
	}
	return l, nil
}

type fixture struct {
	svc     *Service
	repo    *memRepo
	prod    *product.Product
	untrack *product.Product
	locA    *location.Location
	locB    *location.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	prod := product.NewProduct("P-001", "Widget", product.TypeGoods)
	untrack := product.NewProduct("S-001", "Consulting", product.TypeService)
	locA := location.NewLocation("WH-A", "Main warehouse", location.TypeWarehouse)
	locB := location.NewLocation("WH-B", "Backup warehouse", location.TypeWarehouse)

	repo := newMemRepo()
	svc := NewService(
		repo,
		fixedProducts{byID: map[id.ID]*product.Product{prod.ID: prod, untrack.ID: untrack}},
		fixedLocations{byID: map[id.ID]*location.Location{locA.ID: locA, locB.ID: locB}},
		nopTxManager{},
	)

	return &fixture{svc: svc, repo: repo, prod: prod, untrack: untrack, locA: locA, locB: locB}
}

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func TestReceiveThenShip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(10)})
	require.NoError(t, err)

	_, err = f.svc.Ship(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(4)})
	require.NoError(t, err)

	level, err := f.svc.GetLevel(ctx, f.prod.ID, f.locA.ID)
	require.NoError(t, err)
	assert.Equal(t, qty(6), level.Quantity)

	require.Len(t, f.repo.movements, 2)
	assert.Equal(t, MovementReceipt, f.repo.movements[0].Type)
	assert.Equal(t, qty(10), f.repo.movements[0].Quantity)
	assert.Equal(t, MovementShipment, f.repo.movements[1].Type)
	assert.Equal(t, qty(4).Neg(), f.repo.movements[1].Quantity)
}

func TestShip_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(3)})
	require.NoError(t, err)

	_, err = f.svc.Ship(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(5)})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	// Level and movement log untouched by the failed shipment
	level, _ := f.svc.GetLevel(ctx, f.prod.ID, f.locA.ID)
	assert.Equal(t, qty(3), level.Quantity)
	assert.Len(t, f.repo.movements, 1)
}

func TestShip_NegativeAllowed(t *testing.T) {
	f := newFixture(t)
	f.locA.AllowNegative = true
	ctx := context.Background()

	_, err := f.svc.Ship(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(5)})
	require.NoError(t, err)

	level, _ := f.svc.GetLevel(ctx, f.prod.ID, f.locA.ID)
	assert.Equal(t, qty(5).Neg(), level.Quantity)
}

func TestTransfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(20)})
	require.NoError(t, err)

	movements, err := f.svc.Transfer(ctx, TransferParams{
		ProductID:      f.prod.ID,
		FromLocationID: f.locA.ID,
		ToLocationID:   f.locB.ID,
		Quantity:       qty(5),
	})
	require.NoError(t, err)

	levelA, _ := f.svc.GetLevel(ctx, f.prod.ID, f.locA.ID)
	levelB, _ := f.svc.GetLevel(ctx, f.prod.ID, f.locB.ID)
	assert.Equal(t, qty(15), levelA.Quantity)
	assert.Equal(t, qty(5), levelB.Quantity)

	// One movement per side, linked by transfer group
	require.Len(t, movements, 2)
	assert.Equal(t, MovementTransferOut, movements[0].Type)
	assert.Equal(t, qty(5).Neg(), movements[0].Quantity)
	assert.Equal(t, MovementTransferIn, movements[1].Type)
	assert.Equal(t, qty(5), movements[1].Quantity)
	require.NotNil(t, movements[0].TransferGroupID)
	require.NotNil(t, movements[1].TransferGroupID)
	assert.Equal(t, *movements[0].TransferGroupID, *movements[1].TransferGroupID)
}

func TestTransfer_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(2)})
	require.NoError(t, err)

	_, err = f.svc.Transfer(ctx, TransferParams{
		ProductID:      f.prod.ID,
		FromLocationID: f.locA.ID,
		ToLocationID:   f.locB.ID,
		Quantity:       qty(5),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	levelA, _ := f.svc.GetLevel(ctx, f.prod.ID, f.locA.ID)
	levelB, _ := f.svc.GetLevel(ctx, f.prod.ID, f.locB.ID)
	assert.Equal(t, qty(2), levelA.Quantity)
	assert.True(t, levelB.Quantity.IsZero())
}

func TestTransfer_SameLocationRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transfer(context.Background(), TransferParams{
		ProductID:      f.prod.ID,
		FromLocationID: f.locA.ID,
		ToLocationID:   f.locA.ID,
		Quantity:       qty(1),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestAdjust_AbsoluteValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(10)})
	require.NoError(t, err)

	// Count found 7 on the shelf: movement records the delta -3
	mov, err := f.svc.Adjust(ctx, AdjustParams{ProductID: f.prod.ID, LocationID: f.locA.ID, NewQuantity: qty(7)})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, MovementAdjustment, mov.Type)
	assert.Equal(t, qty(3).Neg(), mov.Quantity)

	level, _ := f.svc.GetLevel(ctx, f.prod.ID, f.locA.ID)
	assert.Equal(t, qty(7), level.Quantity)
}

func TestAdjust_NoChangeNoMovement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(10)})
	require.NoError(t, err)

	mov, err := f.svc.Adjust(ctx, AdjustParams{ProductID: f.prod.ID, LocationID: f.locA.ID, NewQuantity: qty(10)})
	require.NoError(t, err)
	assert.Nil(t, mov)
	assert.Len(t, f.repo.movements, 1)
}

func TestAdjust_NegativeRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Adjust(context.Background(), AdjustParams{
		ProductID:   f.prod.ID,
		LocationID:  f.locA.ID,
		NewQuantity: qty(1).Neg(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestReturn_TaggedSeparately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mov, err := f.svc.Return(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(2), Notes: "customer return"})
	require.NoError(t, err)
	assert.Equal(t, MovementReturn, mov.Type)

	level, _ := f.svc.GetLevel(ctx, f.prod.ID, f.locA.ID)
	assert.Equal(t, qty(2), level.Quantity)
}

func TestUntrackedProductRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Receive(context.Background(), MovementParams{
		ProductID:  f.untrack.ID,
		LocationID: f.locA.ID,
		Quantity:   qty(1),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeBusinessRule))
}

func TestGetProductAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locA.ID, Quantity: qty(10)})
	require.NoError(t, err)
	_, err = f.svc.Receive(ctx, MovementParams{ProductID: f.prod.ID, LocationID: f.locB.ID, Quantity: qty(2.5)})
	require.NoError(t, err)

	total, err := f.svc.GetProductAvailability(ctx, f.prod.ID)
	require.NoError(t, err)
	assert.Equal(t, qty(12.5), total)
}

func TestValidation_ZeroQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Receive(context.Background(), MovementParams{
		ProductID:  f.prod.ID,
		LocationID: f.locA.ID,
		Quantity:   0,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}
