package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/core/types"
	"ledgerhouse/internal/domain/catalogs/location"
	"ledgerhouse/internal/domain/catalogs/product"
	"ledgerhouse/internal/domain/inventory"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type levelKey struct{ productID, locationID id.ID }

type memStockRepo struct {
	levels    map[levelKey]types.Quantity
	movements []inventory.StockMovement
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{levels: make(map[levelKey]types.Quantity)}
}

func (r *memStockRepo) GetLevel(ctx context.Context, productID, locationID id.ID) (inventory.StockLevel, error) {
	return inventory.StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   r.levels[levelKey{productID, locationID}],
	}, nil
}

func (r *memStockRepo) GetLevelForUpdate(ctx context.Context, productID, locationID id.ID) (inventory.StockLevel, error) {
	return r.GetLevel(ctx, productID, locationID)
}

func (r *memStockRepo) SetLevel(ctx context.Context, productID, locationID id.ID, quantity types.Quantity) error {
	r.levels[levelKey{productID, locationID}] = quantity
	return nil
}

func (r *memStockRepo) ListLevelsByProduct(ctx context.Context, productID id.ID) ([]inventory.StockLevel, error) {
	return nil, nil
}

func (r *memStockRepo) ListLevelsByLocation(ctx context.Context, locationID id.ID) ([]inventory.StockLevel, error) {
	return nil, nil
}

func (r *memStockRepo) CreateMovements(ctx context.Context, movements []inventory.StockMovement) error {
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *memStockRepo) ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	return r.movements, nil
}

type oneProductDir struct{ p *product.Product }

func (d oneProductDir) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return d.p, nil
}

type oneLocationDir struct{ l *location.Location }

func (d oneLocationDir) GetByID(ctx context.Context, locationID id.ID) (*location.Location, error) {
	return d.l, nil
}

func newAdjustRouter(t *testing.T) (*gin.Engine, *memStockRepo, id.ID, id.ID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prod := product.NewProduct("PRD-001", "Widget", product.TypeGoods)
	loc := location.NewLocation("WH-001", "Main warehouse", location.TypeWarehouse)

	repo := newMemStockRepo()
	svc := inventory.NewService(repo, oneProductDir{prod}, oneLocationDir{loc}, nopTxManager{})

	router := gin.New()
	NewInventoryHandler(NewBaseHandler(), svc).RegisterRoutes(router.Group("/inventory"))
	return router, repo, prod.ID, loc.ID
}

func postAdjust(t *testing.T, router *gin.Engine, productID, locationID id.ID, newQty int) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"productId":%q,"locationId":%q,"newQuantity":%d}`,
		productID.String(), locationID.String(), newQty)
	req := httptest.NewRequest(http.MethodPost, "/inventory/adjust", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdjustEndpoint_WritesMovement(t *testing.T) {
	router, repo, productID, locationID := newAdjustRouter(t)

	rec := postAdjust(t, router, productID, locationID, 7)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.movements, 1)
	assert.True(t, repo.levels[levelKey{productID, locationID}] == types.NewQuantityFromFloat64(7))
}

func TestAdjustEndpoint_NoChangeReturnsLevel(t *testing.T) {
	router, repo, productID, locationID := newAdjustRouter(t)
	repo.levels[levelKey{productID, locationID}] = types.NewQuantityFromFloat64(10)

	rec := postAdjust(t, router, productID, locationID, 10)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.movements)

	var resp struct {
		Adjusted bool            `json:"adjusted"`
		Level    json.RawMessage `json:"level"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Adjusted)
	assert.NotEmpty(t, resp.Level)
}
