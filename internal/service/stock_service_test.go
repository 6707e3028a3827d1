package service_test

import (
	"context"
	"testing"

	"inventorymis/internal/model"
	"inventorymis/internal/repository"
	"inventorymis/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStockFixture(t *testing.T, opts ...service.StockOption) (*gorm.DB, service.StockService) {
	t.Helper()
	db := newTestDB(t)
	return db, service.NewStockService(repository.NewInventoryRepository(db), opts...)
}

func balanceOf(t *testing.T, db *gorm.DB, productID uuid.UUID) float64 {
	t.Helper()
	var inv model.Inventory
	require.NoError(t, db.Where("product_id = ?", productID).First(&inv).Error)
	return inv.TotalBalanceQuantity
}

func TestFirstPurchaseEstablishesBalance(t *testing.T) {
	db, stock := newStockFixture(t)
	product := seedProduct(t, db, seedUnit(t, db), "Rice Bag")
	ctx := context.Background()

	require.NoError(t, stock.OnPurchaseCreated(ctx, product.ID, 10))
	assert.Equal(t, 10.0, balanceOf(t, db, product.ID))

	var count int64
	require.NoError(t, db.Model(&model.Inventory{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "exactly one inventory row per product")
}

func TestRepeatPurchasesAccumulate(t *testing.T) {
	db, stock := newStockFixture(t)
	product := seedProduct(t, db, seedUnit(t, db), "Sugar Pack")
	ctx := context.Background()

	require.NoError(t, stock.OnPurchaseCreated(ctx, product.ID, 10))
	require.NoError(t, stock.OnPurchaseCreated(ctx, product.ID, 2.5))
	assert.Equal(t, 12.5, balanceOf(t, db, product.ID))

	var count int64
	require.NoError(t, db.Model(&model.Inventory{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "repeat purchases must reuse the row")
}

func TestSaleWithoutInventoryRowFails(t *testing.T) {
	db, stock := newStockFixture(t)
	product := seedProduct(t, db, seedUnit(t, db), "Ghost Item")
	ctx := context.Background()

	err := stock.OnSaleCreated(ctx, product.ID, 3)
	require.ErrorIs(t, err, service.ErrInventoryNotFound)

	// The strict path must not establish a row as a side effect.
	var count int64
	require.NoError(t, db.Model(&model.Inventory{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPurchaseDeleteWithoutInventoryRowFails(t *testing.T) {
	db, stock := newStockFixture(t)
	product := seedProduct(t, db, seedUnit(t, db), "Orphan Item")

	err := stock.OnPurchaseDeleted(context.Background(), product.ID, 3)
	require.ErrorIs(t, err, service.ErrInventoryNotFound)
}

func TestLedgerEventSequence(t *testing.T) {
	db, stock := newStockFixture(t)
	product := seedProduct(t, db, seedUnit(t, db), "Flour Sack")
	ctx := context.Background()

	require.NoError(t, stock.OnPurchaseCreated(ctx, product.ID, 10))
	assert.Equal(t, 10.0, balanceOf(t, db, product.ID))

	require.NoError(t, stock.OnSaleCreated(ctx, product.ID, 4))
	assert.Equal(t, 6.0, balanceOf(t, db, product.ID))

	require.NoError(t, stock.OnPurchaseCreated(ctx, product.ID, 3))
	assert.Equal(t, 9.0, balanceOf(t, db, product.ID))

	require.NoError(t, stock.OnSaleDeleted(ctx, product.ID, 4))
	assert.Equal(t, 13.0, balanceOf(t, db, product.ID))

	require.NoError(t, stock.OnPurchaseDeleted(ctx, product.ID, 10))
	assert.Equal(t, 3.0, balanceOf(t, db, product.ID))
}

func TestBalanceMayGoNegative(t *testing.T) {
	db, stock := newStockFixture(t)
	product := seedProduct(t, db, seedUnit(t, db), "Oversold Item")
	ctx := context.Background()

	require.NoError(t, stock.OnPurchaseCreated(ctx, product.ID, 5))
	require.NoError(t, stock.OnSaleCreated(ctx, product.ID, 8))
	assert.Equal(t, -3.0, balanceOf(t, db, product.ID))
}

func TestNonAtomicModeKeepsSemantics(t *testing.T) {
	db, stock := newStockFixture(t, service.WithNonAtomicUpdates())
	unit := seedUnit(t, db)
	product := seedProduct(t, db, unit, "Legacy Item")
	ctx := context.Background()

	require.NoError(t, stock.OnPurchaseCreated(ctx, product.ID, 10))
	require.NoError(t, stock.OnSaleCreated(ctx, product.ID, 4))
	require.NoError(t, stock.OnSaleDeleted(ctx, product.ID, 4))
	require.NoError(t, stock.OnPurchaseDeleted(ctx, product.ID, 10))
	assert.Equal(t, 0.0, balanceOf(t, db, product.ID))

	other := seedProduct(t, db, unit, "Legacy Unknown")
	require.ErrorIs(t, stock.OnSaleCreated(ctx, other.ID, 1), service.ErrInventoryNotFound)
}

func TestBalancesAreIsolatedPerProduct(t *testing.T) {
	db, stock := newStockFixture(t)
	unit := seedUnit(t, db)
	first := seedProduct(t, db, unit, "First Item")
	second := seedProduct(t, db, unit, "Second Item")
	ctx := context.Background()

	require.NoError(t, stock.OnPurchaseCreated(ctx, first.ID, 7))
	require.NoError(t, stock.OnPurchaseCreated(ctx, second.ID, 2))
	require.NoError(t, stock.OnSaleCreated(ctx, first.ID, 5))

	assert.Equal(t, 2.0, balanceOf(t, db, first.ID))
	assert.Equal(t, 2.0, balanceOf(t, db, second.ID))
}
