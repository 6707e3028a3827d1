package service_test

import (
	"context"
	"testing"
	"time"

	"inventorymis/internal/model"
	"inventorymis/internal/repository"
	"inventorymis/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportFixture(t *testing.T) (*gorm.DB, service.LedgerService, service.ReportService) {
	t.Helper()
	db := newTestDB(t)

	inventoryRepo := repository.NewInventoryRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	stock := service.NewStockService(inventoryRepo)
	ledger := service.NewLedgerService(
		purchaseRepo,
		saleRepo,
		repository.NewProductRepository(db),
		repository.NewVendorRepository(db),
		repository.NewCustomerRepository(db),
		stock,
		repository.NewTransactionManager(db),
	)
	report := service.NewReportService(db, inventoryRepo, purchaseRepo, saleRepo)
	return db, ledger, report
}

func TestSummarizeInventory(t *testing.T) {
	items := []model.Inventory{
		{TotalBalanceQuantity: 5},
		{TotalBalanceQuantity: 12},
		{TotalBalanceQuantity: 10},
		{TotalBalanceQuantity: 0},
	}

	summary := service.SummarizeInventory(items)
	assert.Equal(t, 4, summary.TotalProducts)
	assert.Equal(t, 27.0, summary.TotalQuantity)
	assert.Equal(t, model.LowStockThreshold, summary.LowStockThreshold)
	assert.Equal(t, 3, summary.LowStockCount, "balances at the threshold count as low stock")
}

func TestSummarizeInventoryEmpty(t *testing.T) {
	summary := service.SummarizeInventory(nil)
	assert.Equal(t, 0, summary.TotalProducts)
	assert.Equal(t, 0.0, summary.TotalQuantity)
	assert.Equal(t, 0, summary.LowStockCount)
}

func TestDashboardReflectsLedger(t *testing.T) {
	db, ledger, report := newReportFixture(t)
	unit := seedUnit(t, db)
	vendor := seedVendor(t, db)
	ctx := context.Background()

	quantities := []float64{5, 12, 10, 0}
	for i, q := range quantities {
		product := seedProduct(t, db, unit, "Dash Item "+string(rune('A'+i)))
		_, err := ledger.CreatePurchase(ctx, service.CreatePurchaseRequest{
			ProductID: product.ID.String(),
			VendorID:  vendor.ID.String(),
			Quantity:  q + 1,
			Price:     2,
		})
		require.NoError(t, err)

		// Sell one so each product lands on the intended balance
		_, err = ledger.CreateSale(ctx, service.CreateSaleRequest{
			ProductID: product.ID.String(),
			Quantity:  1,
			Price:     3,
		})
		require.NoError(t, err)
	}

	dashboard, err := report.Dashboard(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 4, dashboard.Summary.TotalProducts)
	assert.Equal(t, 27.0, dashboard.Summary.TotalQuantity)
	assert.Equal(t, 3, dashboard.Summary.LowStockCount)
	assert.LessOrEqual(t, len(dashboard.RecentPurchases), 5)
	assert.LessOrEqual(t, len(dashboard.RecentSales), 5)
	assert.NotEmpty(t, dashboard.InventoryItems)
}

func TestDashboardSearchFiltersSummary(t *testing.T) {
	db, ledger, report := newReportFixture(t)
	unit := seedUnit(t, db)
	vendor := seedVendor(t, db)
	ctx := context.Background()

	rice := seedProduct(t, db, unit, "Jasmine Rice")
	soap := seedProduct(t, db, unit, "Laundry Soap")
	for _, p := range []*model.Product{rice, soap} {
		_, err := ledger.CreatePurchase(ctx, service.CreatePurchaseRequest{
			ProductID: p.ID.String(),
			VendorID:  vendor.ID.String(),
			Quantity:  20,
			Price:     1,
		})
		require.NoError(t, err)
	}

	dashboard, err := report.Dashboard(ctx, "rice")
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.Summary.TotalProducts)
	assert.Equal(t, 20.0, dashboard.Summary.TotalQuantity)
}

func TestListInventoryPagination(t *testing.T) {
	db, ledger, report := newReportFixture(t)
	unit := seedUnit(t, db)
	vendor := seedVendor(t, db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		product := seedProduct(t, db, unit, "Page Item "+string(rune('A'+i)))
		_, err := ledger.CreatePurchase(ctx, service.CreatePurchaseRequest{
			ProductID: product.ID.String(),
			VendorID:  vendor.ID.String(),
			Quantity:  1,
			Price:     1,
		})
		require.NoError(t, err)
	}

	items, total, err := report.ListInventory(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)

	items, _, err = report.ListInventory(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestTradeStatsTotalsAndRankings(t *testing.T) {
	db, ledger, report := newReportFixture(t)
	unit := seedUnit(t, db)
	vendor := seedVendor(t, db)
	ctx := context.Background()

	rice := seedProduct(t, db, unit, "Stat Rice")
	soap := seedProduct(t, db, unit, "Stat Soap")

	// Purchases: rice 10 @ 2.00, soap 4 @ 5.00 -> 40.00 total
	for _, in := range []struct {
		product  *model.Product
		quantity float64
		price    float64
	}{
		{rice, 10, 2},
		{soap, 4, 5},
	} {
		_, err := ledger.CreatePurchase(ctx, service.CreatePurchaseRequest{
			ProductID: in.product.ID.String(),
			VendorID:  vendor.ID.String(),
			Quantity:  in.quantity,
			Price:     in.price,
		})
		require.NoError(t, err)
	}

	// Sales: rice 6 @ 3.00, soap 1 @ 8.00 -> 26.00 total
	for _, in := range []struct {
		product  *model.Product
		quantity float64
		price    float64
	}{
		{rice, 6, 3},
		{soap, 1, 8},
	} {
		_, err := ledger.CreateSale(ctx, service.CreateSaleRequest{
			ProductID: in.product.ID.String(),
			Quantity:  in.quantity,
			Price:     in.price,
		})
		require.NoError(t, err)
	}

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	stats, err := report.TradeStats(ctx, start, end)
	require.NoError(t, err)

	assert.Equal(t, "40", stats.TotalPurchaseValue.String())
	assert.Equal(t, "26", stats.TotalSaleValue.String())
	assert.Equal(t, "-14", stats.Margin.String())
	assert.Equal(t, 2, stats.TotalPurchases)
	assert.Equal(t, 2, stats.TotalSales)

	require.NotEmpty(t, stats.TopPurchasedItems)
	assert.Equal(t, rice.ID.String(), stats.TopPurchasedItems[0].ProductID)
	assert.Equal(t, 10.0, stats.TopPurchasedItems[0].TotalQuantity)

	require.NotEmpty(t, stats.TopSoldItems)
	assert.Equal(t, rice.ID.String(), stats.TopSoldItems[0].ProductID)
}

func TestTradeStatsEmptyRange(t *testing.T) {
	_, _, report := newReportFixture(t)

	start := time.Now().Add(-2 * time.Hour)
	end := time.Now().Add(-time.Hour)
	stats, err := report.TradeStats(context.Background(), start, end)
	require.NoError(t, err)

	assert.True(t, stats.TotalPurchaseValue.IsZero())
	assert.True(t, stats.TotalSaleValue.IsZero())
	assert.True(t, stats.Margin.IsZero())
	assert.Equal(t, 0, stats.TotalPurchases)
	assert.Empty(t, stats.TopPurchasedItems)
}
