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

func newProductFixture(t *testing.T) (*gorm.DB, service.ProductService) {
	t.Helper()
	db := newTestDB(t)
	products := service.NewProductService(
		repository.NewProductRepository(db),
		repository.NewUnitRepository(db),
		repository.NewTransactionManager(db),
	)
	return db, products
}

func TestCreateProductRequiresExistingUnit(t *testing.T) {
	_, products := newProductFixture(t)

	_, err := products.CreateProduct(context.Background(), service.CreateProductRequest{
		Title:  "Unitless Item",
		UnitID: uuid.NewString(),
	})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateAndGetProduct(t *testing.T) {
	db, products := newProductFixture(t)
	unit := seedUnit(t, db)
	ctx := context.Background()

	created, err := products.CreateProduct(ctx, service.CreateProductRequest{
		Title:  "Green Tea",
		Detail: "Loose leaf",
		UnitID: unit.ID.String(),
		Photo:  "products/green-tea.jpg",
	})
	require.NoError(t, err)

	fetched, err := products.GetProduct(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", fetched.Title)
	assert.Equal(t, unit.ID, fetched.UnitID)
	assert.Equal(t, unit.Title, fetched.Unit.Title)
}

func TestUpdateProductKeepsPhotoWhenEmpty(t *testing.T) {
	db, products := newProductFixture(t)
	unit := seedUnit(t, db)
	ctx := context.Background()

	created, err := products.CreateProduct(ctx, service.CreateProductRequest{
		Title:  "Black Tea",
		UnitID: unit.ID.String(),
		Photo:  "products/black-tea.jpg",
	})
	require.NoError(t, err)

	updated, err := products.UpdateProduct(ctx, created.ID.String(), service.UpdateProductRequest{
		Title:  "Black Tea Premium",
		UnitID: unit.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Black Tea Premium", updated.Title)
	assert.Equal(t, "products/black-tea.jpg", updated.Photo)
}

func TestDeleteProductCascades(t *testing.T) {
	db, products := newProductFixture(t)
	unit := seedUnit(t, db)
	vendor := seedVendor(t, db)
	ctx := context.Background()

	stock := service.NewStockService(repository.NewInventoryRepository(db))
	ledger := service.NewLedgerService(
		repository.NewPurchaseRepository(db),
		repository.NewSaleRepository(db),
		repository.NewProductRepository(db),
		repository.NewVendorRepository(db),
		repository.NewCustomerRepository(db),
		stock,
		repository.NewTransactionManager(db),
	)

	product := seedProduct(t, db, unit, "Doomed Item")
	_, err := ledger.CreatePurchase(ctx, service.CreatePurchaseRequest{
		ProductID: product.ID.String(),
		VendorID:  vendor.ID.String(),
		Quantity:  5,
		Price:     1,
	})
	require.NoError(t, err)
	_, err = ledger.CreateSale(ctx, service.CreateSaleRequest{
		ProductID: product.ID.String(),
		Quantity:  2,
		Price:     2,
	})
	require.NoError(t, err)

	require.NoError(t, products.DeleteProduct(ctx, product.ID.String()))

	for _, probe := range []struct {
		name  string
		model interface{}
	}{
		{"purchases", &model.Purchase{}},
		{"sales", &model.Sale{}},
		{"inventory", &model.Inventory{}},
	} {
		var count int64
		require.NoError(t, db.Model(probe.model).Where("product_id = ?", product.ID).Count(&count).Error)
		assert.Zero(t, count, "expected %s rows to cascade", probe.name)
	}
}
