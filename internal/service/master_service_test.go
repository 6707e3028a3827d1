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

func newMasterFixture(t *testing.T) (*gorm.DB, service.MasterService) {
	t.Helper()
	db := newTestDB(t)
	master := service.NewMasterService(
		repository.NewVendorRepository(db),
		repository.NewUnitRepository(db),
		repository.NewCustomerRepository(db),
	)
	return db, master
}

func TestCreateVendorDefaultsActive(t *testing.T) {
	_, master := newMasterFixture(t)

	vendor, err := master.CreateVendor(context.Background(), service.CreateVendorRequest{
		FullName: "Fresh Farm Co",
		Mobile:   "0912345678",
	})
	require.NoError(t, err)
	assert.True(t, vendor.Status)
	assert.NotEqual(t, uuid.Nil, vendor.ID)
}

func TestUpdateVendorStatus(t *testing.T) {
	_, master := newMasterFixture(t)
	ctx := context.Background()

	vendor, err := master.CreateVendor(ctx, service.CreateVendorRequest{
		FullName: "Toggle Vendor",
		Mobile:   "0911111111",
	})
	require.NoError(t, err)

	inactive := false
	updated, err := master.UpdateVendor(ctx, vendor.ID.String(), service.CreateVendorRequest{
		FullName: "Toggle Vendor",
		Mobile:   "0911111111",
		Status:   &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.Status)
}

func TestUpdateVendorUnknownID(t *testing.T) {
	_, master := newMasterFixture(t)

	_, err := master.UpdateVendor(context.Background(), uuid.NewString(), service.CreateVendorRequest{
		FullName: "Nobody",
		Mobile:   "0900000000",
	})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateUnitRejectsDuplicateTitle(t *testing.T) {
	_, master := newMasterFixture(t)
	ctx := context.Background()

	_, err := master.CreateUnit(ctx, service.CreateUnitRequest{Title: "Kilogram", ShortName: "kg"})
	require.NoError(t, err)

	_, err = master.CreateUnit(ctx, service.CreateUnitRequest{Title: "Kilogram", ShortName: "kgs"})
	require.ErrorIs(t, err, service.ErrDuplicate)
}

func TestListVendorsSearch(t *testing.T) {
	_, master := newMasterFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Golden Harvest", "Silver Trading", "Golden Gate Ltd"} {
		_, err := master.CreateVendor(ctx, service.CreateVendorRequest{FullName: name, Mobile: "0910000000"})
		require.NoError(t, err)
	}

	vendors, total, err := master.ListVendors(ctx, "golden", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, vendors, 2)
}

func TestDeleteCustomerKeepsSales(t *testing.T) {
	db, master := newMasterFixture(t)
	ctx := context.Background()

	customer, err := master.CreateCustomer(ctx, service.CreateCustomerRequest{Name: "Leaving Customer"})
	require.NoError(t, err)

	unit := seedUnit(t, db)
	product := seedProduct(t, db, unit, "Sticky Sale Item")
	sale := model.Sale{ProductID: product.ID, CustomerID: &customer.ID, Quantity: 1, Price: 2}
	require.NoError(t, db.Create(&sale).Error)

	require.NoError(t, master.DeleteCustomer(ctx, customer.ID.String()))

	// Sale survives the customer with the reference nulled out.
	var stored model.Sale
	require.NoError(t, db.First(&stored, "id = ?", sale.ID).Error)
	assert.Nil(t, stored.CustomerID)
}
