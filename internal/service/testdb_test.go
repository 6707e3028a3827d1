package service_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"inventorymis/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. The shared cache keeps every
// pooled connection on the same database; the name keeps tests isolated from
// each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Vendor{},
		&model.Unit{},
		&model.Customer{},
		&model.Product{},
		&model.Purchase{},
		&model.Sale{},
		&model.Inventory{},
	))

	return db
}

// unitSeq distinguishes repeated seedUnit calls inside one test so the
// unique indexes on units.title and units.short_name never collide.
var unitSeq atomic.Int64

func seedUnit(t *testing.T, db *gorm.DB) *model.Unit {
	t.Helper()
	n := unitSeq.Add(1)
	unit := model.Unit{
		Title:     fmt.Sprintf("Pieces-%s-%d", t.Name(), n),
		ShortName: fmt.Sprintf("u%d", n),
	}
	require.NoError(t, db.Create(&unit).Error)
	return &unit
}

func seedProduct(t *testing.T, db *gorm.DB, unit *model.Unit, title string) *model.Product {
	t.Helper()
	product := model.Product{Title: title, Detail: "test product", UnitID: unit.ID}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func seedVendor(t *testing.T, db *gorm.DB) *model.Vendor {
	t.Helper()
	vendor := model.Vendor{FullName: "Acme Supplies", Mobile: "0911111111"}
	require.NoError(t, db.Create(&vendor).Error)
	return &vendor
}

func seedCustomer(t *testing.T, db *gorm.DB) *model.Customer {
	t.Helper()
	customer := model.Customer{Name: "Walk In Often", Mobile: "0922222222"}
	require.NoError(t, db.Create(&customer).Error)
	return &customer
}
