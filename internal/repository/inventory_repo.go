package repository

import (
	"context"
	"strings"

	"inventorymis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository is the storage boundary of the balance maintainer.
type InventoryRepository interface {
	// GetOrCreate returns the inventory row for a product, creating it with a
	// zero balance when absent. The bool reports whether a row was created.
	GetOrCreate(ctx context.Context, productID uuid.UUID) (*model.Inventory, bool, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) (*model.Inventory, error)
	Save(ctx context.Context, inv *model.Inventory) error
	// AdjustBalance applies delta to the product's balance as a single atomic
	// UPDATE. gorm.ErrRecordNotFound is returned when no row exists.
	AdjustBalance(ctx context.Context, productID uuid.UUID, delta float64) error
	List(ctx context.Context, search string, page, limit int) ([]model.Inventory, int64, error)
	ListAll(ctx context.Context, search string) ([]model.Inventory, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetOrCreate(ctx context.Context, productID uuid.UUID) (*model.Inventory, bool, error) {
	var inv model.Inventory
	err := GetDB(ctx, r.db).Where("product_id = ?", productID).First(&inv).Error
	if err == nil {
		return &inv, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	inv = model.Inventory{ProductID: productID, TotalBalanceQuantity: 0}
	if err := GetDB(ctx, r.db).Create(&inv).Error; err != nil {
		return nil, false, err
	}
	return &inv, true, nil
}

func (r *inventoryRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	if err := GetDB(ctx, r.db).Where("product_id = ?", productID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepository) Save(ctx context.Context, inv *model.Inventory) error {
	return GetDB(ctx, r.db).Save(inv).Error
}

func (r *inventoryRepository) AdjustBalance(ctx context.Context, productID uuid.UUID, delta float64) error {
	res := GetDB(ctx, r.db).Model(&model.Inventory{}).
		Where("product_id = ?", productID).
		Update("total_balance_quantity", gorm.Expr("total_balance_quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *inventoryRepository) List(ctx context.Context, search string, page, limit int) ([]model.Inventory, int64, error) {
	var items []model.Inventory
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Inventory{})
	if search != "" {
		db = db.Joins("JOIN products ON products.id = inventories.product_id").
			Where("LOWER(products.title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Product").Preload("Product.Unit").
		Order("inventories.updated_at desc").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *inventoryRepository) ListAll(ctx context.Context, search string) ([]model.Inventory, error) {
	var items []model.Inventory

	db := GetDB(ctx, r.db).Model(&model.Inventory{})
	if search != "" {
		db = db.Joins("JOIN products ON products.id = inventories.product_id").
			Where("LOWER(products.title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := db.Preload("Product").Preload("Product.Unit").
		Order("inventories.updated_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
