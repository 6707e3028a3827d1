package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LowStockThreshold is the fixed balance at or below which a product is
// flagged for restocking.
const LowStockThreshold = 10

// Inventory holds the running net stock balance for a product. Exactly one
// row exists per product once the product has been purchased at least once.
// The balance is signed and may go negative.
type Inventory struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	Product              Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	TotalBalanceQuantity float64   `gorm:"not null;default:0" json:"total_balance_quantity"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (i *Inventory) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
