package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents an item tracked in the inventory.
// Deleting a product cascades to its purchases, sales and inventory row.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(50);not null;index" json:"title"`
	Detail    string    `gorm:"type:text" json:"detail"`
	UnitID    uuid.UUID `gorm:"type:uuid;not null;index" json:"unit_id"`
	Unit      Unit      `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"unit,omitempty"`
	Photo     string    `gorm:"type:varchar(255)" json:"photo,omitempty"` // stored object key or URL, optional
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
