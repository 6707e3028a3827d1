package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase records stock coming in from a vendor.
// TotalAmount is derived from Quantity and Price on every save and is never
// accepted as independent input.
type Purchase struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product      Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	VendorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor       Vendor    `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"vendor,omitempty"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	Price        float64   `gorm:"not null" json:"price"`
	TotalAmount  float64   `gorm:"not null" json:"total_amount"`
	PurchaseDate time.Time `gorm:"autoCreateTime;index" json:"purchase_date"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave recomputes the total, overwriting any caller-supplied value.
func (p *Purchase) BeforeSave(tx *gorm.DB) error {
	p.TotalAmount = p.Quantity * p.Price
	return nil
}

// Sale records stock going out, optionally to a known customer.
type Sale struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     Product    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	CustomerID  *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"` // nullable, walk-in sales carry no customer
	Customer    *Customer  `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	Quantity    float64    `gorm:"not null" json:"quantity"`
	Price       float64    `gorm:"not null" json:"price"`
	TotalAmount float64    `gorm:"not null" json:"total_amount"`
	SaleDate    time.Time  `gorm:"autoCreateTime;index" json:"sale_date"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BeforeSave recomputes the total, overwriting any caller-supplied value.
func (s *Sale) BeforeSave(tx *gorm.DB) error {
	s.TotalAmount = s.Quantity * s.Price
	return nil
}
