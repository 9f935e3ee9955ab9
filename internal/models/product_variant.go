package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant is a concrete variant of a product (size, color, ...).
// Its stock counter is authoritative for availability: a cart line that
// references a variant checks and decrements the variant, never the
// parent product.
type ProductVariant struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Name      string         `gorm:"not null" json:"name"`
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Stock     int            `gorm:"not null;default:0" json:"stock"`
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (ProductVariant) TableName() string {
	return "product_variants"
}
