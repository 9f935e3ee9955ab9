package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a sellable catalog item. Add-ons are themselves products,
// flagged with IsAddOn so the storefront can list them separately; they
// share the same stock counter semantics.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	IsAddOn     bool           `gorm:"not null;default:false;index" json:"is_add_on"`
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
