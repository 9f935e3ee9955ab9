package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is one cart line of an order. ProductName, VariantName and
// UnitPrice are snapshots taken at order time; Total is recomputed
// server-side as (unit price + sum of add-on charges) times quantity.
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderID     uint           `gorm:"index;not null" json:"order_id"`
	ProductID   uint           `gorm:"index;not null" json:"product_id"`
	VariantID   *uint          `gorm:"index" json:"variant_id,omitempty"`
	ProductName string         `gorm:"not null" json:"product_name"`
	VariantName string         `json:"variant_name,omitempty"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Total       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	AddOns []OrderItemAddOn `gorm:"foreignKey:OrderItemID" json:"addons,omitempty"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
