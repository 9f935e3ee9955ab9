package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItemAddOn is an accessory attached to an order line. Name and
// UnitPrice are snapshots taken at order time so later catalog edits
// cannot retroactively change historical orders.
type OrderItemAddOn struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderItemID uint           `gorm:"index;not null" json:"order_item_id"`
	AddOnID     uint           `gorm:"index;not null" json:"add_on_id"`
	Name        string         `gorm:"not null" json:"name"`
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	Total       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderItemAddOn) TableName() string {
	return "order_item_addons"
}
