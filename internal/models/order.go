package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is one checkout. Created once, together with its items and
// add-on snapshots, inside a single transaction; only the status (and
// the stock restored on cancellation) changes afterwards.
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`
	CustomerID      uint           `gorm:"index;not null" json:"customer_id"`
	FullName        string         `gorm:"not null" json:"full_name"`
	PhoneNumber     string         `gorm:"not null;index" json:"phone_number"`
	Wilaya          string         `gorm:"not null" json:"wilaya"`
	Commune         string         `json:"commune,omitempty"`
	DeliveryMethod  string         `gorm:"type:varchar(20)" json:"delivery_method,omitempty"`
	DetailedAddress string         `json:"detailed_address,omitempty"`
	DeliveryNote    string         `json:"delivery_note,omitempty"`
	StationCode     string         `gorm:"type:varchar(32)" json:"station_code,omitempty"`
	ShippingCompany string         `json:"shipping_company,omitempty"`
	ShippingPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	DiscountTotal   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_total"`
	Total           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	Status          string         `gorm:"index;not null" json:"status"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Items       []OrderItem  `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CouponUsage *CouponUsage `gorm:"foreignKey:OrderID" json:"coupon_usage,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
