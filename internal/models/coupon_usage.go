package models

import (
	"time"

	"gorm.io/gorm"
)

// CouponUsage records a coupon applied to an order. Code, discount type
// and value are snapshots of the coupon as it was at order time; the
// unique index on OrderID enforces at most one usage per order.
type CouponUsage struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	CouponID       uint           `gorm:"index;not null" json:"coupon_id"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	OrderID        uint           `gorm:"uniqueIndex;not null" json:"order_id"`
	Code           string         `gorm:"not null" json:"code"`
	DiscountType   string         `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"`
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`
	AppliedAt      time.Time      `gorm:"index" json:"applied_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (CouponUsage) TableName() string {
	return "coupon_usages"
}
