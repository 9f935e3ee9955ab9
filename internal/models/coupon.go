package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a discount code. The checkout transactor only requires the
// coupon to exist and be active; expiry, usage limits and the minimum
// order amount are enforced by the storefront validation endpoint
// before checkout.
type Coupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`
	DiscountType   string         `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue  Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"`
	MinOrderAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"`
	UsageLimit     int            `gorm:"not null;default:0" json:"usage_limit"`
	UsedCount      int            `gorm:"not null;default:0" json:"used_count"`
	PerUserLimit   int            `gorm:"not null;default:0" json:"per_user_limit"`
	ExpiresAt      *time.Time     `gorm:"index" json:"expires_at,omitempty"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Coupon) TableName() string {
	return "coupons"
}
