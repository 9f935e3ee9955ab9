package constants

// Order status constants
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusReturned  = "RETURNED"
)

// Delivery method constants
const (
	DeliveryMethodHome     = "home"
	DeliveryMethodStopDesk = "stopdesk"
)

// Coupon discount type constants
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Queue and task name constants
const (
	QueueDefault          = "default"
	TaskOrderExpireCancel = "order:expire_cancel"
)

// Default pagination limits
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
