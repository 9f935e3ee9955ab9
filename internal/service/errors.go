package service

import "errors"

// Business errors returned by the service layer. Handlers translate
// them to HTTP responses through their mapping tables.
var (
	ErrOrderFieldMissing     = errors.New("required order field missing")
	ErrOrderItemsEmpty       = errors.New("order has no items")
	ErrInvalidOrderItem      = errors.New("invalid order item")
	ErrAddressRequired       = errors.New("detailed address required for home delivery")
	ErrStationRequired       = errors.New("station code required for stop desk delivery")
	ErrDeliveryMethodInvalid = errors.New("invalid delivery method")
	ErrShippingPriceInvalid  = errors.New("invalid shipping price")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderCreateFailed     = errors.New("order create failed")
	ErrStatusNotAllowed      = errors.New("order status transition not allowed")

	ErrProductNotAvailable = errors.New("product not available")
	ErrVariantNotAvailable = errors.New("variant not available")
	ErrAddOnNotAvailable   = errors.New("add-on not available")
	ErrInsufficientStock   = errors.New("insufficient stock")

	ErrCouponInvalid      = errors.New("coupon invalid")
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponInactive     = errors.New("coupon inactive")
	ErrCouponExpired      = errors.New("coupon expired")
	ErrCouponUsageLimit   = errors.New("coupon usage limit reached")
	ErrCouponPerUserLimit = errors.New("coupon per-user limit reached")
	ErrCouponMinAmount    = errors.New("order amount below coupon minimum")
	ErrCouponExists       = errors.New("coupon code already exists")
)
