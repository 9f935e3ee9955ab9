package service

import (
	"strings"
	"time"

	"github.com/souq-next/internal/constants"
	"github.com/souq-next/internal/models"
	"github.com/souq-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService validates coupons and computes discounts.
type CouponService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
}

// NewCouponService creates a coupon service.
func NewCouponService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
	}
}

// Validate runs the full eligibility rules against a cart subtotal and
// returns the discount the coupon would grant. The checkout transactor
// re-checks only existence and active state; expiry, usage limits and
// the minimum amount are storefront-side rules applied here.
func (s *CouponService) Validate(code string, userID uint, subtotal models.Money) (models.Money, *models.Coupon, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return models.Money{}, nil, ErrCouponInvalid
	}

	coupon, err := s.couponRepo.GetByCode(trimmed)
	if err != nil {
		return models.Money{}, nil, err
	}
	if coupon == nil {
		return models.Money{}, nil, ErrCouponNotFound
	}
	if !coupon.IsActive {
		return models.Money{}, coupon, ErrCouponInactive
	}
	if coupon.ExpiresAt != nil && time.Now().After(*coupon.ExpiresAt) {
		return models.Money{}, coupon, ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return models.Money{}, coupon, ErrCouponUsageLimit
	}
	if coupon.PerUserLimit > 0 && userID != 0 {
		count, err := s.usageRepo.CountByUser(coupon.ID, userID)
		if err != nil {
			return models.Money{}, coupon, err
		}
		if int(count) >= coupon.PerUserLimit {
			return models.Money{}, coupon, ErrCouponPerUserLimit
		}
	}
	if subtotal.Decimal.Cmp(coupon.MinOrderAmount.Decimal) < 0 {
		return models.Money{}, coupon, ErrCouponMinAmount
	}

	discount, err := calculateDiscount(coupon, subtotal)
	if err != nil {
		return models.Money{}, coupon, err
	}
	return discount, coupon, nil
}

// calculateDiscount computes the raw discount, capped at the subtotal
// so the order total can never go negative.
func calculateDiscount(coupon *models.Coupon, subtotal models.Money) (models.Money, error) {
	var discount decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(coupon.DiscountType)) {
	case constants.DiscountTypeFixed:
		if coupon.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
			return models.Money{}, ErrCouponInvalid
		}
		discount = coupon.DiscountValue.Decimal
	case constants.DiscountTypePercentage:
		if coupon.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) ||
			coupon.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return models.Money{}, ErrCouponInvalid
		}
		percent := coupon.DiscountValue.Decimal.Div(decimal.NewFromInt(100))
		discount = subtotal.Decimal.Mul(percent).Round(2)
	default:
		return models.Money{}, ErrCouponInvalid
	}

	if discount.GreaterThan(subtotal.Decimal) {
		discount = subtotal.Decimal
	}
	return models.NewMoneyFromDecimal(discount), nil
}
