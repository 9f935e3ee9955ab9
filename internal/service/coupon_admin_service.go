package service

import (
	"strings"
	"time"

	"github.com/souq-next/internal/constants"
	"github.com/souq-next/internal/models"
	"github.com/souq-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponAdminService manages coupons from the back office.
type CouponAdminService struct {
	couponRepo repository.CouponRepository
}

// NewCouponAdminService creates a coupon admin service.
func NewCouponAdminService(couponRepo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{couponRepo: couponRepo}
}

// CreateCouponInput carries the coupon creation payload.
type CreateCouponInput struct {
	Code           string
	DiscountType   string
	DiscountValue  models.Money
	MinOrderAmount models.Money
	UsageLimit     int
	PerUserLimit   int
	ExpiresAt      *time.Time
	IsActive       bool
}

// CreateCoupon validates and persists a new coupon. Codes are stored
// uppercase so lookups stay case-insensitive.
func (s *CouponAdminService) CreateCoupon(input CreateCouponInput) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrCouponInvalid
	}

	discountType := strings.ToLower(strings.TrimSpace(input.DiscountType))
	switch discountType {
	case constants.DiscountTypeFixed:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
			return nil, ErrCouponInvalid
		}
	case constants.DiscountTypePercentage:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) ||
			input.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return nil, ErrCouponInvalid
		}
	default:
		return nil, ErrCouponInvalid
	}
	if input.MinOrderAmount.Decimal.LessThan(decimal.Zero) {
		return nil, ErrCouponInvalid
	}
	if input.UsageLimit < 0 || input.PerUserLimit < 0 {
		return nil, ErrCouponInvalid
	}

	existing, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponExists
	}

	coupon := &models.Coupon{
		Code:           code,
		DiscountType:   discountType,
		DiscountValue:  input.DiscountValue,
		MinOrderAmount: input.MinOrderAmount,
		UsageLimit:     input.UsageLimit,
		PerUserLimit:   input.PerUserLimit,
		ExpiresAt:      input.ExpiresAt,
		IsActive:       input.IsActive,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// ListCoupons lists coupons for the back office.
func (s *CouponAdminService) ListCoupons(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// SetCouponActive toggles a coupon.
func (s *CouponAdminService) SetCouponActive(id uint, active bool) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	coupon.IsActive = active
	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}
