package service

import (
	"errors"
	"testing"
	"time"

	"github.com/souq-next/internal/constants"
	"github.com/souq-next/internal/models"
	"github.com/souq-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewCouponService(
		repository.NewCouponRepository(db),
		repository.NewCouponUsageRepository(db),
	)
	return svc, db
}

func TestValidatePercentageDiscount(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, &models.Coupon{
		Code:           "DIX",
		DiscountType:   constants.DiscountTypePercentage,
		DiscountValue:  models.NewMoneyFromInt(10),
		MinOrderAmount: models.NewMoneyFromInt(1000),
		IsActive:       true,
	})

	discount, coupon, err := svc.Validate("dix", 0, models.NewMoneyFromInt(2550))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if coupon == nil || coupon.Code != "DIX" {
		t.Fatalf("unexpected coupon: %+v", coupon)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(255)) {
		t.Fatalf("discount want 255 got %s", discount.String())
	}
}

func TestValidateFixedDiscountCappedAtSubtotal(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, &models.Coupon{
		Code:          "GROS",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromInt(5000),
		IsActive:      true,
	})

	discount, _, err := svc.Validate("GROS", 0, models.NewMoneyFromInt(1200))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("discount want 1200 got %s", discount.String())
	}
}

func TestValidateRejections(t *testing.T) {
	svc, db := setupCouponServiceTest(t)

	past := time.Now().Add(-time.Hour)
	createTestCoupon(t, db, &models.Coupon{
		Code: "OFF", DiscountType: constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromInt(100), IsActive: false,
	})
	createTestCoupon(t, db, &models.Coupon{
		Code: "OLD", DiscountType: constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromInt(100), ExpiresAt: &past, IsActive: true,
	})
	createTestCoupon(t, db, &models.Coupon{
		Code: "USED", DiscountType: constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromInt(100), UsageLimit: 2, UsedCount: 2, IsActive: true,
	})
	createTestCoupon(t, db, &models.Coupon{
		Code: "MIN", DiscountType: constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromInt(100), MinOrderAmount: models.NewMoneyFromInt(5000), IsActive: true,
	})

	subtotal := models.NewMoneyFromInt(1000)
	cases := []struct {
		code    string
		wantErr error
	}{
		{"", ErrCouponInvalid},
		{"NOPE", ErrCouponNotFound},
		{"OFF", ErrCouponInactive},
		{"OLD", ErrCouponExpired},
		{"USED", ErrCouponUsageLimit},
		{"MIN", ErrCouponMinAmount},
	}
	for _, tc := range cases {
		if _, _, err := svc.Validate(tc.code, 0, subtotal); !errors.Is(err, tc.wantErr) {
			t.Errorf("Validate(%q) want %v got %v", tc.code, tc.wantErr, err)
		}
	}
}

func TestValidatePerUserLimit(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := createTestCoupon(t, db, &models.Coupon{
		Code:          "UNPARCLIENT",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromInt(200),
		PerUserLimit:  1,
		IsActive:      true,
	})
	if err := db.Create(&models.CouponUsage{
		CouponID:       coupon.ID,
		UserID:         7,
		OrderID:        1,
		Code:           coupon.Code,
		DiscountType:   coupon.DiscountType,
		DiscountValue:  coupon.DiscountValue,
		DiscountAmount: models.NewMoneyFromInt(200),
		AppliedAt:      time.Now(),
	}).Error; err != nil {
		t.Fatalf("create usage failed: %v", err)
	}

	if _, _, err := svc.Validate("UNPARCLIENT", 7, models.NewMoneyFromInt(1000)); !errors.Is(err, ErrCouponPerUserLimit) {
		t.Fatalf("want ErrCouponPerUserLimit got %v", err)
	}
	// A different customer is unaffected.
	if _, _, err := svc.Validate("UNPARCLIENT", 8, models.NewMoneyFromInt(1000)); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	// Anonymous checkout skips the per-user rule.
	if _, _, err := svc.Validate("UNPARCLIENT", 0, models.NewMoneyFromInt(1000)); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestCalculateDiscountInvalidValues(t *testing.T) {
	subtotal := models.NewMoneyFromInt(1000)
	cases := []*models.Coupon{
		{DiscountType: constants.DiscountTypePercentage, DiscountValue: models.NewMoneyFromInt(0)},
		{DiscountType: constants.DiscountTypePercentage, DiscountValue: models.NewMoneyFromInt(150)},
		{DiscountType: constants.DiscountTypeFixed, DiscountValue: models.NewMoneyFromInt(0)},
		{DiscountType: "buy_one_get_one", DiscountValue: models.NewMoneyFromInt(10)},
	}
	for _, coupon := range cases {
		if _, err := calculateDiscount(coupon, subtotal); !errors.Is(err, ErrCouponInvalid) {
			t.Errorf("calculateDiscount(%s %s) want ErrCouponInvalid got %v",
				coupon.DiscountType, coupon.DiscountValue.String(), err)
		}
	}
}
