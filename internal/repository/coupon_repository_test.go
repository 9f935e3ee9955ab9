package repository

import (
	"testing"

	"github.com/souq-next/internal/constants"
	"github.com/souq-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCouponRepositoryTest(t *testing.T) (*GormCouponRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("migrate coupon failed: %v", err)
	}
	return NewCouponRepository(db), db
}

func TestGetByCodeCaseInsensitive(t *testing.T) {
	repo, _ := setupCouponRepositoryTest(t)
	if err := repo.Create(&models.Coupon{
		Code:          "PROMO10",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromInt(10),
		IsActive:      true,
	}); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	coupon, err := repo.GetByCode("promo10")
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if coupon == nil || coupon.Code != "PROMO10" {
		t.Fatalf("unexpected coupon: %+v", coupon)
	}

	coupon, err = repo.GetByCode("  PROMO10  ")
	if err != nil || coupon == nil {
		t.Fatalf("trimmed lookup failed: %+v %v", coupon, err)
	}

	coupon, err = repo.GetByCode("missing")
	if err != nil {
		t.Fatalf("missing lookup failed: %v", err)
	}
	if coupon != nil {
		t.Fatalf("expected nil for unknown code, got %+v", coupon)
	}
}

func TestIncrementUsedCountHonorsUsageLimit(t *testing.T) {
	repo, db := setupCouponRepositoryTest(t)
	coupon := &models.Coupon{
		Code:          "LIMITED",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromInt(500),
		UsageLimit:    2,
		IsActive:      true,
	}
	if err := repo.Create(coupon); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		affected, err := repo.IncrementUsedCount(coupon.ID)
		if err != nil {
			t.Fatalf("increment failed: %v", err)
		}
		if affected != 1 {
			t.Fatalf("increment affected want 1 got %d", affected)
		}
	}

	affected, err := repo.IncrementUsedCount(coupon.ID)
	if err != nil {
		t.Fatalf("increment at limit failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("increment at limit affected want 0 got %d", affected)
	}

	var got models.Coupon
	if err := db.First(&got, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if got.UsedCount != 2 {
		t.Fatalf("used_count want 2 got %d", got.UsedCount)
	}
}

func TestIncrementUsedCountUnlimitedWhenZeroLimit(t *testing.T) {
	repo, _ := setupCouponRepositoryTest(t)
	coupon := &models.Coupon{
		Code:          "OPEN",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromInt(100),
		IsActive:      true,
	}
	if err := repo.Create(coupon); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		affected, err := repo.IncrementUsedCount(coupon.ID)
		if err != nil || affected != 1 {
			t.Fatalf("increment %d failed: affected=%d err=%v", i, affected, err)
		}
	}
}

func TestDecrementUsedCountStopsAtZero(t *testing.T) {
	repo, db := setupCouponRepositoryTest(t)
	coupon := &models.Coupon{
		Code:          "RELEASE",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromInt(100),
		UsedCount:     1,
		IsActive:      true,
	}
	if err := repo.Create(coupon); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	affected, err := repo.DecrementUsedCount(coupon.ID)
	if err != nil || affected != 1 {
		t.Fatalf("decrement failed: affected=%d err=%v", affected, err)
	}
	affected, err = repo.DecrementUsedCount(coupon.ID)
	if err != nil {
		t.Fatalf("decrement at zero failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement at zero affected want 0 got %d", affected)
	}

	var got models.Coupon
	if err := db.First(&got, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if got.UsedCount != 0 {
		t.Fatalf("used_count want 0 got %d", got.UsedCount)
	}
}
