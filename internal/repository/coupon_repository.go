package repository

import (
	"errors"
	"strings"

	"github.com/souq-next/internal/models"

	"gorm.io/gorm"
)

// CouponListFilter filters the coupon listing.
type CouponListFilter struct {
	OnlyActive bool
	Code       string
	Page       int
	PageSize   int
}

// CouponRepository is the coupon data access interface.
type CouponRepository interface {
	GetByID(id uint) (*models.Coupon, error)
	GetByCode(code string) (*models.Coupon, error)
	List(filter CouponListFilter) ([]models.Coupon, int64, error)
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	IncrementUsedCount(id uint) (int64, error)
	DecrementUsedCount(id uint) (int64, error)
	WithTx(tx *gorm.DB) CouponRepository
}

// GormCouponRepository is the GORM implementation.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a coupon repository.
func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCouponRepository) WithTx(tx *gorm.DB) CouponRepository {
	if tx == nil {
		return r
	}
	return &GormCouponRepository{db: tx}
}

// GetByID fetches a coupon.
func (r *GormCouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByCode fetches a coupon by code. Codes are matched case-insensitively.
func (r *GormCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}
	var coupon models.Coupon
	if err := r.db.Where("UPPER(code) = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// List lists coupons.
func (r *GormCouponRepository) List(filter CouponListFilter) ([]models.Coupon, int64, error) {
	query := r.db.Model(&models.Coupon{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if code := strings.TrimSpace(filter.Code); code != "" {
		query = query.Where("code LIKE ?", "%"+code+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var coupons []models.Coupon
	if err := query.Order("id desc").Find(&coupons).Error; err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

// Create creates a coupon.
func (r *GormCouponRepository) Create(coupon *models.Coupon) error {
	return r.db.Create(coupon).Error
}

// Update saves a coupon.
func (r *GormCouponRepository) Update(coupon *models.Coupon) error {
	return r.db.Save(coupon).Error
}

// IncrementUsedCount bumps the usage counter, guarded against the usage
// limit when one is set. RowsAffected == 0 means the limit is reached.
func (r *GormCouponRepository) IncrementUsedCount(id uint) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid coupon id")
	}
	result := r.db.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", id).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DecrementUsedCount releases one usage after a cancellation.
func (r *GormCouponRepository) DecrementUsedCount(id uint) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid coupon id")
	}
	result := r.db.Model(&models.Coupon{}).
		Where("id = ? AND used_count > 0", id).
		Update("used_count", gorm.Expr("used_count - 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
