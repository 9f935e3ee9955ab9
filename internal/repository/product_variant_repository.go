package repository

import (
	"errors"

	"github.com/souq-next/internal/models"

	"gorm.io/gorm"
)

// ProductVariantRepository is the variant data access interface.
type ProductVariantRepository interface {
	GetByID(id uint) (*models.ProductVariant, error)
	ListByProduct(productID uint) ([]models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	Delete(id uint) error
	DeductStock(variantID uint, quantity int) (int64, error)
	RestoreStock(variantID uint, quantity int) (int64, error)
	AddStock(variantID uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) ProductVariantRepository
}

// GormProductVariantRepository is the GORM implementation.
type GormProductVariantRepository struct {
	db *gorm.DB
}

// NewProductVariantRepository creates a variant repository.
func NewProductVariantRepository(db *gorm.DB) *GormProductVariantRepository {
	return &GormProductVariantRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormProductVariantRepository) WithTx(tx *gorm.DB) ProductVariantRepository {
	if tx == nil {
		return r
	}
	return &GormProductVariantRepository{db: tx}
}

// GetByID fetches a variant.
func (r *GormProductVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// ListByProduct lists the variants of a product.
func (r *GormProductVariantRepository) ListByProduct(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// Create creates a variant.
func (r *GormProductVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// Update saves a variant.
func (r *GormProductVariantRepository) Update(variant *models.ProductVariant) error {
	return r.db.Save(variant).Error
}

// Delete soft-deletes a variant.
func (r *GormProductVariantRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductVariant{}, id).Error
}

// DeductStock atomically decrements variant stock, guarded so it never
// goes negative. RowsAffected == 0 means insufficient stock.
func (r *GormProductVariantRepository) DeductStock(variantID uint, quantity int) (int64, error) {
	if variantID == 0 || quantity <= 0 {
		return 0, errors.New("invalid variant stock deduct params")
	}
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ? AND stock >= ?", variantID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RestoreStock returns variant stock after a cancellation or return.
func (r *GormProductVariantRepository) RestoreStock(variantID uint, quantity int) (int64, error) {
	if variantID == 0 || quantity <= 0 {
		return 0, errors.New("invalid variant stock restore params")
	}
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// AddStock increases variant stock from a restock operation.
func (r *GormProductVariantRepository) AddStock(variantID uint, quantity int) (int64, error) {
	if variantID == 0 || quantity <= 0 {
		return 0, errors.New("invalid variant stock add params")
	}
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
