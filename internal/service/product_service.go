package service

import (
	"strings"

	"github.com/souq-next/internal/models"
	"github.com/souq-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService serves the catalog for the storefront and back office.
type ProductService struct {
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

// NewProductService creates a product service.
func NewProductService(productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// ListProducts lists products.
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProduct fetches a product with its variants.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotAvailable
	}
	return product, nil
}

// CreateProductVariantInput carries one variant of a new product.
type CreateProductVariantInput struct {
	Name  string
	Price models.Money
	Stock int
}

// CreateProductInput carries the product creation payload.
type CreateProductInput struct {
	Name        string
	Description string
	Price       models.Money
	Stock       int
	IsAddOn     bool
	IsActive    bool
	Variants    []CreateProductVariantInput
}

// CreateProduct validates and persists a product with its variants.
func (s *ProductService) CreateProduct(input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNotAvailable
	}
	if input.Price.Decimal.LessThan(decimal.Zero) || input.Stock < 0 {
		return nil, ErrProductNotAvailable
	}

	product := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Stock:       input.Stock,
		IsAddOn:     input.IsAddOn,
		IsActive:    input.IsActive,
	}
	for _, variant := range input.Variants {
		variantName := strings.TrimSpace(variant.Name)
		if variantName == "" || variant.Price.Decimal.LessThan(decimal.Zero) || variant.Stock < 0 {
			return nil, ErrVariantNotAvailable
		}
		product.Variants = append(product.Variants, models.ProductVariant{
			Name:     variantName,
			Price:    variant.Price,
			Stock:    variant.Stock,
			IsActive: true,
		})
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// RestockInput carries a restock request. VariantID targets variant
// stock; a zero VariantID targets the product row.
type RestockInput struct {
	ProductID uint
	VariantID uint
	Quantity  int
}

// Restock adds stock to a product or one of its variants.
func (s *ProductService) Restock(input RestockInput) (*models.Product, error) {
	if input.ProductID == 0 || input.Quantity <= 0 {
		return nil, ErrInvalidOrderItem
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotAvailable
	}

	if input.VariantID != 0 {
		variant, err := s.variantRepo.GetByID(input.VariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil || variant.ProductID != product.ID {
			return nil, ErrVariantNotAvailable
		}
		if _, err := s.variantRepo.AddStock(variant.ID, input.Quantity); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.productRepo.AddStock(product.ID, input.Quantity); err != nil {
			return nil, err
		}
	}

	return s.productRepo.GetByID(input.ProductID)
}
