package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/souq-next/internal/http/response"
	"github.com/souq-next/internal/models"
	"github.com/souq-next/internal/repository"
	"github.com/souq-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductVariantRequest is one variant of a new product.
type CreateProductVariantRequest struct {
	Name  string       `json:"name" binding:"required"`
	Price models.Money `json:"price"`
	Stock int          `json:"stock"`
}

// CreateProductRequest is the product creation payload.
type CreateProductRequest struct {
	Name        string                        `json:"name" binding:"required"`
	Description string                        `json:"description"`
	Price       models.Money                  `json:"price"`
	Stock       int                           `json:"stock"`
	IsAddOn     bool                          `json:"is_add_on"`
	IsActive    bool                          `json:"is_active"`
	Variants    []CreateProductVariantRequest `json:"variants"`
}

// AdminCreateProduct creates a product with its variants.
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	variants := make([]service.CreateProductVariantInput, 0, len(req.Variants))
	for _, variant := range req.Variants {
		variants = append(variants, service.CreateProductVariantInput{
			Name:  variant.Name,
			Price: variant.Price,
			Stock: variant.Stock,
		})
	}

	product, err := h.ProductService.CreateProduct(service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsAddOn:     req.IsAddOn,
		IsActive:    req.IsActive,
		Variants:    variants,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotAvailable) || errors.Is(err, service.ErrVariantNotAvailable) {
			respondError(c, http.StatusBadRequest, "invalid product payload", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "product create failed", err)
		return
	}

	response.Created(c, product)
}

// AdminListProducts lists the full catalog, inactive rows included.
func (h *Handler) AdminListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.ListProducts(repository.ProductListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "product fetch failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// RestockRequest adds stock to a product or one of its variants.
type RestockRequest struct {
	VariantID uint `json:"variant_id"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// AdminRestockProduct increases stock.
func (h *Handler) AdminRestockProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "invalid product id", nil)
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Quantity <= 0 {
		respondError(c, http.StatusBadRequest, "quantity must be positive", nil)
		return
	}

	product, err := h.ProductService.Restock(service.RestockInput{
		ProductID: uint(id),
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotAvailable):
			respondError(c, http.StatusNotFound, "product not found", nil)
		case errors.Is(err, service.ErrVariantNotAvailable):
			respondError(c, http.StatusBadRequest, "variant not available", nil)
		case errors.Is(err, service.ErrInvalidOrderItem):
			respondError(c, http.StatusBadRequest, "invalid restock payload", nil)
		default:
			respondError(c, http.StatusInternalServerError, "product restock failed", err)
		}
		return
	}

	response.Success(c, product)
}
