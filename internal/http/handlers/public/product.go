package public

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/souq-next/internal/http/response"
	"github.com/souq-next/internal/repository"
	"github.com/souq-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts lists the active catalog.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		OnlyActive: true,
		Search:     strings.TrimSpace(c.Query("search")),
		Page:       page,
		PageSize:   pageSize,
	}
	if raw := strings.TrimSpace(c.Query("is_add_on")); raw != "" {
		isAddOn := raw == "true" || raw == "1"
		filter.IsAddOn = &isAddOn
	}

	products, total, err := h.ProductService.ListProducts(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "product fetch failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct fetches one product with its variants.
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "invalid product id", nil)
		return
	}

	product, err := h.ProductService.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotAvailable) {
			respondError(c, http.StatusNotFound, "product not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "product fetch failed", err)
		return
	}

	response.Success(c, product)
}
