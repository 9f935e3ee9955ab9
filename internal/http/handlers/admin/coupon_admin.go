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

// CreateCouponRequest is the coupon creation payload.
type CreateCouponRequest struct {
	Code           string       `json:"code" binding:"required"`
	DiscountType   string       `json:"discount_type" binding:"required"`
	DiscountValue  models.Money `json:"discount_value"`
	MinOrderAmount models.Money `json:"min_order_amount"`
	UsageLimit     int          `json:"usage_limit"`
	PerUserLimit   int          `json:"per_user_limit"`
	ExpiresAt      string       `json:"expires_at"`
	IsActive       *bool        `json:"is_active"`
}

// AdminCreateCoupon creates a coupon.
func (h *Handler) AdminCreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	expiresAt, err := parseTimeNullable(req.ExpiresAt)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid expires_at", err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon, err := h.CouponAdminService.CreateCoupon(service.CreateCouponInput{
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		UsageLimit:     req.UsageLimit,
		PerUserLimit:   req.PerUserLimit,
		ExpiresAt:      expiresAt,
		IsActive:       isActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, http.StatusBadRequest, "invalid coupon payload", nil)
		case errors.Is(err, service.ErrCouponExists):
			respondError(c, http.StatusBadRequest, "coupon code already exists", nil)
		default:
			respondError(c, http.StatusInternalServerError, "coupon create failed", err)
		}
		return
	}

	response.Created(c, coupon)
}

// AdminListCoupons lists coupons for the back office.
func (h *Handler) AdminListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	coupons, total, err := h.CouponAdminService.ListCoupons(repository.CouponListFilter{
		OnlyActive: c.Query("only_active") == "true",
		Code:       strings.TrimSpace(c.Query("code")),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "coupon fetch failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, coupons, pagination)
}

// SetCouponActiveRequest toggles a coupon.
type SetCouponActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// AdminSetCouponActive enables or disables a coupon.
func (h *Handler) AdminSetCouponActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "invalid coupon id", nil)
		return
	}

	var req SetCouponActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	coupon, err := h.CouponAdminService.SetCouponActive(uint(id), *req.IsActive)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			respondError(c, http.StatusNotFound, "coupon not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "coupon update failed", err)
		return
	}

	response.Success(c, coupon)
}
