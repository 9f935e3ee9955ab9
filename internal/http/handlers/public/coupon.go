package public

import (
	"net/http"

	"github.com/souq-next/internal/http/response"
	"github.com/souq-next/internal/models"

	"github.com/gin-gonic/gin"
)

// ValidateCouponRequest is the storefront coupon check payload.
type ValidateCouponRequest struct {
	Code       string       `json:"code" binding:"required"`
	CustomerID uint         `json:"customer_id"`
	Subtotal   models.Money `json:"subtotal"`
}

// ValidateCoupon runs the full eligibility rules against a cart
// subtotal before checkout.
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	discount, coupon, err := h.CouponService.Validate(req.Code, req.CustomerID, req.Subtotal)
	if err != nil {
		respondCouponValidateError(c, err)
		return
	}

	response.Success(c, gin.H{
		"code":            coupon.Code,
		"discount_type":   coupon.DiscountType,
		"discount_value":  coupon.DiscountValue,
		"discount_amount": discount,
	})
}
