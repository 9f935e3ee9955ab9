package public

import (
	"errors"
	"net/http"

	"github.com/souq-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error to an HTTP response.
// verbatim rules answer with the wrapped error text, which carries the
// offending SKU or coupon.
type mappedHandlerError struct {
	target   error
	status   int
	msg      string
	verbatim bool
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackStatus int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			msg := rule.msg
			if rule.verbatim {
				msg = err.Error()
			}
			respondError(c, rule.status, msg, nil)
			return
		}
	}
	respondError(c, fallbackStatus, fallbackMsg, err)
}

// Validation failures are the caller's fault; stock and coupon state
// conflicts surface as server-side checkout failures.
var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrOrderFieldMissing, status: http.StatusBadRequest, msg: "required order field missing"},
	{target: service.ErrOrderItemsEmpty, status: http.StatusBadRequest, msg: "order has no items"},
	{target: service.ErrInvalidOrderItem, status: http.StatusBadRequest, msg: "invalid order item"},
	{target: service.ErrAddressRequired, status: http.StatusBadRequest, msg: "detailed address required for home delivery"},
	{target: service.ErrStationRequired, status: http.StatusBadRequest, msg: "station code required for stop desk delivery"},
	{target: service.ErrDeliveryMethodInvalid, status: http.StatusBadRequest, msg: "invalid delivery method"},
	{target: service.ErrShippingPriceInvalid, status: http.StatusBadRequest, msg: "invalid shipping price"},
	{target: service.ErrProductNotAvailable, status: http.StatusBadRequest, msg: "product not available"},
	{target: service.ErrVariantNotAvailable, status: http.StatusBadRequest, msg: "variant not available"},
	{target: service.ErrAddOnNotAvailable, status: http.StatusBadRequest, msg: "add-on not available"},
	{target: service.ErrInsufficientStock, status: http.StatusInternalServerError, msg: "insufficient stock", verbatim: true},
	{target: service.ErrCouponNotFound, status: http.StatusInternalServerError, msg: "coupon not found", verbatim: true},
	{target: service.ErrCouponInactive, status: http.StatusInternalServerError, msg: "coupon inactive", verbatim: true},
	{target: service.ErrCouponInvalid, status: http.StatusInternalServerError, msg: "coupon invalid", verbatim: true},
	{target: service.ErrCouponUsageLimit, status: http.StatusInternalServerError, msg: "coupon usage limit reached", verbatim: true},
}

var couponValidateErrorRules = []mappedHandlerError{
	{target: service.ErrCouponInvalid, status: http.StatusBadRequest, msg: "coupon invalid"},
	{target: service.ErrCouponNotFound, status: http.StatusBadRequest, msg: "coupon not found"},
	{target: service.ErrCouponInactive, status: http.StatusBadRequest, msg: "coupon inactive"},
	{target: service.ErrCouponExpired, status: http.StatusBadRequest, msg: "coupon expired"},
	{target: service.ErrCouponUsageLimit, status: http.StatusBadRequest, msg: "coupon usage limit reached"},
	{target: service.ErrCouponPerUserLimit, status: http.StatusBadRequest, msg: "coupon per-user limit reached"},
	{target: service.ErrCouponMinAmount, status: http.StatusBadRequest, msg: "order amount below coupon minimum"},
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, http.StatusInternalServerError, "order create failed")
}

func respondCouponValidateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, couponValidateErrorRules, http.StatusInternalServerError, "coupon validate failed")
}
