package public

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/souq-next/internal/service"

	"github.com/gin-gonic/gin"
)

func TestPlaceOrderRequestBind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := `{
		"full_name": "Amine Boudjema",
		"phone_number": "0550123456",
		"wilaya": "Alger",
		"commune": "Bab Ezzouar",
		"delivery_method": "home",
		"detailed_address": "Cite 5 Juillet, Bt 12",
		"shipping_price": "500.00",
		"coupon_code": "PROMO10",
		"items": [
			{"product_id": 1, "variant_id": 3, "quantity": 2, "addons": [{"add_on_id": 5, "quantity": 1}]}
		]
	}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	var payload PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		t.Fatalf("bind place order failed: %v", err)
	}
	if payload.FullName != "Amine Boudjema" || payload.DeliveryMethod != "home" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.ShippingPrice.String() != "500.00" {
		t.Fatalf("shipping price want 500.00 got %s", payload.ShippingPrice.String())
	}
	if len(payload.Items) != 1 || payload.Items[0].VariantID == nil || *payload.Items[0].VariantID != 3 {
		t.Fatalf("unexpected items: %+v", payload.Items)
	}
	if len(payload.Items[0].AddOns) != 1 || payload.Items[0].AddOns[0].AddOnID != 5 {
		t.Fatalf("unexpected add-ons: %+v", payload.Items[0].AddOns)
	}
}

func TestPlaceOrderRequestBindRejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(`{"full_name": "X"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	var payload PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err == nil {
		t.Fatalf("expected bind failure for incomplete payload")
	}
}

func TestCheckoutErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err        error
		wantStatus int
	}{
		{service.ErrOrderItemsEmpty, http.StatusBadRequest},
		{service.ErrAddressRequired, http.StatusBadRequest},
		{service.ErrProductNotAvailable, http.StatusBadRequest},
		{fmt.Errorf("%w: Djellaba / XL", service.ErrInsufficientStock), http.StatusInternalServerError},
		{service.ErrCouponNotFound, http.StatusInternalServerError},
		{service.ErrCouponUsageLimit, http.StatusInternalServerError},
		{service.ErrOrderCreateFailed, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/v1/orders", nil)
		respondCheckoutError(c, tc.err)
		if w.Code != tc.wantStatus {
			t.Errorf("respondCheckoutError(%v) status want %d got %d", tc.err, tc.wantStatus, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"error"`) {
			t.Errorf("response body missing error field: %s", w.Body.String())
		}
	}
}

func TestCheckoutErrorMessageNamesTheSKU(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/orders", nil)

	respondCheckoutError(c, fmt.Errorf("%w: Djellaba / XL", service.ErrInsufficientStock))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status want 500 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Djellaba / XL") {
		t.Fatalf("error message does not name the SKU: %s", w.Body.String())
	}
}

func TestCouponValidateErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, err := range []error{
		service.ErrCouponNotFound,
		service.ErrCouponExpired,
		service.ErrCouponMinAmount,
		service.ErrCouponPerUserLimit,
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/api/v1/coupons/validate", nil)
		respondCouponValidateError(c, err)
		if w.Code != http.StatusBadRequest {
			t.Errorf("respondCouponValidateError(%v) status want 400 got %d", err, w.Code)
		}
	}
}
