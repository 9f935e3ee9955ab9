package public

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

// OrderAddOnRequest is one accessory on a checkout line.
type OrderAddOnRequest struct {
	AddOnID  uint `json:"add_on_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// OrderItemRequest is one checkout line.
type OrderItemRequest struct {
	ProductID uint                `json:"product_id" binding:"required"`
	VariantID *uint               `json:"variant_id"`
	Quantity  int                 `json:"quantity" binding:"required"`
	AddOns    []OrderAddOnRequest `json:"addons"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	CustomerID      uint               `json:"customer_id"`
	FullName        string             `json:"full_name" binding:"required"`
	PhoneNumber     string             `json:"phone_number" binding:"required"`
	Wilaya          string             `json:"wilaya" binding:"required"`
	Commune         string             `json:"commune" binding:"required"`
	DeliveryMethod  string             `json:"delivery_method" binding:"required"`
	DetailedAddress string             `json:"detailed_address"`
	DeliveryNote    string             `json:"delivery_note"`
	StationCode     string             `json:"station_code"`
	ShippingCompany string             `json:"shipping_company"`
	ShippingPrice   models.Money       `json:"shipping_price"`
	CouponCode      string             `json:"coupon_code"`
	Items           []OrderItemRequest `json:"items" binding:"required"`
}

// PlaceOrder handles checkout.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	items := make([]service.PlaceOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		addOns := make([]service.PlaceOrderAddOn, 0, len(item.AddOns))
		for _, addOn := range item.AddOns {
			addOns = append(addOns, service.PlaceOrderAddOn{
				AddOnID:  addOn.AddOnID,
				Quantity: addOn.Quantity,
			})
		}
		items = append(items, service.PlaceOrderItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			AddOns:    addOns,
		})
	}

	order, err := h.OrderService.PlaceOrder(service.PlaceOrderInput{
		CustomerID:      req.CustomerID,
		FullName:        req.FullName,
		PhoneNumber:     req.PhoneNumber,
		Wilaya:          req.Wilaya,
		Commune:         req.Commune,
		DeliveryMethod:  req.DeliveryMethod,
		DetailedAddress: req.DetailedAddress,
		DeliveryNote:    req.DeliveryNote,
		StationCode:     req.StationCode,
		ShippingCompany: req.ShippingCompany,
		ShippingPrice:   req.ShippingPrice,
		CouponCode:      req.CouponCode,
		Items:           items,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.Created(c, order)
}

// GetOrder fetches one order by its public number.
func (h *Handler) GetOrder(c *gin.Context) {
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, http.StatusBadRequest, "order number required", nil)
		return
	}

	order, err := h.OrderService.GetOrderByNo(orderNo)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "order not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "order fetch failed", err)
		return
	}

	response.Success(c, order)
}

// ListOrders lists a customer's orders by phone number.
func (h *Handler) ListOrders(c *gin.Context) {
	phone := strings.TrimSpace(c.Query("phone_number"))
	if phone == "" {
		respondError(c, http.StatusBadRequest, "phone number required", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersByPhone(repository.OrderListFilter{
		PhoneNumber: phone,
		Status:      strings.TrimSpace(c.Query("status")),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "order fetch failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, orders, pagination)
}
