package admin

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

// AdminListOrders lists orders for the back office.
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid created_from", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid created_to", err)
		return
	}

	var customerID uint
	if raw := strings.TrimSpace(c.Query("customer_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			customerID = uint(parsed)
		}
	}

	orders, total, err := h.OrderService.ListOrdersForAdmin(repository.OrderListFilter{
		CustomerID:  customerID,
		PhoneNumber: strings.TrimSpace(c.Query("phone_number")),
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		Wilaya:      strings.TrimSpace(c.Query("wilaya")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
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

// AdminGetOrder fetches one order for the back office.
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrder(uint(id))
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

// UpdateOrderStatusRequest carries the target lifecycle status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var orderStatusUpdateErrorRules = []struct {
	target error
	status int
	msg    string
}{
	{target: service.ErrOrderNotFound, status: http.StatusNotFound, msg: "order not found"},
	{target: service.ErrStatusNotAllowed, status: http.StatusBadRequest, msg: "order status transition not allowed"},
}

// AdminUpdateOrderStatus moves an order along its lifecycle.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "invalid order id", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.UpdateOrderStatus(uint(id), req.Status)
	if err != nil {
		for _, rule := range orderStatusUpdateErrorRules {
			if errors.Is(err, rule.target) {
				respondError(c, rule.status, rule.msg, nil)
				return
			}
		}
		respondError(c, http.StatusInternalServerError, "order status update failed", err)
		return
	}

	response.Success(c, order)
}
