package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/souq-next/internal/constants"
	"github.com/souq-next/internal/logger"
	"github.com/souq-next/internal/models"
	"github.com/souq-next/internal/queue"
	"github.com/souq-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService owns the order lifecycle, including the atomic checkout
// transactor.
type OrderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	variantRepo   repository.ProductVariantRepository
	couponRepo    repository.CouponRepository
	usageRepo     repository.CouponUsageRepository
	queueClient   *queue.Client
	expireMinutes int
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository, couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository, queueClient *queue.Client, expireMinutes int) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		couponRepo:    couponRepo,
		usageRepo:     usageRepo,
		queueClient:   queueClient,
		expireMinutes: expireMinutes,
	}
}

// PlaceOrderAddOn is an accessory attached to a checkout line.
type PlaceOrderAddOn struct {
	AddOnID  uint
	Quantity int
}

// PlaceOrderItem is one checkout line.
type PlaceOrderItem struct {
	ProductID uint
	VariantID *uint
	Quantity  int
	AddOns    []PlaceOrderAddOn
}

// PlaceOrderInput carries the checkout payload. Prices are never taken
// from the client; every amount is recomputed from the catalog.
type PlaceOrderInput struct {
	CustomerID      uint
	FullName        string
	PhoneNumber     string
	Wilaya          string
	Commune         string
	DeliveryMethod  string
	DetailedAddress string
	DeliveryNote    string
	StationCode     string
	ShippingCompany string
	ShippingPrice   models.Money
	CouponCode      string
	Items           []PlaceOrderItem
}

// stockDemand is an aggregated quantity against one stock row. A zero
// VariantID targets the product row.
type stockDemand struct {
	ProductID uint
	VariantID uint
	Quantity  int
	Label     string
}

type orderBuildResult struct {
	Items    []models.OrderItem
	Demands  []stockDemand
	Subtotal decimal.Decimal
}

// PlaceOrder runs the checkout transactor: validates the payload,
// snapshots catalog prices, applies the coupon and commits the order,
// its lines, the coupon usage and the guarded stock decrements in a
// single transaction. Any failure leaves no trace.
func (s *OrderService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	if err := validatePlaceOrderInput(&input); err != nil {
		return nil, err
	}

	result, err := s.buildOrderItems(input.Items)
	if err != nil {
		return nil, err
	}

	subtotal := models.NewMoneyFromDecimal(result.Subtotal)

	var coupon *models.Coupon
	discount := decimal.Zero
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		coupon, err = s.couponRepo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if coupon == nil {
			return nil, ErrCouponNotFound
		}
		if !coupon.IsActive {
			return nil, ErrCouponInactive
		}
		discountMoney, err := calculateDiscount(coupon, subtotal)
		if err != nil {
			return nil, err
		}
		discount = discountMoney.Decimal
	}

	now := time.Now()
	total := result.Subtotal.Sub(discount).Add(input.ShippingPrice.Decimal)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}

	order := &models.Order{
		OrderNo:         generateOrderNo(),
		CustomerID:      input.CustomerID,
		FullName:        input.FullName,
		PhoneNumber:     input.PhoneNumber,
		Wilaya:          input.Wilaya,
		Commune:         input.Commune,
		DeliveryMethod:  input.DeliveryMethod,
		DetailedAddress: input.DetailedAddress,
		DeliveryNote:    input.DeliveryNote,
		StationCode:     input.StationCode,
		ShippingCompany: input.ShippingCompany,
		ShippingPrice:   input.ShippingPrice,
		Subtotal:        subtotal,
		DiscountTotal:   models.NewMoneyFromDecimal(discount),
		Total:           models.NewMoneyFromDecimal(total),
		Status:          constants.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)

		if err := orderRepo.Create(order, result.Items); err != nil {
			return err
		}

		if coupon != nil {
			couponRepo := s.couponRepo.WithTx(tx)
			usageRepo := s.usageRepo.WithTx(tx)
			usage := &models.CouponUsage{
				CouponID:       coupon.ID,
				UserID:         input.CustomerID,
				OrderID:        order.ID,
				Code:           coupon.Code,
				DiscountType:   coupon.DiscountType,
				DiscountValue:  coupon.DiscountValue,
				DiscountAmount: models.NewMoneyFromDecimal(discount),
				AppliedAt:      now,
			}
			if err := usageRepo.Create(usage); err != nil {
				return err
			}
			affected, err := couponRepo.IncrementUsedCount(coupon.ID)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrCouponUsageLimit
			}
		}

		for _, demand := range result.Demands {
			var affected int64
			var err error
			if demand.VariantID != 0 {
				affected, err = variantRepo.DeductStock(demand.VariantID, demand.Quantity)
			} else {
				affected, err = productRepo.DeductStock(demand.ProductID, demand.Quantity)
			}
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, demand.Label)
			}
		}
		return nil
	})
	if err != nil {
		if isCheckoutBusinessError(err) {
			return nil, err
		}
		logger.Errorw("order_create_failed",
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}

	if s.queueClient != nil && s.expireMinutes > 0 {
		delay := time.Duration(s.expireMinutes) * time.Minute
		if err := s.queueClient.EnqueueOrderExpireCancel(queue.OrderExpireCancelPayload{
			OrderID: order.ID,
		}, delay); err != nil {
			logger.Errorw("order_enqueue_expire_cancel_failed",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"error", err,
			)
		}
	}

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return order, nil
}

func validatePlaceOrderInput(input *PlaceOrderInput) error {
	input.FullName = strings.TrimSpace(input.FullName)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.Wilaya = strings.TrimSpace(input.Wilaya)
	input.Commune = strings.TrimSpace(input.Commune)
	input.DeliveryMethod = strings.ToLower(strings.TrimSpace(input.DeliveryMethod))
	input.DetailedAddress = strings.TrimSpace(input.DetailedAddress)
	input.StationCode = strings.TrimSpace(input.StationCode)
	input.ShippingCompany = strings.TrimSpace(input.ShippingCompany)

	for field, value := range map[string]string{
		"full_name":    input.FullName,
		"phone_number": input.PhoneNumber,
		"wilaya":       input.Wilaya,
		"commune":      input.Commune,
	} {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrOrderFieldMissing, field)
		}
	}

	switch input.DeliveryMethod {
	case constants.DeliveryMethodHome:
		if input.DetailedAddress == "" {
			return ErrAddressRequired
		}
	case constants.DeliveryMethodStopDesk:
		if input.StationCode == "" {
			return ErrStationRequired
		}
	default:
		return ErrDeliveryMethodInvalid
	}

	if input.ShippingPrice.Decimal.LessThan(decimal.Zero) {
		return ErrShippingPriceInvalid
	}

	if len(input.Items) == 0 {
		return ErrOrderItemsEmpty
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return ErrInvalidOrderItem
		}
		if item.VariantID != nil && *item.VariantID == 0 {
			return ErrInvalidOrderItem
		}
		for _, addOn := range item.AddOns {
			if addOn.AddOnID == 0 || addOn.Quantity <= 0 {
				return ErrInvalidOrderItem
			}
		}
	}
	return nil
}

// buildOrderItems snapshots catalog names and prices into order lines
// and aggregates the stock demand per product or variant row. Stock is
// pre-checked here; the guarded decrement inside the transaction is the
// authoritative oversell barrier.
func (s *OrderService) buildOrderItems(items []PlaceOrderItem) (*orderBuildResult, error) {
	productIDs := make([]uint, 0, len(items))
	seen := map[uint]bool{}
	collect := func(id uint) {
		if id != 0 && !seen[id] {
			seen[id] = true
			productIDs = append(productIDs, id)
		}
	}
	for _, item := range items {
		collect(item.ProductID)
		for _, addOn := range item.AddOns {
			collect(addOn.AddOnID)
		}
	}

	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uint]*models.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	demandIndex := map[[2]uint]int{}
	result := &orderBuildResult{Subtotal: decimal.Zero}
	addDemand := func(productID, variantID uint, quantity int, label string) {
		key := [2]uint{productID, variantID}
		if idx, ok := demandIndex[key]; ok {
			result.Demands[idx].Quantity += quantity
			return
		}
		demandIndex[key] = len(result.Demands)
		result.Demands = append(result.Demands, stockDemand{
			ProductID: productID,
			VariantID: variantID,
			Quantity:  quantity,
			Label:     label,
		})
	}

	for _, item := range items {
		product, ok := productMap[item.ProductID]
		if !ok || !product.IsActive {
			return nil, fmt.Errorf("%w: product %d", ErrProductNotAvailable, item.ProductID)
		}

		unitPrice := product.Price.Decimal
		variantName := ""
		if item.VariantID != nil {
			variant, err := s.variantRepo.GetByID(*item.VariantID)
			if err != nil {
				return nil, err
			}
			if variant == nil || variant.ProductID != product.ID || !variant.IsActive {
				return nil, fmt.Errorf("%w: variant %d", ErrVariantNotAvailable, derefUint(item.VariantID))
			}
			unitPrice = variant.Price.Decimal
			variantName = variant.Name
			addDemand(product.ID, variant.ID, item.Quantity, fmt.Sprintf("%s / %s", product.Name, variant.Name))
		} else {
			addDemand(product.ID, 0, item.Quantity, product.Name)
		}

		orderItem := models.OrderItem{
			ProductID:   product.ID,
			VariantID:   item.VariantID,
			ProductName: product.Name,
			VariantName: variantName,
			Quantity:    item.Quantity,
			UnitPrice:   models.NewMoneyFromDecimal(unitPrice),
		}

		addOnUnitSum := decimal.Zero
		for _, addOn := range item.AddOns {
			addOnProduct, ok := productMap[addOn.AddOnID]
			if !ok || !addOnProduct.IsActive || !addOnProduct.IsAddOn {
				return nil, fmt.Errorf("%w: product %d", ErrAddOnNotAvailable, addOn.AddOnID)
			}
			addOnTotal := addOnProduct.Price.Decimal.Mul(decimal.NewFromInt(int64(addOn.Quantity)))
			orderItem.AddOns = append(orderItem.AddOns, models.OrderItemAddOn{
				AddOnID:   addOnProduct.ID,
				Name:      addOnProduct.Name,
				UnitPrice: addOnProduct.Price,
				Quantity:  addOn.Quantity,
				Total:     models.NewMoneyFromDecimal(addOnTotal),
			})
			addOnUnitSum = addOnUnitSum.Add(addOnTotal)
			addDemand(addOnProduct.ID, 0, addOn.Quantity, addOnProduct.Name)
		}

		// Line total folds the add-on charges in before multiplying by
		// the line quantity.
		lineTotal := unitPrice.Add(addOnUnitSum).Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItem.Total = models.NewMoneyFromDecimal(lineTotal)
		result.Subtotal = result.Subtotal.Add(lineTotal)

		result.Items = append(result.Items, orderItem)
	}

	// Pre-check against current stock so obviously doomed orders fail
	// before the transaction opens.
	for _, demand := range result.Demands {
		if demand.VariantID != 0 {
			variant, err := s.variantRepo.GetByID(demand.VariantID)
			if err != nil {
				return nil, err
			}
			if variant == nil || variant.Stock < demand.Quantity {
				return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, demand.Label)
			}
			continue
		}
		product := productMap[demand.ProductID]
		if product == nil || product.Stock < demand.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, demand.Label)
		}
	}

	return result, nil
}

// CancelOrder cancels an order, restoring stock and releasing the
// coupon usage.
func (s *OrderService) CancelOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isTransitionAllowed(order.Status, constants.OrderStatusCancelled) {
		return nil, ErrStatusNotAllowed
	}
	if err := s.releaseOrder(order, constants.OrderStatusCancelled, true); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// CancelExpiredOrder cancels an order that is still pending past its
// expiry window. A no-op when the order moved on already.
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if normalizeOrderStatus(order.Status) != constants.OrderStatusPending {
		return order, nil
	}
	if err := s.releaseOrder(order, constants.OrderStatusCancelled, true); err != nil {
		if errors.Is(err, ErrStatusNotAllowed) {
			// Lost the race to a concurrent transition; nothing to do.
			return s.orderRepo.GetByID(orderID)
		}
		return nil, err
	}
	logger.Infow("order_expired_cancelled",
		"order_id", order.ID,
		"order_no", order.OrderNo,
	)
	return s.orderRepo.GetByID(orderID)
}

// UpdateOrderStatus moves an order along its lifecycle. Entering
// CANCELLED or RETURNED hands the stock back; cancellation also
// releases the coupon usage.
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	target := normalizeOrderStatus(targetStatus)
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrStatusNotAllowed
	}

	if statusRestoresStock(target) {
		releaseCoupon := target == constants.OrderStatusCancelled
		if err := s.releaseOrder(order, target, releaseCoupon); err != nil {
			return nil, err
		}
	} else {
		updates := map[string]interface{}{"updated_at": time.Now()}
		affected, err := s.orderRepo.UpdateStatus(order.ID, order.Status, target, updates)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrStatusNotAllowed
		}
	}

	logger.Infow("order_status_updated",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"from", order.Status,
		"to", target,
	)
	return s.orderRepo.GetByID(orderID)
}

// releaseOrder restores stock for every line and add-on, optionally
// releases the coupon usage, and writes the target status, all in one
// transaction.
func (s *OrderService) releaseOrder(order *models.Order, targetStatus string, releaseCoupon bool) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)

		for _, item := range order.Items {
			if item.VariantID != nil {
				if _, err := variantRepo.RestoreStock(*item.VariantID, item.Quantity); err != nil {
					return err
				}
			} else {
				if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			for _, addOn := range item.AddOns {
				if _, err := productRepo.RestoreStock(addOn.AddOnID, addOn.Quantity); err != nil {
					return err
				}
			}
		}

		if releaseCoupon {
			usageRepo := s.usageRepo.WithTx(tx)
			usage, err := usageRepo.GetByOrderID(order.ID)
			if err != nil {
				return err
			}
			if usage != nil {
				couponRepo := s.couponRepo.WithTx(tx)
				if err := usageRepo.DeleteByOrderID(order.ID); err != nil {
					return err
				}
				if _, err := couponRepo.DecrementUsedCount(usage.CouponID); err != nil {
					return err
				}
			}
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		affected, err := orderRepo.UpdateStatus(order.ID, order.Status, targetStatus, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			// The order moved on since it was loaded; roll the stock
			// restores back rather than restoring twice.
			return ErrStatusNotAllowed
		}
		return nil
	})
}

// GetOrder fetches an order by ID.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByNo fetches an order by its public number.
func (s *OrderService) GetOrderByNo(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByPhone lists a customer's orders.
func (s *OrderService) ListOrdersByPhone(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if strings.TrimSpace(filter.PhoneNumber) == "" {
		return nil, 0, fmt.Errorf("%w: phone_number", ErrOrderFieldMissing)
	}
	return s.orderRepo.ListByPhone(filter)
}

// ListOrdersForAdmin lists orders for the back office.
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

func isCheckoutBusinessError(err error) bool {
	for _, target := range []error{
		ErrInsufficientStock,
		ErrCouponUsageLimit,
		ErrCouponNotFound,
		ErrCouponInactive,
		ErrCouponInvalid,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func derefUint(v *uint) uint {
	if v == nil {
		return 0
	}
	return *v
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("SQ%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
