package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/souq-next/internal/constants"
	"github.com/souq-next/internal/models"

	"gorm.io/gorm"
)

// OrderListFilter filters the order listing.
type OrderListFilter struct {
	CustomerID  uint
	PhoneNumber string
	Status      string
	OrderNo     string
	Wilaya      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	PageSize    int
}

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	ListByPhone(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	ListExpiredPending(before time.Time, limit int) ([]models.Order, error)
	UpdateStatus(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.Preload("Items").Preload("Items.AddOns").Preload("CouponUsage")
}

// Create creates an order with its lines and their add-ons. Items must
// carry their AddOns; IDs are assigned as each level is inserted.
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
		addOns := items[i].AddOns
		items[i].AddOns = nil
		if err := r.db.Create(&items[i]).Error; err != nil {
			return err
		}
		for j := range addOns {
			addOns[j].OrderItemID = items[i].ID
		}
		if len(addOns) > 0 {
			if err := r.db.Create(&addOns).Error; err != nil {
				return err
			}
		}
		items[i].AddOns = addOns
	}
	order.Items = items
	return nil
}

// GetByID fetches an order with its lines, add-ons and coupon usage.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo fetches an order by its public number.
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(r.db).Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByPhone lists a customer's orders by phone number.
func (r *GormOrderRepository) ListByPhone(filter OrderListFilter) ([]models.Order, int64, error) {
	phone := strings.TrimSpace(filter.PhoneNumber)
	query := r.db.Model(&models.Order{}).Where("phone_number = ?", phone)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := r.withDetails(query).Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAdmin lists orders for the back office.
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})

	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if phone := strings.TrimSpace(filter.PhoneNumber); phone != "" {
		query = query.Where("phone_number = ?", phone)
	}
	if filter.Wilaya != "" {
		query = query.Where("wilaya = ?", filter.Wilaya)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := r.withDetails(query).Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListExpiredPending lists pending orders created before the cutoff,
// used by the expiry worker.
func (r *GormOrderRepository) ListExpiredPending(before time.Time, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var orders []models.Order
	if err := r.db.Where("status = ? AND created_at < ?", constants.OrderStatusPending, before).
		Order("id asc").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus moves the order status with optional extra columns,
// guarded on the expected current status so two racing transitions
// cannot both apply. RowsAffected == 0 means the order moved on.
func (r *GormOrderRepository) UpdateStatus(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
