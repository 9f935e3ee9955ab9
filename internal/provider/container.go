package provider

import (
	"github.com/souq-next/internal/cache"
	"github.com/souq-next/internal/config"
	"github.com/souq-next/internal/logger"
	"github.com/souq-next/internal/models"
	"github.com/souq-next/internal/queue"
	"github.com/souq-next/internal/repository"
	"github.com/souq-next/internal/service"
)

// Container wires repositories and services for the handlers.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo     repository.ProductRepository
	VariantRepo     repository.ProductVariantRepository
	OrderRepo       repository.OrderRepository
	CouponRepo      repository.CouponRepository
	CouponUsageRepo repository.CouponUsageRepository

	// Services
	ProductService     *service.ProductService
	OrderService       *service.OrderService
	CouponService      *service.CouponService
	CouponAdminService *service.CouponAdminService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	productRepo := repository.NewProductRepository(models.DB)
	variantRepo := repository.NewProductVariantRepository(models.DB)
	orderRepo := repository.NewOrderRepository(models.DB)
	couponRepo := repository.NewCouponRepository(models.DB)
	couponUsageRepo := repository.NewCouponUsageRepository(models.DB)

	return &Container{
		Config:      cfg,
		QueueClient: queueClient,

		ProductRepo:     productRepo,
		VariantRepo:     variantRepo,
		OrderRepo:       orderRepo,
		CouponRepo:      couponRepo,
		CouponUsageRepo: couponUsageRepo,

		ProductService: service.NewProductService(productRepo, variantRepo),
		OrderService: service.NewOrderService(
			orderRepo,
			productRepo,
			variantRepo,
			couponRepo,
			couponUsageRepo,
			queueClient,
			cfg.Order.ExpireMinutes,
		),
		CouponService:      service.NewCouponService(couponRepo, couponUsageRepo),
		CouponAdminService: service.NewCouponAdminService(couponRepo),
	}
}

// Close releases container-held resources.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	cache.Close()
}
