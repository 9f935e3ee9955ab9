package router

import (
	"fmt"
	"strings"

	"github.com/souq-next/internal/cache"
	"github.com/souq-next/internal/config"
	adminhandlers "github.com/souq-next/internal/http/handlers/admin"
	publichandlers "github.com/souq-next/internal/http/handlers/public"
	"github.com/souq-next/internal/logger"
	"github.com/souq-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "souq"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Checkout.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Checkout.RateLimit.MaxRequests,
		Message:       "too many checkout attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)

		apiV1.POST("/orders", RateLimitMiddleware(redisClient, checkoutRule, KeyByIPAndJSONField("phone_number")), publicHandler.PlaceOrder)
		apiV1.GET("/orders", publicHandler.ListOrders)
		apiV1.GET("/orders/:order_no", publicHandler.GetOrder)

		apiV1.POST("/coupons/validate", publicHandler.ValidateCoupon)
	}

	admin := r.Group("/api/v1/admin")
	{
		admin.GET("/orders", adminHandler.AdminListOrders)
		admin.GET("/orders/:id", adminHandler.AdminGetOrder)
		admin.PUT("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)

		admin.GET("/products", adminHandler.AdminListProducts)
		admin.POST("/products", adminHandler.AdminCreateProduct)
		admin.PUT("/products/:id/stock", adminHandler.AdminRestockProduct)

		admin.GET("/coupons", adminHandler.AdminListCoupons)
		admin.POST("/coupons", adminHandler.AdminCreateCoupon)
		admin.PUT("/coupons/:id/active", adminHandler.AdminSetCouponActive)
	}

	return r
}
