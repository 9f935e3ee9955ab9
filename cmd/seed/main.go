package main

import (
	"time"

	"github.com/souq-next/internal/config"
	"github.com/souq-next/internal/constants"
	"github.com/souq-next/internal/logger"
	"github.com/souq-next/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	products := []models.Product{
		{
			Name:        "Djellaba Homme Premium",
			Description: "Djellaba traditionnelle en laine, coupe moderne.",
			Price:       models.NewMoneyFromInt(5900),
			Stock:       40,
			IsActive:    true,
			Variants: []models.ProductVariant{
				{Name: "M", Price: models.NewMoneyFromInt(5900), Stock: 15, IsActive: true},
				{Name: "L", Price: models.NewMoneyFromInt(5900), Stock: 15, IsActive: true},
				{Name: "XL", Price: models.NewMoneyFromInt(6200), Stock: 10, IsActive: true},
			},
		},
		{
			Name:        "Montre Classique Acier",
			Description: "Montre analogique bracelet acier inoxydable.",
			Price:       models.NewMoneyFromInt(8500),
			Stock:       25,
			IsActive:    true,
		},
		{
			Name:        "Sac a Main Cuir",
			Description: "Sac en cuir veritable, fabrication locale.",
			Price:       models.NewMoneyFromInt(7200),
			Stock:       30,
			IsActive:    true,
			Variants: []models.ProductVariant{
				{Name: "Noir", Price: models.NewMoneyFromInt(7200), Stock: 18, IsActive: true},
				{Name: "Marron", Price: models.NewMoneyFromInt(7200), Stock: 12, IsActive: true},
			},
		},
		{
			Name:        "Emballage Cadeau",
			Description: "Papier cadeau avec ruban et carte.",
			Price:       models.NewMoneyFromInt(300),
			Stock:       200,
			IsAddOn:     true,
			IsActive:    true,
		},
		{
			Name:        "Coffret Parfum Offert",
			Description: "Mini flacon de parfum ajoute a la commande.",
			Price:       models.NewMoneyFromInt(1200),
			Stock:       80,
			IsAddOn:     true,
			IsActive:    true,
		},
	}

	for _, p := range products {
		product := p
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	expiry := time.Now().AddDate(0, 3, 0)
	coupons := []models.Coupon{
		{
			Code:           "BIENVENUE10",
			DiscountType:   constants.DiscountTypePercentage,
			DiscountValue:  models.NewMoneyFromInt(10),
			MinOrderAmount: models.NewMoneyFromInt(3000),
			UsageLimit:     100,
			PerUserLimit:   1,
			ExpiresAt:      &expiry,
			IsActive:       true,
		},
		{
			Code:          "LIVRAISON500",
			DiscountType:  constants.DiscountTypeFixed,
			DiscountValue: models.NewMoneyFromInt(500),
			UsageLimit:    0,
			PerUserLimit:  0,
			IsActive:      true,
		},
	}

	for _, c := range coupons {
		coupon := c
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	stdLog.Println("Seed completed")
}
