package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
	"github.com/ShababulAlam/quantum-ecommerce/internal/repository"
)

// Seeds the database with a small catalog, a demo promo code, and an admin
// user whose API token is printed to stdout.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cred := &repository.Credentials{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              getEnvAsInt("DB_PORT", 5432),
		User:              getEnv("DB_USER", "postgres"),
		Password:          getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "storefront"),
		MigrationsDirPath: getEnv("MIGRATIONS_PATH", "migrations"),
	}

	repo, err := repository.NewRepository(cred)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.RunMigrations(cred); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()

	products := []domain.Product{
		{Name: "Quantum Hoodie", Slug: "quantum-hoodie", SKU: "QH-001", Price: decimal.NewFromFloat(59.99), Inventory: 120, IsVisible: true, IsFeatured: true},
		{Name: "Entangled Mug", Slug: "entangled-mug", SKU: "EM-002", Price: decimal.NewFromFloat(14.50), Inventory: 300, IsVisible: true},
		{Name: "Superposition Tee", Slug: "superposition-tee", SKU: "ST-003", Price: decimal.NewFromFloat(24.00), Inventory: 200, IsVisible: true, IsFeatured: true},
		{Name: "Wave Function Poster", Slug: "wave-function-poster", SKU: "WP-004", Price: decimal.NewFromFloat(9.99), Inventory: 80, IsVisible: true},
	}
	for i := range products {
		if err := repo.CreateProduct(ctx, &products[i]); err != nil {
			logger.Warn("skipping product", zap.String("slug", products[i].Slug), zap.Error(err))
			continue
		}
		logger.Info("seeded product", zap.String("slug", products[i].Slug))
	}

	sizes := []string{"S", "M", "L", "XL"}
	for _, size := range sizes {
		v := domain.ProductVariant{ProductID: products[0].ID, Name: size, Inventory: 30}
		if err := repo.CreateVariant(ctx, &v); err != nil {
			logger.Warn("skipping variant", zap.String("name", size), zap.Error(err))
		}
	}

	minimum := decimal.NewFromInt(50)
	limit := 100
	promo := domain.PromoCode{
		Code:           "WELCOME10",
		Description:    "10% off your first order over $50",
		DiscountType:   domain.DiscountPercentage,
		DiscountAmount: decimal.NewFromInt(10),
		MinimumAmount:  &minimum,
		StartDate:      time.Now(),
		UsageLimit:     &limit,
		IsActive:       true,
	}
	if err := repo.CreatePromo(ctx, &promo); err != nil {
		logger.Warn("skipping promo", zap.String("code", promo.Code), zap.Error(err))
	} else {
		logger.Info("seeded promo", zap.String("code", promo.Code))
	}

	token := uuid.NewString()
	admin := domain.User{
		Email:   getEnv("ADMIN_EMAIL", "admin@example.com"),
		Name:    "Store Admin",
		IsAdmin: true,
	}
	if err := repo.CreateUser(ctx, &admin, token); err != nil {
		logger.Fatal("failed to create admin user", zap.Error(err))
	}

	fmt.Printf("admin user %s created, API token: %s\n", admin.Email, token)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
