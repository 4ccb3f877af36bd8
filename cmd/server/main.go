package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	h "github.com/ShababulAlam/quantum-ecommerce/internal/http"

	"github.com/ShababulAlam/quantum-ecommerce/internal/cache"
	"github.com/ShababulAlam/quantum-ecommerce/internal/events"
	"github.com/ShababulAlam/quantum-ecommerce/internal/media"
	"github.com/ShababulAlam/quantum-ecommerce/internal/payment"
	"github.com/ShababulAlam/quantum-ecommerce/internal/repository"
	"github.com/ShababulAlam/quantum-ecommerce/internal/service"
)

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          int
	DBUser          string
	DBPassword      string
	DBName          string
	MigrationsPath  string
	RedisAddr       string
	RabbitMQURL     string
	UploadsDir      string
	UploadsURLBase  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnvAsInt("DB_PORT", 5432),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "storefront"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RabbitMQURL:     getEnv("RABBITMQ_URL", ""),
		UploadsDir:      getEnv("UPLOADS_DIR", "uploads"),
		UploadsURLBase:  getEnv("UPLOADS_URL_BASE", "/uploads"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
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

func main() {
	cfg := loadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cred := &repository.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsPath,
	}
	repo, err := repository.NewRepository(cred)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.RunMigrations(cred); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	cartCache := cache.NewRedisCache(redisClient)

	// The broker is optional: without RABBITMQ_URL the store runs fine, it
	// just doesn't emit order events.
	var publisher events.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer conn.Close()

		rp, err := events.NewRabbitPublisher(conn)
		if err != nil {
			logger.Fatal("failed to set up rabbitmq publisher", zap.Error(err))
		}
		defer rp.Close()
		publisher = rp
	}

	mediaStore, err := media.NewStore(cfg.UploadsDir, cfg.UploadsURLBase)
	if err != nil {
		logger.Fatal("failed to set up media store", zap.Error(err))
	}
	janitor := media.NewJanitor(mediaStore, repo, logger)

	gateway := payment.NewBreakerGateway(payment.NewSimulatedGateway())

	cartService := service.NewCartService(repo, repo, cartCache, logger)
	promoService := service.NewPromoService(repo)
	checkoutService := service.NewCheckoutService(repo, repo, repo, promoService, gateway, publisher, cartCache, logger)
	productService := service.NewProductService(repo)
	orderService := service.NewOrderService(repo)

	router := h.NewRouter(h.RouterDeps{
		Auth:           h.NewAuthMiddleware(repo, logger),
		Cart:           h.NewCartHandler(cartService, logger),
		Promo:          h.NewPromoHandler(promoService, logger),
		Checkout:       h.NewCheckoutHandler(checkoutService, logger),
		Products:       h.NewProductHandler(productService, logger),
		Orders:         h.NewOrdersHandler(orderService, logger),
		Media:          h.NewMediaHandler(mediaStore, janitor, logger),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
