package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"steeraway/internal/config"
	"steeraway/internal/handlers"
	"steeraway/internal/middleware"
	"steeraway/internal/repositories/mongodb"
	"steeraway/internal/services"
	"steeraway/pkg/cache"
	"steeraway/pkg/database"
	"steeraway/pkg/logger"
	"steeraway/pkg/payment"
	"steeraway/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     "json",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.EnsureIndexes(db.Database); err != nil {
		log.WithError(err).Fatal("Failed to create indexes")
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	// Repositories
	carRepo := mongodb.NewCarRepository(db.Database, redisCache, cfg.Redis.CacheTTL)
	bookingRepo := mongodb.NewBookingRepository(db.Database, redisCache)
	userRepo := mongodb.NewUserRepository(db.Database, redisCache)
	reviewRepo := mongodb.NewReviewRepository(db.Database)
	subscriberRepo := mongodb.NewSubscriberRepository(db.Database)

	// Payment gateway
	gateway := newGateway(cfg.Payment)

	// Services
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, cfg.Security.BcryptCost, log)
	carService := services.NewCarService(carRepo, log)
	bookingService := services.NewBookingService(
		bookingRepo, carRepo, userRepo, db, gateway,
		cfg.Payment.Currency,
		cfg.Payment.SuccessURL, cfg.Payment.FailURL, cfg.Payment.CancelURL,
		log,
	)
	reviewService := services.NewReviewService(reviewRepo, carRepo, bookingRepo, db, log)
	dashboardService := services.NewDashboardService(bookingRepo, carRepo, userRepo, subscriberRepo, log)
	newsletterService := services.NewNewsletterService(subscriberRepo, log)

	// Handlers
	h := &routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Car:        handlers.NewCarHandler(carService),
		Booking:    handlers.NewBookingHandler(bookingService),
		Review:     handlers.NewReviewHandler(reviewService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService),
		Newsletter: handlers.NewNewsletterHandler(newsletterService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))

	routes.SetupRoutes(router, h, cfg.Security.JWTSecret)

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.Infof("Starting server on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
}

// newGateway picks the configured payment provider.
func newGateway(cfg *config.PaymentConfig) payment.Gateway {
	switch cfg.DefaultProvider {
	case "stripe":
		return payment.NewStripeProvider(cfg.Stripe.SecretKey)
	case "razorpay":
		return payment.NewRazorpayProvider(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	default:
		return payment.NewAamarPayProvider(
			cfg.AamarPay.StoreID,
			cfg.AamarPay.SignatureKey,
			cfg.AamarPay.InitiateURL,
			cfg.AamarPay.VerifyURL,
		)
	}
}
