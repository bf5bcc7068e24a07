package main

import (
	"context"
	"fmt"
	"log"
	"myStyleCrate/app/echo-server/router"
	"myStyleCrate/business/analytics"
	"myStyleCrate/business/category"
	"myStyleCrate/business/delivery"
	"myStyleCrate/business/marketplace"
	"myStyleCrate/business/product"
	"myStyleCrate/business/recommend"
	"myStyleCrate/business/subscription"
	userService "myStyleCrate/business/user"
	"myStyleCrate/internal/middleware"
	"myStyleCrate/internal/repository/notification"
	psqlRepo "myStyleCrate/internal/repository/postgres"
	redisRepo "myStyleCrate/internal/repository/redis"
	"myStyleCrate/internal/rest"
	"myStyleCrate/pkg/config"
	"myStyleCrate/pkg/database"
	redisdb "myStyleCrate/pkg/database/redis"
	"myStyleCrate/pkg/logger"
	"myStyleCrate/pkg/metrics"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting StyleCrate", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init metrics
	metrics.Init()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	subscriptionRepo := psqlRepo.NewSubscriptionRepository(db)
	swipeRepo := psqlRepo.NewSwipeRepository(db)
	statsRepo := psqlRepo.NewStatsRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	recoCache := redisRepo.NewRecommendationCache(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, swipeRepo, productRepo, validate, mailjetEmail, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	productSvc := product.NewProductService(productRepo)
	categorySvc := category.NewCategoryService(categoryRepo)
	selector := delivery.NewSelector(productRepo)
	subscriptionSvc := subscription.NewSubscriptionService(subscriptionRepo, productRepo, userRepo, selector, mailjetEmail)
	recommendSvc := recommend.NewRecommendService(productRepo, userRepo, swipeRepo, recoCache)
	marketplaceSvc := marketplace.NewMarketplaceService(productRepo, userRepo)
	analyticsSvc := analytics.NewAnalyticsService(statsRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc, tokenRepo)
	productHandler := rest.NewProductHandler(productSvc)
	categoryHandler := rest.NewCategoryHandler(categorySvc)
	subscriptionHandler := rest.NewSubscriptionHandler(subscriptionSvc)
	swipeHandler := rest.NewSwipeHandler(userSvc)
	recommendHandler := rest.NewRecommendHandler(recommendSvc)
	marketplaceHandler := rest.NewMarketplaceHandler(marketplaceSvc)
	analyticsHandler := rest.NewAnalyticsHandler(analyticsSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(tokenRepo)
	adminOnly := middleware.AdminOnly()

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, adminOnly)
	router.SetupSubscriptionRoutes(api, subscriptionHandler, authRequired)
	router.SetupSwipeRoutes(api, swipeHandler, authRequired)
	router.SetupRecommendationRoutes(api, recommendHandler, authRequired)
	router.SetupMarketplaceRoutes(api, marketplaceHandler, authRequired)
	router.SetupAnalyticsRoutes(api, analyticsHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	logger.Info("Server stopped")
}
