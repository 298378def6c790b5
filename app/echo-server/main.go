package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crimeChronicles/app/echo-server/router"
	"crimeChronicles/business/catalog"
	"crimeChronicles/business/category"
	"crimeChronicles/business/favorites"
	"crimeChronicles/business/history"
	"crimeChronicles/business/recommendation"
	"crimeChronicles/internal/middleware"
	psqlRepo "crimeChronicles/internal/repository/postgres"
	redisRepo "crimeChronicles/internal/repository/redis"
	"crimeChronicles/internal/rest"
	"crimeChronicles/pkg/config"
	"crimeChronicles/pkg/database"
	redisdb "crimeChronicles/pkg/database/redis"
	"crimeChronicles/pkg/logger"
	"crimeChronicles/pkg/metrics"
	"crimeChronicles/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Crime Chronicles API", "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() { _ = database.ClosePostgres(db) }()

	logger.Info("Database connected successfully")

	// the catalog cache is optional: without redis every pass reads postgres
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, catalog cache disabled", "error", err)
		redisClient = nil
	}
	defer func() { _ = redisdb.CloseRedisClient(redisClient) }()

	// Init repo
	caseRepo := psqlRepo.NewCaseRepository(db)
	historyRepo := psqlRepo.NewWatchHistoryRepository(db)
	recoConfigRepo := psqlRepo.NewRecommendationConfigRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	favoriteRepo := psqlRepo.NewFavoriteRepository(db)
	catalogCache := redisRepo.NewCatalogCache(redisClient, caseRepo, cfg.Redis.CatalogCacheTTL)

	// Init service
	catalogService := catalog.NewCatalogService(caseRepo, catalogCache)
	historyService := history.NewHistoryService(historyRepo, caseRepo)
	categoryService := category.NewCategoryService(categoryRepo, caseRepo)
	favoriteService := favorites.NewFavoriteService(favoriteRepo, caseRepo)
	recoService := recommendation.NewService(
		catalogCache,
		historyRepo,
		recoConfigRepo,
		recommendation.DefaultWeights(),
		recommendation.Options{
			DefaultLimit: cfg.Recommendation.DefaultLimit,
			MaxLimit:     cfg.Recommendation.MaxLimit,
			HistoryLimit: cfg.Recommendation.HistoryLimit,
			CatalogCap:   cfg.Recommendation.CatalogCap,
		},
	)

	// Init handler
	caseHandler := rest.NewCaseHandler(catalogService)
	historyHandler := rest.NewHistoryHandler(historyService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	favoriteHandler := rest.NewFavoriteHandler(favoriteService)
	recoHandler := rest.NewRecommendationHandler(recoService)
	recoAdminHandler := rest.NewRecommendationAdminHandler(recoService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestTrace())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	router.SetupOpsRoutes(e, cfg.App.Name, cfg.App.Version)
	api := e.Group("/api/v1")
	router.SetupCaseRoutes(api, caseHandler, authRequired, adminOnly)
	router.SetupHistoryRoutes(api, historyHandler, authRequired)
	router.SetupFavoriteRoutes(api, favoriteHandler, authRequired)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, adminOnly)
	router.SetupRecommendationRoutes(api, recoHandler, authRequired)
	router.SetupRecommendationAdminRoutes(api, recoAdminHandler, authRequired, adminOnly)

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

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
