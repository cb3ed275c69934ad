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

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/mnajjaa/banking-agent-simulation-platform/app/echo-server/router"
	"github.com/mnajjaa/banking-agent-simulation-platform/business/abm"
	"github.com/mnajjaa/banking-agent-simulation-platform/business/scenario"
	"github.com/mnajjaa/banking-agent-simulation-platform/business/segmentation"
	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
	"github.com/mnajjaa/banking-agent-simulation-platform/internal/middleware"
	"github.com/mnajjaa/banking-agent-simulation-platform/internal/repository/dataset"
	psqlRepo "github.com/mnajjaa/banking-agent-simulation-platform/internal/repository/postgres"
	redisRepo "github.com/mnajjaa/banking-agent-simulation-platform/internal/repository/redis"
	"github.com/mnajjaa/banking-agent-simulation-platform/internal/rest"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/config"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/database"
	redisdb "github.com/mnajjaa/banking-agent-simulation-platform/pkg/database/redis"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/logger"
	"github.com/mnajjaa/banking-agent-simulation-platform/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting banking scenario simulation API", "version", cfg.App.Version)

	metrics.Init()

	// Optional Postgres: the service runs fully in-memory without it.
	var db *gorm.DB
	if cfg.DatabaseEnabled() {
		db, err = database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		if err := db.AutoMigrate(&domain.Customer{}, &domain.SimulationRun{}); err != nil {
			logger.Fatal("Failed to migrate schema", "error", err)
		}
		logger.Info("Database connected successfully")
	}

	// Feature table: loaded once, read-only afterwards.
	customers, datasetInfo := loadDataset(cfg, db)
	logger.Info("Customer feature table loaded", "source", datasetInfo.Source, "rows", datasetInfo.Rows)

	pop := scenario.BuildPopulation(customers, cfg.Simulation.BaselineChurn)

	knobs := scenario.DefaultKnobs()
	knobs.RiskHighThreshold = cfg.Simulation.RiskHighThreshold
	knobs.RiskMediumThreshold = cfg.Simulation.RiskMediumThreshold
	knobs.SpilloverFraction = cfg.Simulation.SpilloverFraction
	knobs.ChurnSeverity = cfg.Simulation.ChurnSeverity
	knobs.DigitalShield = cfg.Simulation.DigitalShield
	knobs.BaselineChurn = cfg.Simulation.BaselineChurn

	var runRepo scenario.RunRepository
	if db != nil {
		runRepo = psqlRepo.NewRunRepository(db)
	}

	// Optional Redis cache for segmentation results.
	var segCache segmentation.ResultCache
	if cfg.RedisEnabled() {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() {
			_ = redisdb.CloseRedisClient(redisClient)
		}()
		segCache = redisRepo.NewSegmentationCache(redisClient, time.Duration(cfg.Redis.CacheTTLSec)*time.Second)
		logger.Info("Redis connected successfully")
	}

	// Init services
	abmCfg := abm.DefaultConfig()
	abmCfg.DefaultSeed = cfg.Simulation.DefaultSeed

	scenarioService := scenario.NewService(pop, knobs, runRepo)
	abmService := abm.NewService(pop, abmCfg, knobs)
	segmentationService := segmentation.NewService(customers, segCache)

	// Init handlers
	simulationHandler := rest.NewSimulationHandler(scenarioService, abmService)
	segmentationHandler := rest.NewSegmentationHandler(segmentationService)
	adminHandler := rest.NewAdminHandler(datasetInfo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173", "http://localhost:5174"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	router.SetupSimulationRoutes(e, simulationHandler)
	router.SetupSegmentationRoutes(e, segmentationHandler)

	e.GET("/health", rest.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Admin routes only exist when a JWT secret is configured.
	if cfg.JWT.SecretKey != "" {
		authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)
		router.SetupAdminRoutes(e, adminHandler, authRequired, middleware.AdminOnly())
	}

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

// loadDataset resolves the feature table source. "auto" prefers
// Postgres, then the CSV path, then the builtin generated table.
func loadDataset(cfg *config.Config, db *gorm.DB) ([]domain.Customer, rest.DatasetInfo) {
	source := cfg.Dataset.Source

	if (source == "postgres" || source == "auto") && db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		customers, err := psqlRepo.NewCustomerRepository(db).FindAll(ctx)
		if err == nil && len(customers) > 0 {
			return customers, rest.DatasetInfo{Source: "postgres", Rows: len(customers)}
		}
		if source == "postgres" {
			logger.Fatal("Dataset source is postgres but no customers were loaded", "error", err)
		}
		logger.Warn("No customers in postgres, falling back", "error", err)
	}

	if (source == "csv" || source == "auto") && cfg.Dataset.CSVPath != "" {
		customers, err := dataset.LoadCSV(cfg.Dataset.CSVPath)
		if err == nil {
			return customers, rest.DatasetInfo{Source: "csv", Path: cfg.Dataset.CSVPath, Rows: len(customers)}
		}
		if source == "csv" {
			logger.Fatal("Failed to load dataset CSV", "path", cfg.Dataset.CSVPath, "error", err)
		}
		logger.Warn("Failed to load dataset CSV, falling back", "error", err)
	}

	customers := dataset.Builtin(cfg.Dataset.BuiltinSize)
	return customers, rest.DatasetInfo{Source: "builtin", Rows: len(customers)}
}
