package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	patternRepo := repositories.NewLearnedPatternRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)
	creditCardRepo := repositories.NewCreditCardRepository(db)
	receiptRepo := repositories.NewReceiptRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	tokenService := services.NewTokenService(&cfg.JWT)
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost, cfg.Security.PasswordMinLength)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, passwordService, tokenService, logger)
	categorizerService := services.NewCategorizerService(transactionRepo, patternRepo, logger)
	statementService := services.NewStatementService(transactionRepo, categorizerService, metrics, logger)
	propagationService := services.NewPropagationService(db, logger)
	aggregationService := services.NewAggregationService(transactionRepo)
	extractionService := services.NewReceiptExtractionService()
	seedGenerator := services.NewSeedGenerator(transactionRepo, logger)

	// Handlers
	healthHandler := handlers.NewHealthCheckHandler(db)
	authHandler := handlers.NewAuthHandler(authService, userRepo)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo, categorizerService, propagationService)
	uploadHandler := handlers.NewUploadHandler(statementService, &cfg.Upload)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, categorizerService, propagationService)
	budgetHandler := handlers.NewBudgetHandler(budgetRepo, aggregationService)
	creditCardHandler := handlers.NewCreditCardHandler(creditCardRepo)
	receiptHandler := handlers.NewReceiptHandler(receiptRepo, transactionRepo, extractionService, &cfg.Upload)
	reportHandler := handlers.NewReportHandler(aggregationService)
	devHandler := handlers.NewDevHandler(transactionRepo, seedGenerator)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/logout", authHandler.Logout)

	requireAuth := middleware.RequireAuth(tokenService)

	me := api.Group("/me", requireAuth)
	me.GET("", authHandler.Me)
	me.PUT("", authHandler.UpdateProfile)

	transactions := api.Group("/transactions", requireAuth)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.DELETE("", transactionHandler.DeleteAll)
	transactions.GET("/similar-count", transactionHandler.SimilarCount)
	transactions.POST("/recurring", transactionHandler.SetRecurring)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)
	transactions.PUT("/:id/category", transactionHandler.UpdateCategory)

	api.POST("/uploads/statements", uploadHandler.Upload, requireAuth)

	categories := api.Group("/categories", requireAuth)
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.POST("/rename", categoryHandler.Rename)
	categories.POST("/suggest", categoryHandler.Suggest)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	api.PUT("/admin/categories", categoryHandler.ReplaceSystemCategories, requireAuth, middleware.RequireAdmin())

	budgets := api.Group("/budgets", requireAuth)
	budgets.POST("", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.GET("/:id", budgetHandler.Get)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	cards := api.Group("/credit-cards", requireAuth)
	cards.POST("", creditCardHandler.Create)
	cards.GET("", creditCardHandler.List)
	cards.PUT("/:id", creditCardHandler.Update)
	cards.DELETE("/:id", creditCardHandler.Delete)

	receipts := api.Group("/receipts", requireAuth)
	receipts.POST("", receiptHandler.Upload)
	receipts.GET("", receiptHandler.List)
	receipts.GET("/:id", receiptHandler.Get)
	receipts.POST("/:id/link", receiptHandler.Link)
	receipts.POST("/:id/extract", receiptHandler.Extract)
	receipts.DELETE("/:id", receiptHandler.Delete)

	reports := api.Group("/reports", requireAuth)
	reports.GET("/categories", reportHandler.Categories)
	reports.GET("/merchants", reportHandler.Merchants)
	reports.GET("/monthly", reportHandler.Monthly)
	reports.GET("/summary", reportHandler.Summary)

	if cfg.Server.Environment == "development" {
		dev := api.Group("/dev", requireAuth)
		dev.POST("/generate-test-data", devHandler.GenerateTestData)
		dev.DELETE("/test-data", devHandler.ClearTestData)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
