package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"lendana/internal/config"
	"lendana/internal/database"
	"lendana/internal/handlers"
	"lendana/internal/loan"
	"lendana/internal/logger"
	"lendana/internal/middleware"
	"lendana/internal/services"
	"lendana/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	underwriter := loan.NewUnderwriter(loan.NewCatalog())
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	loanService := services.NewLoanService(db, underwriter, auditService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	loanHandler := handlers.NewLoanHandler(loanService)
	calculatorHandler := handlers.NewCalculatorHandler()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// EMI calculator is public: pricing a loan requires no account
	v1.POST("/calculator", calculatorHandler.Calculate)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Loan routes
	loans := protected.Group("/loans")
	loans.POST("", loanHandler.Apply)
	loans.GET("", loanHandler.GetLoans)
	loans.GET("/summary", loanHandler.GetSummary)
	loans.GET("/:id", loanHandler.GetLoan)
	loans.GET("/:id/schedule", loanHandler.GetSchedule)

	// Start server
	addr := ":" + appConfig.Port
	log.Infof("Starting server on %s", addr)
	return router.Run(addr)
}
