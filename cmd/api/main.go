package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Aknes122/securitycash/internal/config"
	"github.com/Aknes122/securitycash/internal/database"
	"github.com/Aknes122/securitycash/internal/handlers"
	"github.com/Aknes122/securitycash/internal/localstore"
	"github.com/Aknes122/securitycash/internal/logger"
	"github.com/Aknes122/securitycash/internal/middleware"
	"github.com/Aknes122/securitycash/internal/remote"
	"github.com/Aknes122/securitycash/internal/session"
	"github.com/Aknes122/securitycash/internal/validator"
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

	// Local blob store (anonymous sessions and the migration source)
	local, err := localstore.New(appConfig.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}

	// Remote collection store, unless running local-only
	var store *remote.Store
	if appConfig.StorageMode == config.StorageModeRemote {
		dbManager, err := database.NewManager(database.NewConfig(appConfig))
		if err != nil {
			return fmt.Errorf("failed to create database manager: %w", err)
		}
		if err := dbManager.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
		store = remote.NewStore(dbManager.DB())
	} else {
		log.Info("Running in local-only storage mode")
	}

	sessions := session.NewManager(local, store)

	// Initialize handlers
	stateHandler := handlers.NewStateHandler(sessions)
	transactionHandler := handlers.NewTransactionHandler(sessions)
	categoryHandler := handlers.NewCategoryHandler(sessions)
	reminderHandler := handlers.NewReminderHandler(sessions)
	goalHandler := handlers.NewGoalHandler(sessions)

	// Register custom binding validators
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Identity())

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

	v1.GET("/state", stateHandler.GetState)
	v1.GET("/records", stateHandler.GetRecords)
	v1.GET("/dashboard", stateHandler.GetDashboard)
	v1.PUT("/plan", stateHandler.SetPlan)
	v1.PUT("/filters", stateHandler.UpdateFilters)
	v1.PUT("/dashboard-filters", stateHandler.UpdateDashboardFilters)
	v1.POST("/reset", stateHandler.ResetData)
	v1.DELETE("/account", stateHandler.DeleteAccount)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.Create)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	reminders := v1.Group("/reminders")
	reminders.POST("", reminderHandler.Create)
	reminders.PUT("/:id", reminderHandler.Update)
	reminders.DELETE("/:id", reminderHandler.Delete)

	goals := v1.Group("/goals")
	goals.POST("", goalHandler.Create)
	goals.PUT("/:id", goalHandler.Update)
	goals.DELETE("/:id", goalHandler.Delete)

	log.Infof("Starting securitycash backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
