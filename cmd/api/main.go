package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/clock"
	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"
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

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	clk := clock.System{}
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db, transactionService, clk)
	goalService := services.NewGoalService(db)
	debtService := services.NewDebtService(db, clk)
	recurringService := services.NewRecurringService(db)
	notificationService := services.NewNotificationService(db)
	settingsService := services.NewSettingsService(db)
	alertService := services.NewAlertService(db, transactionService, settingsService, notificationService, clk)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService, alertService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, alertService)
	goalHandler := handlers.NewGoalHandler(goalService, alertService)
	debtHandler := handlers.NewDebtHandler(debtService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, alertService, clk)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	alertHandler := handlers.NewAlertHandler(alertService)

	// Background tick: catch up recurring transactions that came due while
	// the process was idle, then re-run rule evaluation.
	ticker := time.NewTicker(appConfig.EvaluationInterval)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			if _, err := recurringService.ProcessDue(clk.Now()); err != nil {
				log.Errorw("recurring catch-up failed", "error", err)
				continue
			}
			if _, err := alertService.Evaluate(); err != nil {
				log.Errorw("alert evaluation failed", "error", err)
			}
		}
	}()

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

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudgetByID)
	budgets.GET("/:id/progress", budgetHandler.GetBudgetStatus)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Goal routes
	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.GET("/:id/progress", goalHandler.GetGoalStatus)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/contribute", goalHandler.Contribute)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Debt routes
	debts := v1.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.GET("/:id", debtHandler.GetDebtByID)
	debts.GET("/:id/progress", debtHandler.GetDebtStatus)
	debts.GET("/:id/schedule", debtHandler.GetAmortizationSchedule)
	debts.POST("/:id/payments", debtHandler.RecordPayment)
	debts.DELETE("/:id", debtHandler.DeleteDebt)

	// Recurring transaction routes
	recurring := v1.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.GET("/:id", recurringHandler.GetRecurringByID)
	recurring.PUT("/:id/active", recurringHandler.SetActive)
	recurring.POST("/process", recurringHandler.ProcessDue)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)

	// Notification routes
	notifications := v1.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)

	// Settings routes
	settings := v1.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)

	// Manual evaluation trigger
	v1.POST("/alerts/evaluate", alertHandler.Evaluate)

	log.Infof("Starting Fintrack backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
