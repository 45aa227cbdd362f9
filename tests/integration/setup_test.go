package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/clock"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

// frozenNow pins every test to the same instant so calendar windows and
// reminder lead days are deterministic.
var frozenNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Transaction{},
		&models.Budget{},
		&models.Goal{},
		&models.Debt{},
		&models.RecurringTransaction{},
		&models.Notification{},
		&models.NotificationLatch{},
		&models.NotificationSettings{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite and a frozen clock.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	clk := clock.Fixed{T: frozenNow}

	// Services
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db, transactionService, clk)
	goalService := services.NewGoalService(db)
	debtService := services.NewDebtService(db, clk)
	recurringService := services.NewRecurringService(db)
	notificationService := services.NewNotificationService(db)
	settingsService := services.NewSettingsService(db)
	alertService := services.NewAlertService(db, transactionService, settingsService, notificationService, clk)

	// Handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService, alertService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, alertService)
	goalHandler := handlers.NewGoalHandler(goalService, alertService)
	debtHandler := handlers.NewDebtHandler(debtService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, alertService, clk)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	alertHandler := handlers.NewAlertHandler(alertService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudgetByID)
	budgets.GET("/:id/progress", budgetHandler.GetBudgetStatus)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.GET("/:id/progress", goalHandler.GetGoalStatus)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/contribute", goalHandler.Contribute)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	debts := v1.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.GET("/:id", debtHandler.GetDebtByID)
	debts.GET("/:id/progress", debtHandler.GetDebtStatus)
	debts.GET("/:id/schedule", debtHandler.GetAmortizationSchedule)
	debts.POST("/:id/payments", debtHandler.RecordPayment)
	debts.DELETE("/:id", debtHandler.DeleteDebt)

	recurring := v1.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.GET("/:id", recurringHandler.GetRecurringByID)
	recurring.PUT("/:id/active", recurringHandler.SetActive)
	recurring.POST("/process", recurringHandler.ProcessDue)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)

	notifications := v1.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)

	settings := v1.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)

	v1.POST("/alerts/evaluate", alertHandler.Evaluate)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// addIncome seeds the ledger with a healthy balance dated in the previous
// month, so low-balance rules stay quiet unless a test wants them.
func (app *testApp) addIncome(t *testing.T, amount int64) {
	t.Helper()
	date := frozenNow.AddDate(0, -1, 0)
	rec := app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"description":"Salary","amount":%d,"category":"Income","date":%q}`,
			amount, date.Format(time.RFC3339)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("seeding income failed: %d %s", rec.Code, rec.Body.String())
	}
}

// notificationTypes extracts the "type" of each notification in a response list.
func notificationTypes(result map[string]interface{}) []string {
	raw, ok := result["notifications"].([]interface{})
	if !ok {
		return nil
	}
	types := make([]string, 0, len(raw))
	for _, item := range raw {
		n := item.(map[string]interface{})
		types = append(types, n["type"].(string))
	}
	return types
}

func hasType(types []string, want string) bool {
	for _, typ := range types {
		if typ == want {
			return true
		}
	}
	return false
}
