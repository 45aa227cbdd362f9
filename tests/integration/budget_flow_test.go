package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestBudgetFlow_CreateAndCheckProgress(t *testing.T) {
	app := setupApp(t)
	app.addIncome(t, 10000000)

	// Step 1: Create a monthly budget of $1,000 for groceries
	rec := app.request("POST", "/api/v1/budgets",
		`{"category":"Groceries","amount":100000,"period":"monthly"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating budget, got %d: %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	budgetID := budget["id"].(string)

	// Step 2: Check progress before any spending
	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/%s/progress", budgetID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	status := parseJSON(t, rec)
	if status["spent"].(float64) != 0 {
		t.Errorf("expected 0 spent before transactions, got %.0f", status["spent"].(float64))
	}
	progress := status["progress"].(map[string]interface{})
	if progress["remaining"].(float64) != 100000 {
		t.Errorf("expected 100000 remaining, got %.0f", progress["remaining"].(float64))
	}

	// Step 3: Spend $300 and $350 on groceries this month
	for _, amount := range []int64{-30000, -35000} {
		rec = app.request("POST", "/api/v1/transactions",
			fmt.Sprintf(`{"description":"Groceries","amount":%d,"category":"Groceries","date":%q}`,
				amount, frozenNow.AddDate(0, 0, -3).Format(time.RFC3339)))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	// Step 4: Progress reflects the month's spending
	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/%s/progress", budgetID), "")
	status = parseJSON(t, rec)
	if status["spent"].(float64) != 65000 {
		t.Errorf("expected 65000 spent, got %.0f", status["spent"].(float64))
	}
	progress = status["progress"].(map[string]interface{})
	if progress["percentage"].(float64) != 65 {
		t.Errorf("expected 65%%, got %.2f%%", progress["percentage"].(float64))
	}
	if progress["is_over_budget"].(bool) {
		t.Error("65%% must not be over budget")
	}
}

func TestBudgetFlow_WarningNotificationOnSpend(t *testing.T) {
	app := setupApp(t)
	app.addIncome(t, 10000000)

	app.request("POST", "/api/v1/budgets",
		`{"category":"Dining","amount":100000,"period":"monthly"}`)

	// Spending to 85% crosses the default 80% warning threshold; the
	// transaction response carries the freshly emitted notifications.
	rec := app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"description":"Dinner","amount":-85000,"category":"Dining","date":%q}`,
			frozenNow.Format(time.RFC3339)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	types := notificationTypes(parseJSON(t, rec))
	if !hasType(types, "budget_warning") {
		t.Errorf("expected a budget_warning notification, got %v", types)
	}
	if hasType(types, "budget_critical") {
		t.Errorf("85%% must not be critical at the default threshold, got %v", types)
	}
}

func TestBudgetFlow_DuplicateCategoryRejected(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/budgets",
		`{"category":"Rent","amount":150000,"period":"monthly"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/budgets",
		`{"category":"Rent","amount":100000,"period":"weekly"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate category, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBudgetFlow_CRUDOperations(t *testing.T) {
	app := setupApp(t)

	// Create
	rec := app.request("POST", "/api/v1/budgets",
		`{"category":"Utilities","amount":15000,"period":"monthly"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(string)

	// Get
	rec = app.request("GET", "/api/v1/budgets/"+budgetID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	if budget["category"] != "Utilities" {
		t.Errorf("expected category 'Utilities', got %v", budget["category"])
	}

	// Update amount and period
	rec = app.request("PUT", "/api/v1/budgets/"+budgetID,
		`{"amount":20000,"period":"weekly"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["budget"].(map[string]interface{})
	if updated["amount"].(float64) != 20000 {
		t.Errorf("expected amount 20000, got %.0f", updated["amount"].(float64))
	}

	// List
	rec = app.request("GET", "/api/v1/budgets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["total_items"].(float64) != 1 {
		t.Error("expected 1 budget in list")
	}

	// Delete
	rec = app.request("DELETE", "/api/v1/budgets/"+budgetID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Verify deleted
	rec = app.request("GET", "/api/v1/budgets/"+budgetID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after deletion, got %d", rec.Code)
	}
}
