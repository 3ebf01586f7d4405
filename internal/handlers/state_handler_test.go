package handlers

import (
	"net/http"
	"testing"
)

func TestStateHandler_GetState(t *testing.T) {
	r := newTestRouter(newTestManager(t))

	rec := doRequest(r, "GET", "/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	state := parseJSON(t, rec)["state"].(map[string]interface{})
	if state["userPlan"] != "basic" {
		t.Errorf("expected basic plan, got %v", state["userPlan"])
	}
	cats := state["categories"].([]interface{})
	if len(cats) == 0 {
		t.Error("expected seed categories in a fresh state")
	}
	filters := state["filters"].(map[string]interface{})
	if filters["period"] != "30d" || filters["categoryId"] != "all" {
		t.Errorf("unexpected default filters: %v", filters)
	}
}

func TestStateHandler_SetPlan(t *testing.T) {
	r := newTestRouter(newTestManager(t))

	rec := doRequest(r, "PUT", "/plan", `{"plan":"pro"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	stateRec := doRequest(r, "GET", "/state", "")
	state := parseJSON(t, stateRec)["state"].(map[string]interface{})
	if state["userPlan"] != "pro" {
		t.Errorf("expected pro after switch, got %v", state["userPlan"])
	}

	rec = doRequest(r, "PUT", "/plan", `{"plan":"platinum"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown plan, got %d", rec.Code)
	}
}

func TestStateHandler_Filters(t *testing.T) {
	r := newTestRouter(newTestManager(t))

	rec := doRequest(r, "PUT", "/filters", `{"period":"7d","search":"coffee"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	state := parseJSON(t, doRequest(r, "GET", "/state", ""))["state"].(map[string]interface{})
	filters := state["filters"].(map[string]interface{})
	if filters["period"] != "7d" || filters["search"] != "coffee" {
		t.Errorf("filter patch not applied: %v", filters)
	}
	if filters["categoryId"] != "all" {
		t.Errorf("unsent filter field changed: %v", filters["categoryId"])
	}

	rec = doRequest(r, "PUT", "/filters", `{"period":"hourly"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown period, got %d", rec.Code)
	}

	rec = doRequest(r, "PUT", "/dashboard-filters", `{"period":"custom","startDate":"2026-08-01","endDate":"2026-08-15"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStateHandler_Records(t *testing.T) {
	r := newTestRouter(newTestManager(t))

	for _, body := range []string{
		`{"type":"expense","date":"2026-01-01","description":"Old rent","categoryId":"cat_housing","amount":"800"}`,
		`{"type":"expense","date":"2099-01-01","description":"Future lunch","categoryId":"cat_food","amount":"10"}`,
	} {
		if rec := doRequest(r, "POST", "/transactions", body); rec.Code != http.StatusCreated {
			t.Fatalf("setup create failed: %d", rec.Code)
		}
	}

	// Default 30d filter hides the old record; the explicit range brings
	// it back.
	records := parseJSON(t, doRequest(r, "GET", "/records", ""))["transactions"].([]interface{})
	for _, raw := range records {
		if raw.(map[string]interface{})["description"] == "Old rent" {
			t.Error("expected the old record filtered out by the 30d default")
		}
	}

	if rec := doRequest(r, "PUT", "/filters", `{"startDate":"2026-01-01","endDate":"2026-01-31"}`); rec.Code != http.StatusOK {
		t.Fatalf("filter update failed: %d", rec.Code)
	}
	records = parseJSON(t, doRequest(r, "GET", "/records", ""))["transactions"].([]interface{})
	if len(records) != 1 || records[0].(map[string]interface{})["description"] != "Old rent" {
		t.Errorf("expected only the old record in range, got %v", records)
	}
}

func TestStateHandler_Dashboard(t *testing.T) {
	r := newTestRouter(newTestManager(t))

	for _, body := range []string{
		`{"type":"income","date":"2026-08-20","description":"Salary","categoryId":"cat_salary","amount":"3000"}`,
		`{"type":"expense","date":"2026-08-21","description":"Groceries","categoryId":"cat_food","amount":"150"}`,
	} {
		if rec := doRequest(r, "POST", "/transactions", body); rec.Code != http.StatusCreated {
			t.Fatalf("setup create failed: %d", rec.Code)
		}
	}
	if rec := doRequest(r, "POST", "/reminders",
		`{"title":"Electricity","dueDate":"2020-01-01","amount":"60"}`); rec.Code != http.StatusCreated {
		t.Fatalf("setup reminder failed: %d", rec.Code)
	}
	if rec := doRequest(r, "POST", "/goals",
		`{"title":"Vacation","targetAmount":"1000","currentAmount":"250"}`); rec.Code != http.StatusCreated {
		t.Fatalf("setup goal failed: %d", rec.Code)
	}
	// Widen the dashboard window so the fixed dates above stay visible.
	if rec := doRequest(r, "PUT", "/dashboard-filters", `{"period":"all"}`); rec.Code != http.StatusOK {
		t.Fatalf("dashboard filter update failed: %d", rec.Code)
	}

	rec := doRequest(r, "GET", "/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)

	kpis := result["kpis"].(map[string]interface{})
	if kpis["totalIncome"] != "3000" {
		t.Errorf("expected income 3000, got %v", kpis["totalIncome"])
	}
	if kpis["totalExpense"] != "150" {
		t.Errorf("expected expense 150, got %v", kpis["totalExpense"])
	}

	// A reminder due in 2020 and still pending counts as overdue.
	if result["overdueReminders"].(float64) != 1 {
		t.Errorf("expected 1 overdue reminder, got %v", result["overdueReminders"])
	}

	goals := result["goals"].([]interface{})
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	if progress := goals[0].(map[string]interface{})["progress"].(float64); progress != 25 {
		t.Errorf("expected 25%% progress, got %v", progress)
	}

	if _, ok := result["dailyExpenses"].([]interface{}); !ok {
		t.Error("expected a dailyExpenses series")
	}
	categories := result["categories"].([]interface{})
	if len(categories) != 1 || categories[0].(map[string]interface{})["name"] != "Food" {
		t.Errorf("expected a single Food slice, got %v", categories)
	}
}

func TestStateHandler_ResetData(t *testing.T) {
	r := newTestRouter(newTestManager(t))

	if rec := doRequest(r, "POST", "/transactions",
		`{"type":"expense","date":"2026-08-10","description":"Lunch","categoryId":"cat_food","amount":"12"}`); rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", rec.Code)
	}

	if rec := doRequest(r, "POST", "/reset", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	state := parseJSON(t, doRequest(r, "GET", "/state", ""))["state"].(map[string]interface{})
	if txs := state["transactions"].([]interface{}); len(txs) != 0 {
		t.Errorf("expected transactions cleared, got %d", len(txs))
	}
	if cats := state["categories"].([]interface{}); len(cats) == 0 {
		t.Error("expected seed categories back after reset")
	}
}
