package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Aknes122/securitycash/internal/localstore"
	"github.com/Aknes122/securitycash/internal/session"
	"github.com/Aknes122/securitycash/internal/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Register()
	os.Exit(m.Run())
}

// newTestManager builds a local-only session manager over a temp dir.
// Requests carry no bearer token, so every session is anonymous.
func newTestManager(t *testing.T) *session.Manager {
	t.Helper()

	local, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create local store: %v", err)
	}
	return session.NewManager(local, nil)
}

func newTestRouter(m *session.Manager) *gin.Engine {
	r := gin.New()

	stateHandler := NewStateHandler(m)
	transactionHandler := NewTransactionHandler(m)
	categoryHandler := NewCategoryHandler(m)
	reminderHandler := NewReminderHandler(m)
	goalHandler := NewGoalHandler(m)

	r.GET("/state", stateHandler.GetState)
	r.GET("/records", stateHandler.GetRecords)
	r.GET("/dashboard", stateHandler.GetDashboard)
	r.PUT("/plan", stateHandler.SetPlan)
	r.PUT("/filters", stateHandler.UpdateFilters)
	r.PUT("/dashboard-filters", stateHandler.UpdateDashboardFilters)
	r.POST("/reset", stateHandler.ResetData)
	r.POST("/transactions", transactionHandler.Create)
	r.PUT("/transactions/:id", transactionHandler.Update)
	r.DELETE("/transactions/:id", transactionHandler.Delete)
	r.POST("/categories", categoryHandler.Create)
	r.POST("/reminders", reminderHandler.Create)
	r.POST("/goals", goalHandler.Create)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func TestTransactionHandler_Create(t *testing.T) {
	t.Run("returns 201 with an assigned id", func(t *testing.T) {
		r := newTestRouter(newTestManager(t))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","date":"2026-08-10","description":"Lunch","categoryId":"cat_food","amount":"12.50"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["id"] == "" || tx["id"] == nil {
			t.Error("expected an assigned id")
		}
		if tx["description"] != "Lunch" {
			t.Errorf("expected Lunch, got %v", tx["description"])
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := newTestRouter(newTestManager(t))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"transfer","date":"2026-08-10","description":"x","categoryId":"cat_food","amount":"1"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		r := newTestRouter(newTestManager(t))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","date":"10/08/2026","description":"x","categoryId":"cat_food","amount":"1"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		r := newTestRouter(newTestManager(t))

		for _, amount := range []string{`"0"`, `"-5"`} {
			rec := doRequest(r, "POST", "/transactions",
				`{"type":"expense","date":"2026-08-10","description":"x","categoryId":"cat_food","amount":`+amount+`}`)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("amount %s: expected 400, got %d", amount, rec.Code)
			}
		}
	})
}

func TestTransactionHandler_UpdateAndDelete(t *testing.T) {
	m := newTestManager(t)
	r := newTestRouter(m)

	rec := doRequest(r, "POST", "/transactions",
		`{"type":"expense","date":"2026-08-10","description":"Lunch","categoryId":"cat_food","amount":"12.50"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", rec.Code)
	}
	id := parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)

	t.Run("partial update changes only the sent fields", func(t *testing.T) {
		rec := doRequest(r, "PUT", "/transactions/"+id, `{"description":"Dinner"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		stateRec := doRequest(r, "GET", "/state", "")
		state := parseJSON(t, stateRec)["state"].(map[string]interface{})
		txs := state["transactions"].([]interface{})
		tx := txs[0].(map[string]interface{})
		if tx["description"] != "Dinner" {
			t.Errorf("expected Dinner, got %v", tx["description"])
		}
		if tx["categoryId"] != "cat_food" {
			t.Errorf("unsent field changed: %v", tx["categoryId"])
		}
	})

	t.Run("rejects a negative amount patch", func(t *testing.T) {
		rec := doRequest(r, "PUT", "/transactions/"+id, `{"amount":"-1"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("delete removes the transaction", func(t *testing.T) {
		rec := doRequest(r, "DELETE", "/transactions/"+id, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		stateRec := doRequest(r, "GET", "/state", "")
		state := parseJSON(t, stateRec)["state"].(map[string]interface{})
		if txs := state["transactions"].([]interface{}); len(txs) != 0 {
			t.Errorf("expected empty transactions, got %d", len(txs))
		}
	})
}
