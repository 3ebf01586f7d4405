package analytics_test

import (
	"testing"
	"time"

	"github.com/Aknes122/securitycash/internal/analytics"
	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/testutil"
)

// now is the fixed clock every test filters against.
var now = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestFilterTransactions(t *testing.T) {
	txs := []models.Transaction{
		testutil.Tx(t, models.TransactionTypeExpense, "2026-08-29", "cat_food", "10").WithID("recent"),
		testutil.Tx(t, models.TransactionTypeExpense, "2026-08-10", "cat_transport", "20").WithID("mid"),
		testutil.Tx(t, models.TransactionTypeIncome, "2026-07-01", "cat_salary", "3000").WithID("old"),
	}

	ids := func(got []models.Transaction) []string {
		out := make([]string, 0, len(got))
		for _, tx := range got {
			out = append(out, tx.ID)
		}
		return out
	}

	t.Run("7d period keeps only the last week", func(t *testing.T) {
		f := models.DefaultFilters()
		f.Period = models.Period7d
		got := analytics.FilterTransactions(txs, f, now)
		if len(got) != 1 || got[0].ID != "recent" {
			t.Errorf("expected [recent], got %v", ids(got))
		}
	})

	t.Run("30d period keeps the last month", func(t *testing.T) {
		got := analytics.FilterTransactions(txs, models.DefaultFilters(), now)
		if len(got) != 2 {
			t.Errorf("expected [recent mid], got %v", ids(got))
		}
	})

	t.Run("all period keeps everything", func(t *testing.T) {
		f := models.DefaultFilters()
		f.Period = models.PeriodAll
		got := analytics.FilterTransactions(txs, f, now)
		if len(got) != 3 {
			t.Errorf("expected all 3, got %v", ids(got))
		}
	})

	t.Run("explicit range overrides the period", func(t *testing.T) {
		// Period says 7d, but the range reaches back to July: the range
		// wins.
		f := models.DefaultFilters()
		f.Period = models.Period7d
		f.StartDate = "2026-07-01"
		f.EndDate = "2026-08-15"
		got := analytics.FilterTransactions(txs, f, now)
		if len(got) != 2 || got[0].ID != "mid" || got[1].ID != "old" {
			t.Errorf("expected [mid old], got %v", ids(got))
		}
	})

	t.Run("open-ended range", func(t *testing.T) {
		f := models.DefaultFilters()
		f.StartDate = "2026-08-20"
		got := analytics.FilterTransactions(txs, f, now)
		if len(got) != 1 || got[0].ID != "recent" {
			t.Errorf("expected [recent], got %v", ids(got))
		}
	})

	t.Run("category and type filters are conjunctive", func(t *testing.T) {
		f := models.DefaultFilters()
		f.Period = models.PeriodAll
		f.CategoryID = "cat_food"
		f.Type = models.TransactionTypeExpense
		got := analytics.FilterTransactions(txs, f, now)
		if len(got) != 1 || got[0].ID != "recent" {
			t.Errorf("expected [recent], got %v", ids(got))
		}

		f.Type = models.TransactionTypeIncome
		if got := analytics.FilterTransactions(txs, f, now); len(got) != 0 {
			t.Errorf("expected nothing for income+cat_food, got %v", ids(got))
		}
	})

	t.Run("search is case-insensitive on description", func(t *testing.T) {
		withDesc := txs[0]
		withDesc.Description = "Morning Coffee"
		f := models.DefaultFilters()
		f.Period = models.PeriodAll
		f.Search = "coffee"
		got := analytics.FilterTransactions([]models.Transaction{withDesc, txs[1]}, f, now)
		if len(got) != 1 || got[0].Description != "Morning Coffee" {
			t.Errorf("expected the coffee transaction, got %v", ids(got))
		}
	})
}

func TestCalculateKPIs(t *testing.T) {
	t.Run("totals split by type", func(t *testing.T) {
		txs := []models.Transaction{
			testutil.Tx(t, models.TransactionTypeIncome, "2026-08-10", "cat_salary", "3000"),
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-11", "cat_food", "100.50"),
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-12", "cat_food", "49.50"),
		}
		sum := analytics.CalculateKPIs(txs, models.Period30d)
		if !sum.TotalIncome.Equal(testutil.Dec(t, "3000")) {
			t.Errorf("income: got %s", sum.TotalIncome)
		}
		if !sum.TotalExpense.Equal(testutil.Dec(t, "150")) {
			t.Errorf("expense: got %s", sum.TotalExpense)
		}
		if !sum.AvgDailySpend.Equal(testutil.Dec(t, "5")) {
			t.Errorf("avg daily over 30d: got %s", sum.AvgDailySpend)
		}
	})

	t.Run("fixed denominator for 7d", func(t *testing.T) {
		txs := []models.Transaction{
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-29", "cat_food", "70"),
		}
		sum := analytics.CalculateKPIs(txs, models.Period7d)
		if !sum.AvgDailySpend.Equal(testutil.Dec(t, "10")) {
			t.Errorf("avg daily over 7d: got %s", sum.AvgDailySpend)
		}
	})

	t.Run("all period divides by the day span", func(t *testing.T) {
		txs := []models.Transaction{
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-01", "cat_food", "30"),
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-11", "cat_food", "70"),
		}
		// Span is 10 days.
		sum := analytics.CalculateKPIs(txs, models.PeriodAll)
		if !sum.AvgDailySpend.Equal(testutil.Dec(t, "10")) {
			t.Errorf("avg daily over span: got %s", sum.AvgDailySpend)
		}
	})

	t.Run("single day span clamps to one", func(t *testing.T) {
		txs := []models.Transaction{
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-11", "cat_food", "70"),
		}
		sum := analytics.CalculateKPIs(txs, models.PeriodAll)
		if !sum.AvgDailySpend.Equal(testutil.Dec(t, "70")) {
			t.Errorf("expected divide-by-one, got %s", sum.AvgDailySpend)
		}
	})

	t.Run("empty input yields zeroes", func(t *testing.T) {
		sum := analytics.CalculateKPIs(nil, models.PeriodAll)
		if !sum.TotalIncome.IsZero() || !sum.TotalExpense.IsZero() || !sum.AvgDailySpend.IsZero() {
			t.Errorf("expected zero summary, got %+v", sum)
		}
		if sum.TopCategoryID != "" {
			t.Errorf("expected no top category, got %q", sum.TopCategoryID)
		}
	})

	t.Run("top category is the largest expense sum", func(t *testing.T) {
		txs := []models.Transaction{
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-10", "cat_food", "30"),
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-11", "cat_transport", "50"),
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-12", "cat_food", "40"),
			testutil.Tx(t, models.TransactionTypeIncome, "2026-08-13", "cat_salary", "9000"),
		}
		sum := analytics.CalculateKPIs(txs, models.Period30d)
		if sum.TopCategoryID != "cat_food" {
			t.Errorf("expected cat_food on 70, got %q", sum.TopCategoryID)
		}
		if !sum.TopCategoryTotal.Equal(testutil.Dec(t, "70")) {
			t.Errorf("expected top total 70, got %s", sum.TopCategoryTotal)
		}
	})

	t.Run("tie goes to the first category to reach the maximum", func(t *testing.T) {
		txs := []models.Transaction{
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-10", "cat_food", "50"),
			testutil.Tx(t, models.TransactionTypeExpense, "2026-08-11", "cat_transport", "50"),
		}
		sum := analytics.CalculateKPIs(txs, models.Period30d)
		if sum.TopCategoryID != "cat_food" {
			t.Errorf("expected first-to-reach cat_food, got %q", sum.TopCategoryID)
		}
	})
}

func TestDailyExpenseSeries(t *testing.T) {
	txs := []models.Transaction{
		testutil.Tx(t, models.TransactionTypeExpense, "2026-08-29", "cat_food", "10"),
		testutil.Tx(t, models.TransactionTypeExpense, "2026-08-29", "cat_food", "5"),
		testutil.Tx(t, models.TransactionTypeExpense, "2026-08-27", "cat_food", "3"),
		testutil.Tx(t, models.TransactionTypeIncome, "2026-08-29", "cat_salary", "100"),
	}

	t.Run("7d window is zero-filled and sorted", func(t *testing.T) {
		series := analytics.DailyExpenseSeries(txs, models.Period7d, now)
		if len(series) != 7 {
			t.Fatalf("expected 7 points, got %d", len(series))
		}
		for i := 1; i < len(series); i++ {
			if series[i-1].Date >= series[i].Date {
				t.Fatalf("series not sorted: %s then %s", series[i-1].Date, series[i].Date)
			}
		}
		byDate := make(map[string]string)
		for _, p := range series {
			byDate[p.Date] = p.Amount.String()
		}
		if byDate["2026-08-29"] != "15" {
			t.Errorf("expected 15 on the 29th, got %s", byDate["2026-08-29"])
		}
		if byDate["2026-08-27"] != "3" {
			t.Errorf("expected 3 on the 27th, got %s", byDate["2026-08-27"])
		}
		if byDate["2026-08-28"] != "0" {
			t.Errorf("expected zero-fill on the 28th, got %s", byDate["2026-08-28"])
		}
	})

	t.Run("all period is sparse", func(t *testing.T) {
		series := analytics.DailyExpenseSeries(txs, models.PeriodAll, now)
		if len(series) != 2 {
			t.Errorf("expected 2 sparse points, got %d", len(series))
		}
	})

	t.Run("income never contributes", func(t *testing.T) {
		series := analytics.DailyExpenseSeries(txs, models.PeriodAll, now)
		for _, p := range series {
			if p.Amount.Equal(testutil.Dec(t, "100")) {
				t.Error("income amount leaked into expense series")
			}
		}
	})
}

func TestCategoryBreakdown(t *testing.T) {
	categories := []models.Category{
		{ID: "cat_food", Name: "Food", Kind: models.TransactionTypeExpense},
		{ID: "cat_transport", Name: "Transport", Kind: models.TransactionTypeExpense},
	}
	txs := []models.Transaction{
		testutil.Tx(t, models.TransactionTypeExpense, "2026-08-10", "cat_transport", "80"),
		testutil.Tx(t, models.TransactionTypeExpense, "2026-08-11", "cat_food", "30"),
		testutil.Tx(t, models.TransactionTypeExpense, "2026-08-12", "cat_deleted", "10"),
		testutil.Tx(t, models.TransactionTypeIncome, "2026-08-13", "cat_salary", "500"),
	}

	got := analytics.CategoryBreakdown(txs, categories)
	if len(got) != 3 {
		t.Fatalf("expected 3 slices, got %d", len(got))
	}
	if got[0].Name != "Transport" || !got[0].Total.Equal(testutil.Dec(t, "80")) {
		t.Errorf("expected Transport/80 first, got %s/%s", got[0].Name, got[0].Total)
	}
	if got[1].Name != "Food" {
		t.Errorf("expected Food second, got %s", got[1].Name)
	}
	// A deleted category renders under the fallback label, never an error.
	if got[2].Name != analytics.UncategorizedLabel {
		t.Errorf("expected %q for the dangling reference, got %q", analytics.UncategorizedLabel, got[2].Name)
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		current string
		want    int
	}{
		{"zero progress", "1000", "0", 0},
		{"half way", "1000", "500", 50},
		{"complete", "1000", "1000", 100},
		{"overfunded caps at 100", "1000", "1500", 100},
		{"zero target is 0 not NaN", "0", "500", 0},
		{"negative target is 0", "-10", "500", 0},
		{"rounds to nearest", "3", "1", 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := models.Goal{
				TargetAmount:  testutil.Dec(t, tt.target),
				CurrentAmount: testutil.Dec(t, tt.current),
			}
			if got := analytics.GoalProgress(g); got != tt.want {
				t.Errorf("expected %d%%, got %d%%", tt.want, got)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		name    string
		dueDate string
		status  models.ReminderStatus
		want    bool
	}{
		{"pending past due", "2026-08-29", models.ReminderStatusPending, true},
		{"pending due today", "2026-08-30", models.ReminderStatusPending, false},
		{"pending due tomorrow", "2026-08-31", models.ReminderStatusPending, false},
		{"paid past due is never overdue", "2026-08-01", models.ReminderStatusPaid, false},
		{"missing due date", "", models.ReminderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := models.Reminder{DueDate: tt.dueDate, Status: tt.status}
			if got := analytics.IsOverdue(r, now); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPeriodsFollowCallersCivilDate(t *testing.T) {
	// 08:00 on Aug 31 in UTC+13 is still Aug 30 in UTC. The period
	// bucket, the chart window, and the overdue check must all agree
	// on the caller's Aug 31, not the UTC date.
	zone := time.FixedZone("UTC+13", 13*60*60)
	localNow := time.Date(2026, 8, 31, 8, 0, 0, 0, zone)

	txs := []models.Transaction{
		testutil.Tx(t, models.TransactionTypeExpense, "2026-08-31", "cat_food", "10").WithID("today"),
	}

	t.Run("today's transaction lands in the 7d bucket", func(t *testing.T) {
		f := models.DefaultFilters()
		f.Period = models.Period7d
		got := analytics.FilterTransactions(txs, f, localNow)
		if len(got) != 1 || got[0].ID != "today" {
			t.Fatalf("expected [today], got %d transactions", len(got))
		}
	})

	t.Run("chart window ends on today's local date", func(t *testing.T) {
		series := analytics.DailyExpenseSeries(txs, models.Period7d, localNow)
		if len(series) != 7 {
			t.Fatalf("expected 7 points, got %d", len(series))
		}
		if last := series[len(series)-1].Date; last != "2026-08-31" {
			t.Errorf("expected window to end on 2026-08-31, got %s", last)
		}
	})

	t.Run("reminder due yesterday local time is overdue", func(t *testing.T) {
		r := models.Reminder{DueDate: "2026-08-30", Status: models.ReminderStatusPending}
		if !analytics.IsOverdue(r, localNow) {
			t.Error("expected overdue")
		}
	})
}
