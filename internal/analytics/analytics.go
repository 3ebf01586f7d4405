// Package analytics computes filtered views, KPIs, and chart-ready
// aggregates from session state. Everything here is a pure function
// with no persistence side effects.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aknes122/securitycash/internal/models"
)

const dateLayout = "2006-01-02"

// UncategorizedLabel is the display fallback for transactions whose
// category no longer exists.
const UncategorizedLabel = "Other"

// FilterTransactions applies the records-page filters. An explicit
// StartDate/EndDate range always overrides the fixed period bucket;
// category, search, and type filters are conjunctive.
func FilterTransactions(txs []models.Transaction, f models.Filters, now time.Time) []models.Transaction {
	today := civilDate(now)
	hasRange := f.StartDate != "" || f.EndDate != ""

	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if hasRange {
			// ISO dates compare correctly as strings.
			if f.StartDate != "" && t.Date < f.StartDate {
				continue
			}
			if f.EndDate != "" && t.Date > f.EndDate {
				continue
			}
		} else if !inPeriod(t.Date, f.Period, today) {
			continue
		}

		if f.CategoryID != models.FilterAll && t.CategoryID != f.CategoryID {
			continue
		}
		if f.Search != "" && !containsFold(t.Description, f.Search) {
			continue
		}
		if f.Type != models.FilterAll && t.Type != f.Type {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterByDashboard applies the summary view's own period and range.
func FilterByDashboard(txs []models.Transaction, f models.DashboardFilters, now time.Time) []models.Transaction {
	return FilterTransactions(txs, models.Filters{
		Period:     f.Period,
		CategoryID: models.FilterAll,
		Type:       models.FilterAll,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
	}, now)
}

// civilDate reduces a clock reading to midnight of its calendar date
// in the reading's own zone, re-anchored to UTC so day arithmetic is
// exact. Truncating the instant instead would yield the UTC date,
// which near midnight disagrees with the caller's date and with the
// ISO-string comparisons used for due dates and explicit ranges.
func civilDate(now time.Time) time.Time {
	d, _ := time.Parse(dateLayout, now.Format(dateLayout))
	return d
}

// inPeriod reports whether date falls inside a fixed period bucket
// ending today. "all" and "custom" impose no bucket.
func inPeriod(date string, period models.PeriodFilter, today time.Time) bool {
	var days int
	switch period {
	case models.Period7d:
		days = 7
	case models.Period30d:
		days = 30
	default:
		return true
	}

	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	diff := int(today.Sub(d) / (24 * time.Hour))
	return diff >= 0 && diff <= days
}

// KPISummary holds the dashboard headline numbers.
type KPISummary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	AvgDailySpend    decimal.Decimal `json:"avgDailySpend"`
	TopCategoryID    string          `json:"topCategoryId"`
	TopCategoryTotal decimal.Decimal `json:"topCategoryTotal"`
}

// CalculateKPIs computes totals, average daily spend, and the top
// expense category over an already-filtered transaction list.
//
// The average-daily-spend denominator is fixed at 7 or 30 for those
// periods; for "all" and "custom" it is the day span between the
// earliest and latest transaction dates in the set, minimum 1.
// The top category is the first one to reach the maximum cumulative
// sum in iteration order.
func CalculateKPIs(txs []models.Transaction, period models.PeriodFilter) KPISummary {
	sum := KPISummary{
		TotalIncome:      decimal.Zero,
		TotalExpense:     decimal.Zero,
		AvgDailySpend:    decimal.Zero,
		TopCategoryTotal: decimal.Zero,
	}

	categoryTotals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		switch t.Type {
		case models.TransactionTypeIncome:
			sum.TotalIncome = sum.TotalIncome.Add(t.Amount)
		case models.TransactionTypeExpense:
			sum.TotalExpense = sum.TotalExpense.Add(t.Amount)

			total := categoryTotals[t.CategoryID].Add(t.Amount)
			categoryTotals[t.CategoryID] = total
			if total.GreaterThan(sum.TopCategoryTotal) {
				sum.TopCategoryTotal = total
				sum.TopCategoryID = t.CategoryID
			}
		}
	}

	days := periodDays(txs, period)
	sum.AvgDailySpend = sum.TotalExpense.Div(decimal.NewFromInt(int64(days)))

	return sum
}

func periodDays(txs []models.Transaction, period models.PeriodFilter) int {
	switch period {
	case models.Period7d:
		return 7
	case models.Period30d:
		return 30
	}

	if len(txs) == 0 {
		return 1
	}
	minDate, maxDate := txs[0].Date, txs[0].Date
	for _, t := range txs[1:] {
		if t.Date < minDate {
			minDate = t.Date
		}
		if t.Date > maxDate {
			maxDate = t.Date
		}
	}
	lo, errLo := time.Parse(dateLayout, minDate)
	hi, errHi := time.Parse(dateLayout, maxDate)
	if errLo != nil || errHi != nil {
		return 1
	}
	days := int(hi.Sub(lo) / (24 * time.Hour))
	if days < 1 {
		return 1
	}
	return days
}

// DailyPoint is one bar of the daily expense chart.
type DailyPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// DailyExpenseSeries aggregates expenses per day, sorted by date.
// For the 7d and 30d periods, missing days inside the window are
// zero-filled; for other periods the series is sparse.
func DailyExpenseSeries(txs []models.Transaction, period models.PeriodFilter, now time.Time) []DailyPoint {
	today := civilDate(now)
	daily := make(map[string]decimal.Decimal)

	var windowDays int
	switch period {
	case models.Period7d:
		windowDays = 7
	case models.Period30d:
		windowDays = 30
	}
	for i := 0; i < windowDays; i++ {
		daily[today.AddDate(0, 0, -i).Format(dateLayout)] = decimal.Zero
	}

	for _, t := range txs {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if _, inWindow := daily[t.Date]; !inWindow && windowDays > 0 {
			continue
		}
		daily[t.Date] = daily[t.Date].Add(t.Amount)
	}

	out := make([]DailyPoint, 0, len(daily))
	for date, amount := range daily {
		out = append(out, DailyPoint{Date: date, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CategorySlice is one slice of the category breakdown chart.
type CategorySlice struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// CategoryBreakdown totals expenses per category, sorted descending.
// A dangling category reference resolves to the fallback label, never
// an error.
func CategoryBreakdown(txs []models.Transaction, categories []models.Category) []CategorySlice {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, t := range txs {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if _, seen := totals[t.CategoryID]; !seen {
			order = append(order, t.CategoryID)
		}
		totals[t.CategoryID] = totals[t.CategoryID].Add(t.Amount)
	}

	out := make([]CategorySlice, 0, len(order))
	for _, id := range order {
		out = append(out, CategorySlice{
			Name:  CategoryName(categories, id),
			Total: totals[id],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out
}

// CategoryName resolves a category id to its display name, falling
// back to UncategorizedLabel for dangling references.
func CategoryName(categories []models.Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return UncategorizedLabel
}

// GoalProgress returns the capped progress percent for a goal.
// A zero (or negative) target resolves to 0, never NaN.
func GoalProgress(g models.Goal) int {
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	pct := g.CurrentAmount.
		Div(g.TargetAmount).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

// IsOverdue reports whether a reminder is pending with a due date
// before today. Paid reminders are never overdue regardless of date.
func IsOverdue(r models.Reminder, now time.Time) bool {
	return r.Status == models.ReminderStatusPending &&
		r.DueDate != "" &&
		r.DueDate < now.Format(dateLayout)
}

// containsFold is a case-insensitive substring check.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
