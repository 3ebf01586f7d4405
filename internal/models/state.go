package models

// UserPlan represents the subscription tier
type UserPlan string

const (
	PlanBasic UserPlan = "basic"
	PlanPro   UserPlan = "pro"
)

// PeriodFilter represents a fixed or custom reporting period
type PeriodFilter string

const (
	Period7d     PeriodFilter = "7d"
	Period30d    PeriodFilter = "30d"
	PeriodAll    PeriodFilter = "all"
	PeriodCustom PeriodFilter = "custom"
)

// FilterAll is the sentinel value for "no category/type restriction".
const FilterAll = "all"

// Filters is the per-session, never-persisted-remotely records filter.
// An explicit StartDate/EndDate range always overrides Period.
type Filters struct {
	Period     PeriodFilter    `json:"period"`
	CategoryID string          `json:"categoryId"`
	Search     string          `json:"search"`
	Type       TransactionType `json:"type"` // FilterAll or a concrete type
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
}

// FiltersPatch is a partial update for Filters.
type FiltersPatch struct {
	Period     *PeriodFilter    `json:"period,omitempty"`
	CategoryID *string          `json:"categoryId,omitempty"`
	Search     *string          `json:"search,omitempty"`
	Type       *TransactionType `json:"type,omitempty"`
	StartDate  *string          `json:"startDate,omitempty"`
	EndDate    *string          `json:"endDate,omitempty"`
}

// Apply merges the patch into a copy of the filters.
func (p FiltersPatch) Apply(f Filters) Filters {
	if p.Period != nil {
		f.Period = *p.Period
	}
	if p.CategoryID != nil {
		f.CategoryID = *p.CategoryID
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.StartDate != nil {
		f.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		f.EndDate = *p.EndDate
	}
	return f
}

// DashboardFilters is the summary view's own period selection,
// decoupled from the records-page Filters.
type DashboardFilters struct {
	Period    PeriodFilter `json:"period"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
}

// DashboardFiltersPatch is a partial update for DashboardFilters.
type DashboardFiltersPatch struct {
	Period    *PeriodFilter `json:"period,omitempty"`
	StartDate *string       `json:"startDate,omitempty"`
	EndDate   *string       `json:"endDate,omitempty"`
}

// Apply merges the patch into a copy of the dashboard filters.
func (p DashboardFiltersPatch) Apply(f DashboardFilters) DashboardFilters {
	if p.Period != nil {
		f.Period = *p.Period
	}
	if p.StartDate != nil {
		f.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		f.EndDate = *p.EndDate
	}
	return f
}

// AppState is the aggregate root for one identity session.
type AppState struct {
	Transactions     []Transaction    `json:"transactions"`
	Categories       []Category       `json:"categories"`
	Reminders        []Reminder       `json:"reminders"`
	Goals            []Goal           `json:"goals"`
	Filters          Filters          `json:"filters"`
	DashboardFilters DashboardFilters `json:"dashboardFilters"`
	UserPlan         UserPlan         `json:"userPlan"`
}

// DefaultFilters returns the records-page filter defaults.
func DefaultFilters() Filters {
	return Filters{
		Period:     Period30d,
		CategoryID: FilterAll,
		Search:     "",
		Type:       FilterAll,
		StartDate:  "",
		EndDate:    "",
	}
}

// DefaultDashboardFilters returns the summary view filter defaults.
func DefaultDashboardFilters() DashboardFilters {
	return DashboardFilters{Period: Period30d, StartDate: "", EndDate: ""}
}

// DefaultState returns a fresh AppState for a session with no saved
// data: seed categories, empty collections, basic plan.
func DefaultState() AppState {
	return AppState{
		Transactions:     []Transaction{},
		Categories:       SeedCategories(),
		Reminders:        []Reminder{},
		Goals:            []Goal{},
		Filters:          DefaultFilters(),
		DashboardFilters: DefaultDashboardFilters(),
		UserPlan:         PlanBasic,
	}
}

// Clone returns a copy of the state whose collection slices are
// detached from the receiver. Entity values are plain data, so a
// shallow element copy is enough.
func (s AppState) Clone() AppState {
	out := s
	out.Transactions = append([]Transaction(nil), s.Transactions...)
	out.Categories = append([]Category(nil), s.Categories...)
	out.Reminders = append([]Reminder(nil), s.Reminders...)
	out.Goals = append([]Goal(nil), s.Goals...)
	return out
}
