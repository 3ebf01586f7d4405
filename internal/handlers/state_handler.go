package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aknes122/securitycash/internal/analytics"
	apperrors "github.com/Aknes122/securitycash/internal/errors"
	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/session"
)

// StateHandler exposes the session state, filters, plan, and the
// derived dashboard views.
type StateHandler struct {
	sessions *session.Manager
}

// NewStateHandler creates a new StateHandler
func NewStateHandler(sessions *session.Manager) *StateHandler {
	return &StateHandler{sessions: sessions}
}

// GetState returns the full state snapshot for the caller's session.
func (h *StateHandler) GetState(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": sess.State()})
}

// SetPlanRequest represents the request payload for switching plans
type SetPlanRequest struct {
	Plan models.UserPlan `json:"plan" binding:"required,user_plan"`
}

// SetPlan switches the subscription tier.
func (h *StateHandler) SetPlan(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := sess.SetPlan(c.Request.Context(), req.Plan); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UpdateFiltersRequest represents a partial records-page filter change
type UpdateFiltersRequest struct {
	Period     *models.PeriodFilter    `json:"period" binding:"omitempty,period_filter"`
	CategoryID *string                 `json:"categoryId"`
	Search     *string                 `json:"search"`
	Type       *models.TransactionType `json:"type"`
	StartDate  *string                 `json:"startDate" binding:"omitempty,iso_date"`
	EndDate    *string                 `json:"endDate" binding:"omitempty,iso_date"`
}

// UpdateFilters merges a partial filter change into the session.
func (h *StateHandler) UpdateFilters(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	err = sess.UpdateFilters(models.FiltersPatch{
		Period:     req.Period,
		CategoryID: req.CategoryID,
		Search:     req.Search,
		Type:       req.Type,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UpdateDashboardFiltersRequest represents a partial summary filter change
type UpdateDashboardFiltersRequest struct {
	Period    *models.PeriodFilter `json:"period" binding:"omitempty,period_filter"`
	StartDate *string              `json:"startDate" binding:"omitempty,iso_date"`
	EndDate   *string              `json:"endDate" binding:"omitempty,iso_date"`
}

// UpdateDashboardFilters merges a partial dashboard filter change.
func (h *StateHandler) UpdateDashboardFilters(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDashboardFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	err = sess.UpdateDashboardFilters(models.DashboardFiltersPatch{
		Period:    req.Period,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetRecords returns the filtered transaction list for the records page.
func (h *StateHandler) GetRecords(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	st := sess.State()
	filtered := analytics.FilterTransactions(st.Transactions, st.Filters, time.Now())
	c.JSON(http.StatusOK, gin.H{"transactions": filtered})
}

// GetDashboard returns KPIs and chart-ready aggregates computed over
// the dashboard filters.
func (h *StateHandler) GetDashboard(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	st := sess.State()
	now := time.Now()
	filtered := analytics.FilterByDashboard(st.Transactions, st.DashboardFilters, now)

	overdue := 0
	for _, r := range st.Reminders {
		if analytics.IsOverdue(r, now) {
			overdue++
		}
	}

	goals := make([]gin.H, 0, len(st.Goals))
	for _, g := range st.Goals {
		goals = append(goals, gin.H{"goal": g, "progress": analytics.GoalProgress(g)})
	}

	c.JSON(http.StatusOK, gin.H{
		"kpis":             analytics.CalculateKPIs(filtered, st.DashboardFilters.Period),
		"dailyExpenses":    analytics.DailyExpenseSeries(filtered, st.DashboardFilters.Period, now),
		"categories":       analytics.CategoryBreakdown(filtered, st.Categories),
		"overdueReminders": overdue,
		"goals":            goals,
	})
}

// ResetData clears the caller's backing store and reseeds defaults.
func (h *StateHandler) ResetData(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := sess.ResetData(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteAccount clears the caller's local cache and drops the session
// back to anonymous defaults. Remote rows are not deleted.
func (h *StateHandler) DeleteAccount(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := sess.DeleteAccount(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
