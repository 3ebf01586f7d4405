package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Aknes122/securitycash/internal/errors"
	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/session"
)

// GoalHandler handles savings goal requests
type GoalHandler struct {
	sessions *session.Manager
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(sessions *session.Manager) *GoalHandler {
	return &GoalHandler{sessions: sessions}
}

// CreateGoalRequest represents the request payload for creating a goal
type CreateGoalRequest struct {
	Title         string          `json:"title" binding:"required"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline" binding:"omitempty,iso_date"`
}

// UpdateGoalRequest represents the request payload for updating a goal
type UpdateGoalRequest struct {
	Title         *string          `json:"title"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	Deadline      *string          `json:"deadline" binding:"omitempty,iso_date"`
}

// Create handles the creation of a new goal
func (h *GoalHandler) Create(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if !req.TargetAmount.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "targetAmount must be positive"))
		return
	}
	if req.CurrentAmount.IsNegative() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "currentAmount must not be negative"))
		return
	}

	g, err := sess.AddGoal(c.Request.Context(), models.Goal{
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": g})
}

// Update handles a partial update of a goal
func (h *GoalHandler) Update(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.TargetAmount != nil && !req.TargetAmount.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "targetAmount must be positive"))
		return
	}
	if req.CurrentAmount != nil && req.CurrentAmount.IsNegative() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "currentAmount must not be negative"))
		return
	}

	err = sess.UpdateGoal(c.Request.Context(), c.Param("id"), models.GoalPatch{
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Delete handles the deletion of a goal
func (h *GoalHandler) Delete(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := sess.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
