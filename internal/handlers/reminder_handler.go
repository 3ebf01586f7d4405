package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Aknes122/securitycash/internal/errors"
	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/session"
)

// ReminderHandler handles bill reminder requests
type ReminderHandler struct {
	sessions *session.Manager
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(sessions *session.Manager) *ReminderHandler {
	return &ReminderHandler{sessions: sessions}
}

// CreateReminderRequest represents the request payload for creating a reminder
type CreateReminderRequest struct {
	Title   string                `json:"title" binding:"required"`
	DueDate string                `json:"dueDate" binding:"required,iso_date"`
	Amount  decimal.Decimal       `json:"amount"`
	Status  models.ReminderStatus `json:"status" binding:"omitempty,reminder_status"`
}

// UpdateReminderRequest represents the request payload for updating a reminder
type UpdateReminderRequest struct {
	Title   *string                `json:"title"`
	DueDate *string                `json:"dueDate" binding:"omitempty,iso_date"`
	Amount  *decimal.Decimal       `json:"amount"`
	Status  *models.ReminderStatus `json:"status" binding:"omitempty,reminder_status"`
}

// Create handles the creation of a new reminder
func (h *ReminderHandler) Create(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if !req.Amount.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive"))
		return
	}
	if req.Status == "" {
		req.Status = models.ReminderStatusPending
	}

	r, err := sess.AddReminder(c.Request.Context(), models.Reminder{
		Title:   req.Title,
		DueDate: req.DueDate,
		Amount:  req.Amount,
		Status:  req.Status,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reminder": r})
}

// Update handles a partial update of a reminder
func (h *ReminderHandler) Update(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive"))
		return
	}

	err = sess.UpdateReminder(c.Request.Context(), c.Param("id"), models.ReminderPatch{
		Title:   req.Title,
		DueDate: req.DueDate,
		Amount:  req.Amount,
		Status:  req.Status,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Delete handles the deletion of a reminder
func (h *ReminderHandler) Delete(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := sess.DeleteReminder(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
