package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Aknes122/securitycash/internal/errors"
	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/session"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	sessions *session.Manager
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(sessions *session.Manager) *TransactionHandler {
	return &TransactionHandler{sessions: sessions}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Date        string                 `json:"date" binding:"required,iso_date"`
	Description string                 `json:"description" binding:"required"`
	CategoryID  string                 `json:"categoryId" binding:"required"`
	Amount      decimal.Decimal        `json:"amount"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction
type UpdateTransactionRequest struct {
	Type        *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Date        *string                 `json:"date" binding:"omitempty,iso_date"`
	Description *string                 `json:"description"`
	CategoryID  *string                 `json:"categoryId"`
	Amount      *decimal.Decimal        `json:"amount"`
}

// Create handles the creation of a new transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if !req.Amount.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive"))
		return
	}

	t, err := sess.AddTransaction(c.Request.Context(), models.Transaction{
		Type:        req.Type,
		Date:        req.Date,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": t})
}

// Update handles a partial update of a transaction
func (h *TransactionHandler) Update(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive"))
		return
	}

	err = sess.UpdateTransaction(c.Request.Context(), c.Param("id"), models.TransactionPatch{
		Type:        req.Type,
		Date:        req.Date,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Delete handles the deletion of a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := sess.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
