package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Aknes122/securitycash/internal/errors"
	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/session"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	sessions *session.Manager
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(sessions *session.Manager) *CategoryHandler {
	return &CategoryHandler{sessions: sessions}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name  string                 `json:"name" binding:"required"`
	Kind  models.TransactionType `json:"kind" binding:"required,category_kind"`
	Color string                 `json:"color" binding:"omitempty,hex_color"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	Name  *string                 `json:"name"`
	Kind  *models.TransactionType `json:"kind" binding:"omitempty,category_kind"`
	Color *string                 `json:"color" binding:"omitempty,hex_color"`
}

// Create handles the creation of a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cat, err := sess.AddCategory(c.Request.Context(), models.Category{
		Name:  req.Name,
		Kind:  req.Kind,
		Color: req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

// Update handles a partial update of a category
func (h *CategoryHandler) Update(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	err = sess.UpdateCategory(c.Request.Context(), c.Param("id"), models.CategoryPatch{
		Name:  req.Name,
		Kind:  req.Kind,
		Color: req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Delete handles the deletion of a category. Transactions referencing
// the category are left intact with their original categoryId.
func (h *CategoryHandler) Delete(c *gin.Context) {
	sess, err := sessionFor(c, h.sessions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := sess.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
