package remote

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/uuid"
)

// Row types mirror the remote tables. Column names differ from the
// in-memory JSON model (snake_case vs camelCase); the translation
// functions below are the single place where the two meet and must
// round-trip every field.

type transactionRow struct {
	ID          string          `gorm:"primaryKey"`
	UserID      string          `gorm:"column:user_id;not null;index"`
	Type        string          `gorm:"not null"`
	Date        string          `gorm:"not null"`
	Description string          `gorm:"not null"`
	CategoryID  string          `gorm:"column:category_id;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (transactionRow) TableName() string { return "transactions" }

// BeforeCreate generates a UUIDv7 for new rows
func (r *transactionRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}

type categoryRow struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"column:user_id;not null;index"`
	Name      string `gorm:"not null"`
	Kind      string `gorm:"not null"`
	Color     string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (categoryRow) TableName() string { return "categories" }

func (r *categoryRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}

type reminderRow struct {
	ID        string          `gorm:"primaryKey"`
	UserID    string          `gorm:"column:user_id;not null;index"`
	Title     string          `gorm:"not null"`
	DueDate   string          `gorm:"column:due_date;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null"`
	Status    string          `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (reminderRow) TableName() string { return "reminders" }

func (r *reminderRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}

type goalRow struct {
	ID            string          `gorm:"primaryKey"`
	UserID        string          `gorm:"column:user_id;not null;index"`
	Title         string          `gorm:"not null"`
	TargetAmount  decimal.Decimal `gorm:"column:target_amount;type:numeric;not null"`
	CurrentAmount decimal.Decimal `gorm:"column:current_amount;type:numeric;not null"`
	Deadline      string          `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (goalRow) TableName() string { return "goals" }

func (r *goalRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}

// userSettingsRow holds per-identity flags: the one-time migration
// marker and the subscription plan.
type userSettingsRow struct {
	UserID      string `gorm:"column:user_id;primaryKey"`
	HasMigrated bool   `gorm:"column:has_migrated;not null"`
	Plan        string `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (userSettingsRow) TableName() string { return "user_settings" }

func transactionToRow(userID string, t models.Transaction) transactionRow {
	return transactionRow{
		ID:          t.ID,
		UserID:      userID,
		Type:        string(t.Type),
		Date:        t.Date,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
	}
}

func transactionFromRow(r transactionRow) models.Transaction {
	return models.Transaction{
		ID:          r.ID,
		Type:        models.TransactionType(r.Type),
		Date:        r.Date,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Amount:      r.Amount,
	}
}

func categoryToRow(userID string, c models.Category) categoryRow {
	return categoryRow{
		ID:     c.ID,
		UserID: userID,
		Name:   c.Name,
		Kind:   string(c.Kind),
		Color:  c.Color,
	}
}

func categoryFromRow(r categoryRow) models.Category {
	return models.Category{
		ID:    r.ID,
		Name:  r.Name,
		Kind:  models.TransactionType(r.Kind),
		Color: r.Color,
	}
}

func reminderToRow(userID string, m models.Reminder) reminderRow {
	return reminderRow{
		ID:      m.ID,
		UserID:  userID,
		Title:   m.Title,
		DueDate: m.DueDate,
		Amount:  m.Amount,
		Status:  string(m.Status),
	}
}

func reminderFromRow(r reminderRow) models.Reminder {
	return models.Reminder{
		ID:      r.ID,
		Title:   r.Title,
		DueDate: r.DueDate,
		Amount:  r.Amount,
		Status:  models.ReminderStatus(r.Status),
	}
}

func goalToRow(userID string, g models.Goal) goalRow {
	return goalRow{
		ID:            g.ID,
		UserID:        userID,
		Title:         g.Title,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      g.Deadline,
	}
}

func goalFromRow(r goalRow) models.Goal {
	return models.Goal{
		ID:            r.ID,
		Title:         r.Title,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		Deadline:      r.Deadline,
	}
}

// Patch-to-column translation. Only non-nil fields become assignments.

func transactionPatchColumns(p models.TransactionPatch) map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Type != nil {
		updates["type"] = string(*p.Type)
	}
	if p.Date != nil {
		updates["date"] = *p.Date
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.CategoryID != nil {
		updates["category_id"] = *p.CategoryID
	}
	if p.Amount != nil {
		updates["amount"] = *p.Amount
	}
	return updates
}

func categoryPatchColumns(p models.CategoryPatch) map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Kind != nil {
		updates["kind"] = string(*p.Kind)
	}
	if p.Color != nil {
		updates["color"] = *p.Color
	}
	return updates
}

func reminderPatchColumns(p models.ReminderPatch) map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.DueDate != nil {
		updates["due_date"] = *p.DueDate
	}
	if p.Amount != nil {
		updates["amount"] = *p.Amount
	}
	if p.Status != nil {
		updates["status"] = string(*p.Status)
	}
	return updates
}

func goalPatchColumns(p models.GoalPatch) map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.TargetAmount != nil {
		updates["target_amount"] = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		updates["current_amount"] = *p.CurrentAmount
	}
	if p.Deadline != nil {
		updates["deadline"] = *p.Deadline
	}
	return updates
}
