// Package remote implements the remote collection store: four
// per-identity collections (transactions, categories, reminders,
// goals) plus the per-user settings row, backed by GORM.
package remote

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/Aknes122/securitycash/internal/errors"
	"github.com/Aknes122/securitycash/internal/models"
)

// Store bundles the four collections and the settings table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store over an open GORM connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transactions returns the transaction collection.
func (s *Store) Transactions() *TransactionCollection {
	return &TransactionCollection{db: s.db}
}

// Categories returns the category collection.
func (s *Store) Categories() *CategoryCollection {
	return &CategoryCollection{db: s.db}
}

// Reminders returns the reminder collection.
func (s *Store) Reminders() *ReminderCollection {
	return &ReminderCollection{db: s.db}
}

// Goals returns the goal collection.
func (s *Store) Goals() *GoalCollection {
	return &GoalCollection{db: s.db}
}

// HasMigrated reads the one-time migration flag for an identity.
// An absent settings row reads as false.
func (s *Store) HasMigrated(ctx context.Context, userID string) (bool, error) {
	var row userSettingsRow
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.ErrRemoteRead, err)
	}
	return row.HasMigrated, nil
}

// SetMigrated upserts the settings row with the migration flag set.
func (s *Store) SetMigrated(ctx context.Context, userID string) error {
	row := userSettingsRow{UserID: userID, HasMigrated: true, Plan: string(models.PlanBasic)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"has_migrated": true}),
	}).Create(&row).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, err)
	}
	return nil
}

// Migrate copies a full local state into the collections and marks the
// identity migrated in a single transaction. Either every row and the
// settings flag commit together or nothing does, so a failed copy
// leaves the store untouched and can be retried from scratch.
// Categories keep their client ids via upsert; the other collections
// get server-generated ids.
func (s *Store) Migrate(ctx context.Context, userID string, st models.AppState) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := (&CategoryCollection{db: tx}).Upsert(ctx, userID, st.Categories); err != nil {
			return err
		}
		if _, err := (&TransactionCollection{db: tx}).Insert(ctx, userID, st.Transactions); err != nil {
			return err
		}
		if _, err := (&ReminderCollection{db: tx}).Insert(ctx, userID, st.Reminders); err != nil {
			return err
		}
		if _, err := (&GoalCollection{db: tx}).Insert(ctx, userID, st.Goals); err != nil {
			return err
		}
		row := userSettingsRow{UserID: userID, HasMigrated: true, Plan: string(st.UserPlan)}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"has_migrated": true, "plan": string(st.UserPlan)}),
		}).Create(&row).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrRemoteWrite, err)
		}
		return nil
	})
}

// Plan reads the stored subscription plan for an identity, defaulting
// to basic when no settings row exists.
func (s *Store) Plan(ctx context.Context, userID string) (models.UserPlan, error) {
	var row userSettingsRow
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PlanBasic, nil
		}
		return models.PlanBasic, apperrors.Wrap(apperrors.ErrRemoteRead, err)
	}
	if row.Plan == string(models.PlanPro) {
		return models.PlanPro, nil
	}
	return models.PlanBasic, nil
}

// SetPlan upserts the subscription plan for an identity.
func (s *Store) SetPlan(ctx context.Context, userID string, plan models.UserPlan) error {
	row := userSettingsRow{UserID: userID, HasMigrated: false, Plan: string(plan)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"plan": string(plan)}),
	}).Create(&row).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, err)
	}
	return nil
}

// DeleteAllForUser removes every collection row for an identity. The
// settings row (and so the migration flag) is intentionally kept: an
// emptied account must not re-trigger migration or reseeding.
func (s *Store) DeleteAllForUser(ctx context.Context, userID string) error {
	db := s.db.WithContext(ctx)
	for _, model := range []interface{}{
		&transactionRow{}, &categoryRow{}, &reminderRow{}, &goalRow{},
	} {
		if err := db.Where("user_id = ?", userID).Delete(model).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrRemoteWrite, err)
		}
	}
	return nil
}

// TransactionCollection is the remote transactions table.
type TransactionCollection struct {
	db *gorm.DB
}

// Select returns all transactions for an identity, newest date first.
func (c *TransactionCollection) Select(ctx context.Context, userID string) ([]models.Transaction, error) {
	var rows []transactionRow
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRemoteRead, err)
	}
	out := make([]models.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, transactionFromRow(r))
	}
	return out, nil
}

// Insert stores transactions for an identity and returns them with
// their server-generated ids.
func (c *TransactionCollection) Insert(ctx context.Context, userID string, items []models.Transaction) ([]models.Transaction, error) {
	if len(items) == 0 {
		return nil, nil
	}
	rows := make([]transactionRow, 0, len(items))
	for _, t := range items {
		rows = append(rows, transactionToRow(userID, t))
	}
	if err := c.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRemoteWrite, err)
	}
	out := make([]models.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, transactionFromRow(r))
	}
	return out, nil
}

// Update applies a partial row update for an identity-owned transaction.
func (c *TransactionCollection) Update(ctx context.Context, userID, id string, patch models.TransactionPatch) error {
	updates := transactionPatchColumns(patch)
	if len(updates) == 0 {
		return nil
	}
	res := c.db.WithContext(ctx).Model(&transactionRow{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// Delete removes an identity-owned transaction.
func (c *TransactionCollection) Delete(ctx context.Context, userID, id string) error {
	res := c.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&transactionRow{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// CategoryCollection is the remote categories table.
type CategoryCollection struct {
	db *gorm.DB
}

// Select returns all categories for an identity in insertion order.
func (c *CategoryCollection) Select(ctx context.Context, userID string) ([]models.Category, error) {
	var rows []categoryRow
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRemoteRead, err)
	}
	out := make([]models.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, categoryFromRow(r))
	}
	return out, nil
}

// Insert stores categories for an identity and returns them with ids.
func (c *CategoryCollection) Insert(ctx context.Context, userID string, items []models.Category) ([]models.Category, error) {
	if len(items) == 0 {
		return nil, nil
	}
	rows := make([]categoryRow, 0, len(items))
	for _, cat := range items {
		rows = append(rows, categoryToRow(userID, cat))
	}
	if err := c.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRemoteWrite, err)
	}
	out := make([]models.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, categoryFromRow(r))
	}
	return out, nil
}

// Upsert inserts categories keyed by their original ids, updating on
// collision. Migration uses this so re-runs and seed-set collisions
// stay idempotent.
func (c *CategoryCollection) Upsert(ctx context.Context, userID string, items []models.Category) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]categoryRow, 0, len(items))
	for _, cat := range items {
		rows = append(rows, categoryToRow(userID, cat))
	}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "name", "kind", "color"}),
	}).Create(&rows).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, err)
	}
	return nil
}

// Update applies a partial row update for an identity-owned category.
func (c *CategoryCollection) Update(ctx context.Context, userID, id string, patch models.CategoryPatch) error {
	updates := categoryPatchColumns(patch)
	if len(updates) == 0 {
		return nil
	}
	res := c.db.WithContext(ctx).Model(&categoryRow{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// Delete removes an identity-owned category. Transactions referencing
// it are left untouched; the dangling reference is handled at display
// time.
func (c *CategoryCollection) Delete(ctx context.Context, userID, id string) error {
	res := c.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&categoryRow{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// ReminderCollection is the remote reminders table.
type ReminderCollection struct {
	db *gorm.DB
}

// Select returns all reminders for an identity, soonest due first.
func (c *ReminderCollection) Select(ctx context.Context, userID string) ([]models.Reminder, error) {
	var rows []reminderRow
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRemoteRead, err)
	}
	out := make([]models.Reminder, 0, len(rows))
	for _, r := range rows {
		out = append(out, reminderFromRow(r))
	}
	return out, nil
}

// Insert stores reminders for an identity and returns them with ids.
func (c *ReminderCollection) Insert(ctx context.Context, userID string, items []models.Reminder) ([]models.Reminder, error) {
	if len(items) == 0 {
		return nil, nil
	}
	rows := make([]reminderRow, 0, len(items))
	for _, m := range items {
		rows = append(rows, reminderToRow(userID, m))
	}
	if err := c.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRemoteWrite, err)
	}
	out := make([]models.Reminder, 0, len(rows))
	for _, r := range rows {
		out = append(out, reminderFromRow(r))
	}
	return out, nil
}

// Update applies a partial row update for an identity-owned reminder.
func (c *ReminderCollection) Update(ctx context.Context, userID, id string, patch models.ReminderPatch) error {
	updates := reminderPatchColumns(patch)
	if len(updates) == 0 {
		return nil
	}
	res := c.db.WithContext(ctx).Model(&reminderRow{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrReminderNotFound
	}
	return nil
}

// Delete removes an identity-owned reminder.
func (c *ReminderCollection) Delete(ctx context.Context, userID, id string) error {
	res := c.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&reminderRow{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrReminderNotFound
	}
	return nil
}

// GoalCollection is the remote goals table.
type GoalCollection struct {
	db *gorm.DB
}

// Select returns all goals for an identity in insertion order.
func (c *GoalCollection) Select(ctx context.Context, userID string) ([]models.Goal, error) {
	var rows []goalRow
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRemoteRead, err)
	}
	out := make([]models.Goal, 0, len(rows))
	for _, r := range rows {
		out = append(out, goalFromRow(r))
	}
	return out, nil
}

// Insert stores goals for an identity and returns them with ids.
func (c *GoalCollection) Insert(ctx context.Context, userID string, items []models.Goal) ([]models.Goal, error) {
	if len(items) == 0 {
		return nil, nil
	}
	rows := make([]goalRow, 0, len(items))
	for _, g := range items {
		rows = append(rows, goalToRow(userID, g))
	}
	if err := c.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRemoteWrite, err)
	}
	out := make([]models.Goal, 0, len(rows))
	for _, r := range rows {
		out = append(out, goalFromRow(r))
	}
	return out, nil
}

// Update applies a partial row update for an identity-owned goal.
func (c *GoalCollection) Update(ctx context.Context, userID, id string, patch models.GoalPatch) error {
	updates := goalPatchColumns(patch)
	if len(updates) == 0 {
		return nil
	}
	res := c.db.WithContext(ctx).Model(&goalRow{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// Delete removes an identity-owned goal.
func (c *GoalCollection) Delete(ctx context.Context, userID, id string) error {
	res := c.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&goalRow{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrRemoteWrite, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// Models returns the row types for test auto-migration.
func Models() []interface{} {
	return []interface{}{
		&transactionRow{},
		&categoryRow{},
		&reminderRow{},
		&goalRow{},
		&userSettingsRow{},
	}
}
