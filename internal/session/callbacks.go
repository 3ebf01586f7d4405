package session

import (
	"context"

	apperrors "github.com/Aknes122/securitycash/internal/errors"
	"github.com/Aknes122/securitycash/internal/localstore"
	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/repository"
)

// The callback surface consumed by presentation code. Every method
// follows the same discipline: the store round trip happens first,
// outside the lock, and the in-memory state only changes after it
// succeeds. A failed remote write therefore leaves the state exactly
// as it was.

// AddTransaction stores a new transaction and prepends it to state.
func (s *Session) AddTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if err := s.guard(); err != nil {
		return models.Transaction{}, err
	}
	added, err := s.transactions.Add(ctx, t)
	if err != nil {
		s.log.Errorw("add transaction failed", "user_id", s.userID, "error", err)
		return models.Transaction{}, err
	}
	err = s.apply(func(st *models.AppState) {
		st.Transactions = append([]models.Transaction{added}, st.Transactions...)
	})
	return added, err
}

// UpdateTransaction applies a partial update.
func (s *Session) UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.transactions.Update(ctx, id, patch); err != nil {
		s.log.Errorw("update transaction failed", "user_id", s.userID, "id", id, "error", err)
		return err
	}
	return s.apply(func(st *models.AppState) {
		for i, t := range st.Transactions {
			if t.ID == id {
				st.Transactions[i] = patch.Apply(t)
				return
			}
		}
	})
}

// DeleteTransaction removes a transaction.
func (s *Session) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.transactions.Delete(ctx, id); err != nil {
		s.log.Errorw("delete transaction failed", "user_id", s.userID, "id", id, "error", err)
		return err
	}
	return s.apply(func(st *models.AppState) {
		st.Transactions = removeByID(st.Transactions, id)
	})
}

// AddCategory stores a new category.
func (s *Session) AddCategory(ctx context.Context, c models.Category) (models.Category, error) {
	if err := s.guard(); err != nil {
		return models.Category{}, err
	}
	added, err := s.categories.Add(ctx, c)
	if err != nil {
		s.log.Errorw("add category failed", "user_id", s.userID, "error", err)
		return models.Category{}, err
	}
	err = s.apply(func(st *models.AppState) {
		st.Categories = append(st.Categories, added)
	})
	return added, err
}

// UpdateCategory applies a partial update.
func (s *Session) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.categories.Update(ctx, id, patch); err != nil {
		s.log.Errorw("update category failed", "user_id", s.userID, "id", id, "error", err)
		return err
	}
	return s.apply(func(st *models.AppState) {
		for i, c := range st.Categories {
			if c.ID == id {
				st.Categories[i] = patch.Apply(c)
				return
			}
		}
	})
}

// DeleteCategory removes a category. Transactions referencing it keep
// their CategoryID; the dangling reference renders as a fallback
// label, never an error.
func (s *Session) DeleteCategory(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		s.log.Errorw("delete category failed", "user_id", s.userID, "id", id, "error", err)
		return err
	}
	return s.apply(func(st *models.AppState) {
		st.Categories = removeByID(st.Categories, id)
	})
}

// AddReminder stores a new reminder.
func (s *Session) AddReminder(ctx context.Context, r models.Reminder) (models.Reminder, error) {
	if err := s.guard(); err != nil {
		return models.Reminder{}, err
	}
	added, err := s.reminders.Add(ctx, r)
	if err != nil {
		s.log.Errorw("add reminder failed", "user_id", s.userID, "error", err)
		return models.Reminder{}, err
	}
	err = s.apply(func(st *models.AppState) {
		st.Reminders = append(st.Reminders, added)
	})
	return added, err
}

// UpdateReminder applies a partial update.
func (s *Session) UpdateReminder(ctx context.Context, id string, patch models.ReminderPatch) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.reminders.Update(ctx, id, patch); err != nil {
		s.log.Errorw("update reminder failed", "user_id", s.userID, "id", id, "error", err)
		return err
	}
	return s.apply(func(st *models.AppState) {
		for i, r := range st.Reminders {
			if r.ID == id {
				st.Reminders[i] = patch.Apply(r)
				return
			}
		}
	})
}

// DeleteReminder removes a reminder.
func (s *Session) DeleteReminder(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.reminders.Delete(ctx, id); err != nil {
		s.log.Errorw("delete reminder failed", "user_id", s.userID, "id", id, "error", err)
		return err
	}
	return s.apply(func(st *models.AppState) {
		st.Reminders = removeByID(st.Reminders, id)
	})
}

// AddGoal stores a new goal.
func (s *Session) AddGoal(ctx context.Context, g models.Goal) (models.Goal, error) {
	if err := s.guard(); err != nil {
		return models.Goal{}, err
	}
	added, err := s.goals.Add(ctx, g)
	if err != nil {
		s.log.Errorw("add goal failed", "user_id", s.userID, "error", err)
		return models.Goal{}, err
	}
	err = s.apply(func(st *models.AppState) {
		st.Goals = append(st.Goals, added)
	})
	return added, err
}

// UpdateGoal applies a partial update.
func (s *Session) UpdateGoal(ctx context.Context, id string, patch models.GoalPatch) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.goals.Update(ctx, id, patch); err != nil {
		s.log.Errorw("update goal failed", "user_id", s.userID, "id", id, "error", err)
		return err
	}
	return s.apply(func(st *models.AppState) {
		for i, g := range st.Goals {
			if g.ID == id {
				st.Goals[i] = patch.Apply(g)
				return
			}
		}
	})
}

// DeleteGoal removes a goal.
func (s *Session) DeleteGoal(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.goals.Delete(ctx, id); err != nil {
		s.log.Errorw("delete goal failed", "user_id", s.userID, "id", id, "error", err)
		return err
	}
	return s.apply(func(st *models.AppState) {
		st.Goals = removeByID(st.Goals, id)
	})
}

// SetPlan switches the subscription tier.
func (s *Session) SetPlan(ctx context.Context, plan models.UserPlan) error {
	if err := s.guard(); err != nil {
		return err
	}
	if plan != models.PlanBasic && plan != models.PlanPro {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown plan")
	}
	if s.mode == repository.ModeRemote {
		if err := s.store.SetPlan(ctx, s.userID, plan); err != nil {
			s.log.Errorw("set plan failed", "user_id", s.userID, "error", err)
			return err
		}
	}
	return s.apply(func(st *models.AppState) {
		st.UserPlan = plan
	})
}

// UpdateFilters merges a partial records-page filter change. Filters
// are session-scoped and never persisted remotely.
func (s *Session) UpdateFilters(patch models.FiltersPatch) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.apply(func(st *models.AppState) {
		st.Filters = patch.Apply(st.Filters)
	})
}

// UpdateDashboardFilters merges a partial summary view filter change.
func (s *Session) UpdateDashboardFilters(patch models.DashboardFiltersPatch) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.apply(func(st *models.AppState) {
		st.DashboardFilters = patch.Apply(st.DashboardFilters)
	})
}

// ResetData clears the backing store for this identity and re-runs the
// initial fetch/seed path. Seed categories come back; everything else
// starts empty.
func (s *Session) ResetData(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}

	if s.mode == repository.ModeLocal {
		s.local.Remove(localstore.Key(s.userID))
		return s.apply(func(st *models.AppState) {
			*st = models.DefaultState()
		})
	}

	if err := s.store.DeleteAllForUser(ctx, s.userID); err != nil {
		s.log.Errorw("reset failed", "user_id", s.userID, "error", err)
		return err
	}
	// The fetch path never reseeds once the migration flag is set, so
	// reset restores the defaults explicitly.
	if err := s.store.Categories().Upsert(ctx, s.userID, models.SeedCategories()); err != nil {
		s.log.Errorw("reset reseed failed", "user_id", s.userID, "error", err)
		return err
	}
	return s.fetchRemote(ctx)
}

// DeleteAccount clears the local cache for this identity and closes
// the session, dropping the caller back to anonymous defaults. Remote
// rows are intentionally left in place; whether they should also be
// deleted is an unresolved product decision inherited from the
// original behavior.
func (s *Session) DeleteAccount(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.local.Remove(localstore.Key(s.userID))
	s.close()
	return nil
}

func removeByID[T repository.Entity[T]](items []T, id string) []T {
	out := items[:0]
	for _, item := range items {
		if item.GetID() != id {
			out = append(out, item)
		}
	}
	return out
}
