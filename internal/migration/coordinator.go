// Package migration implements the one-time copy of local-only data
// into the remote collection store on first authenticated load.
package migration

import (
	"context"
	"fmt"

	"github.com/Aknes122/securitycash/internal/localstore"
	"github.com/Aknes122/securitycash/internal/logger"
	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/remote"
)

// State is the coordinator's position in its state machine.
type State int

const (
	StateNotStarted State = iota
	StateChecking
	StateMigrating
	StateMarkingDone
	StateComplete
	StateAlreadyDone
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NOT_STARTED"
	case StateChecking:
		return "CHECKING"
	case StateMigrating:
		return "MIGRATING"
	case StateMarkingDone:
		return "MARKING_DONE"
	case StateComplete:
		return "COMPLETE"
	case StateAlreadyDone:
		return "ALREADY_DONE"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Coordinator runs the migration state machine for one identity:
//
//	NOT_STARTED -> CHECKING -> MIGRATING -> MARKING_DONE -> COMPLETE
//	NOT_STARTED -> CHECKING -> ALREADY_DONE
//
// The migration flag distinguishes "never had data" from "genuinely
// deleted everything": once it is set, an empty remote account stays
// empty and is never reseeded.
type Coordinator struct {
	local  *localstore.Store
	store  *remote.Store
	userID string
	fetch  func(ctx context.Context) error
	state  State
}

// NewCoordinator creates a coordinator for one identity. fetch is
// invoked after COMPLETE or ALREADY_DONE to populate the session from
// the now-authoritative remote store.
func NewCoordinator(local *localstore.Store, store *remote.Store, userID string, fetch func(ctx context.Context) error) *Coordinator {
	return &Coordinator{
		local:  local,
		store:  store,
		userID: userID,
		fetch:  fetch,
		state:  StateNotStarted,
	}
}

// State returns the coordinator's current state.
func (c *Coordinator) State() State { return c.state }

// Run drives the state machine to completion. The copies and the flag
// commit in one transaction, so a partial failure writes nothing and
// the next authenticated load retries from a clean slate.
func (c *Coordinator) Run(ctx context.Context) error {
	log := logger.Get()

	c.transition(StateChecking)
	migrated, err := c.store.HasMigrated(ctx, c.userID)
	if err != nil {
		return fmt.Errorf("failed to read migration flag: %w", err)
	}
	if migrated {
		c.transition(StateAlreadyDone)
		return c.fetch(ctx)
	}

	// The loader applies defaults, so a brand-new user's local state
	// carries at least the seed categories; migrating those is what
	// seeds the remote account.
	st := c.local.Load(c.userID)

	c.transition(StateMigrating)
	if err := c.migrate(ctx, st); err != nil {
		log.Errorw("migration failed, will retry on next load",
			"user_id", c.userID, "error", err)
		return err
	}

	// The flag and the plan rode in the same transaction as the copies.
	c.transition(StateMarkingDone)
	c.transition(StateComplete)
	log.Infow("local data migrated",
		"user_id", c.userID,
		"transactions", len(st.Transactions),
		"categories", len(st.Categories),
		"reminders", len(st.Reminders),
		"goals", len(st.Goals),
	)
	return c.fetch(ctx)
}

func (c *Coordinator) transition(next State) {
	logger.Get().Debugw("migration state", "user_id", c.userID, "from", c.state.String(), "to", next.String())
	c.state = next
}

// migrate copies every local collection plus the flag and plan into
// the remote store in one transaction. Categories keep their original
// ids; the other collections get fresh server-generated ids and the
// local ids are discarded.
func (c *Coordinator) migrate(ctx context.Context, st models.AppState) error {
	st.Transactions = stripTransactionIDs(st.Transactions)
	st.Reminders = stripReminderIDs(st.Reminders)
	st.Goals = stripGoalIDs(st.Goals)
	return c.store.Migrate(ctx, c.userID, st)
}

func stripTransactionIDs(items []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(items))
	for _, t := range items {
		out = append(out, t.WithID(""))
	}
	return out
}

func stripReminderIDs(items []models.Reminder) []models.Reminder {
	out := make([]models.Reminder, 0, len(items))
	for _, r := range items {
		out = append(out, r.WithID(""))
	}
	return out
}

func stripGoalIDs(items []models.Goal) []models.Goal {
	out := make([]models.Goal, 0, len(items))
	for _, g := range items {
		out = append(out, g.WithID(""))
	}
	return out
}
