// Package session owns the per-identity AppState aggregate. Exactly
// one session is live per identity; switching identity replaces the
// session wholesale rather than patching it. All state mutation goes
// through a single mutex that is never held across a store call.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/Aknes122/securitycash/internal/errors"
	"github.com/Aknes122/securitycash/internal/localstore"
	"github.com/Aknes122/securitycash/internal/logger"
	"github.com/Aknes122/securitycash/internal/migration"
	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/remote"
	"github.com/Aknes122/securitycash/internal/repository"
)

// Subscriber receives a state snapshot after every applied mutation.
type Subscriber func(models.AppState)

// Session is the session-scoped state container for one identity.
type Session struct {
	userID string
	mode   repository.Mode

	local *localstore.Store
	store *remote.Store // nil in local mode

	transactions *repository.Repository[models.Transaction, models.TransactionPatch]
	categories   *repository.Repository[models.Category, models.CategoryPatch]
	reminders    *repository.Repository[models.Reminder, models.ReminderPatch]
	goals        *repository.Repository[models.Goal, models.GoalPatch]

	mu      sync.Mutex
	state   models.AppState
	loading bool
	closed  bool

	subMu   sync.Mutex
	subs    map[int]Subscriber
	nextSub int

	log *zap.SugaredLogger
}

// newSession wires the repositories for the identity's mode. Remote
// mode requires both an identity and a remote store; everything else
// falls back to the local blob store.
func newSession(local *localstore.Store, store *remote.Store, userID string) *Session {
	mode := repository.ModeLocal
	if store != nil && userID != "" {
		mode = repository.ModeRemote
	}

	s := &Session{
		userID:  userID,
		mode:    mode,
		local:   local,
		loading: true,
		subs:    make(map[int]Subscriber),
		log:     logger.Get(),
	}

	if mode == repository.ModeRemote {
		s.store = store
		s.transactions = repository.New[models.Transaction, models.TransactionPatch](mode, store.Transactions(), userID)
		s.categories = repository.New[models.Category, models.CategoryPatch](mode, store.Categories(), userID)
		s.reminders = repository.New[models.Reminder, models.ReminderPatch](mode, store.Reminders(), userID)
		s.goals = repository.New[models.Goal, models.GoalPatch](mode, store.Goals(), userID)
	} else {
		s.transactions = repository.New[models.Transaction, models.TransactionPatch](mode, nil, userID)
		s.categories = repository.New[models.Category, models.CategoryPatch](mode, nil, userID)
		s.reminders = repository.New[models.Reminder, models.ReminderPatch](mode, nil, userID)
		s.goals = repository.New[models.Goal, models.GoalPatch](mode, nil, userID)
	}

	return s
}

// start performs the initial load. Local mode reads the blob; remote
// mode runs the migration coordinator, which triggers the first remote
// fetch itself. Mutations are gated until this completes.
func (s *Session) start(ctx context.Context) error {
	if s.mode == repository.ModeLocal {
		st := s.local.Load(s.userID)
		s.mu.Lock()
		s.state = st
		s.loading = false
		s.mu.Unlock()
		s.notify()
		return nil
	}

	coord := migration.NewCoordinator(s.local, s.store, s.userID, s.fetchRemote)
	err := coord.Run(ctx)
	if err != nil {
		// Best effort: a failed migration must not leave the session
		// unusable, so fall through to whatever the remote store holds.
		s.log.Errorw("migration run failed", "user_id", s.userID, "error", err)
		if ferr := s.fetchRemote(ctx); ferr != nil {
			s.log.Errorw("initial remote fetch failed", "user_id", s.userID, "error", ferr)
		}
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.notify()
	return err
}

// fetchRemote replaces the collections from the remote store, keeping
// the ephemeral filter state.
func (s *Session) fetchRemote(ctx context.Context) error {
	txs, err := s.transactions.Fetch(ctx)
	if err != nil {
		return err
	}
	cats, err := s.categories.Fetch(ctx)
	if err != nil {
		return err
	}
	rems, err := s.reminders.Fetch(ctx)
	if err != nil {
		return err
	}
	goals, err := s.goals.Fetch(ctx)
	if err != nil {
		return err
	}
	plan, err := s.store.Plan(ctx, s.userID)
	if err != nil {
		s.log.Warnw("failed to read plan, defaulting to basic", "user_id", s.userID, "error", err)
		plan = models.PlanBasic
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return apperrors.ErrSessionClosed
	}
	if s.state.Filters.Period == "" {
		s.state.Filters = models.DefaultFilters()
	}
	if s.state.DashboardFilters.Period == "" {
		s.state.DashboardFilters = models.DefaultDashboardFilters()
	}
	s.state.Transactions = emptyIfNil(txs)
	s.state.Categories = emptyIfNil(cats)
	s.state.Reminders = emptyIfNil(rems)
	s.state.Goals = emptyIfNil(goals)
	s.state.UserPlan = plan
	s.mu.Unlock()
	s.notify()
	return nil
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// UserID returns the session's identity ("" for anonymous).
func (s *Session) UserID() string { return s.userID }

// Mode returns the session's persistence mode.
func (s *Session) Mode() repository.Mode { return s.mode }

// Ready reports whether the initial load has completed.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loading && !s.closed
}

// State returns a snapshot of the current state.
func (s *Session) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers an observer called with a state snapshot after
// every applied mutation. The returned function unsubscribes.
func (s *Session) Subscribe(fn Subscriber) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Session) notify() {
	snapshot := s.State()
	s.subMu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// guard rejects mutations on a closed session or before the initial
// load has finished.
func (s *Session) guard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return apperrors.ErrSessionClosed
	}
	if s.loading {
		return apperrors.ErrSessionLoading
	}
	return nil
}

// close marks the session replaced. Any in-flight continuation checks
// this flag before touching state, so late remote responses for a
// replaced session are dropped instead of applied.
func (s *Session) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// apply runs a state mutation under the single-writer lock, persists
// the blob in local mode, and notifies subscribers. Returns
// ErrSessionClosed if the session was replaced while the caller was
// waiting on a store round trip.
func (s *Session) apply(mutate func(st *models.AppState)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return apperrors.ErrSessionClosed
	}
	mutate(&s.state)
	if s.mode == repository.ModeLocal {
		if err := s.local.Save(s.userID, s.state); err != nil {
			s.log.Errorw("local persistence tick failed", "user_id", s.userID, "error", err)
		}
	}
	s.mu.Unlock()
	s.notify()
	return nil
}
