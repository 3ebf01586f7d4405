// Package localstore is the local persistent store: one JSON blob per
// identity, written to the data directory. It is the backing store for
// anonymous sessions and the source read by the one-time migration to
// the remote collection store.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Aknes122/securitycash/internal/logger"
	"github.com/Aknes122/securitycash/internal/models"
)

const (
	keyPrefix = "securitycash_data"

	// anonymousKey is the fixed key used when no identity is present.
	anonymousKey = "securitycash_data_v2"
)

// Key derives the blob key for an identity. Empty identity maps to the
// fixed anonymous key.
func Key(userID string) string {
	if userID == "" {
		return anonymousKey
	}
	return keyPrefix + "_" + userID
}

// Store persists JSON blobs under a data directory.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a Store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the raw blob for a key, or false if absent.
func (s *Store) Get(key string) ([]byte, bool) {
	blob, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Get().Warnw("local store read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return blob, true
}

// Set writes the raw blob for a key. Last write wins.
func (s *Store) Set(key string, blob []byte) error {
	if err := os.WriteFile(s.path(key), blob, 0o644); err != nil {
		return fmt.Errorf("failed to write local store key %s: %w", key, err)
	}
	return nil
}

// Remove deletes the blob for a key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Get().Warnw("local store remove failed", "key", key, "error", err)
	}
}

// Load reads and decodes the state for an identity. A missing or
// unparseable blob falls back to the default state; a partial or legacy
// blob is upgraded field by field so callers always receive a fully
// populated AppState.
func (s *Store) Load(userID string) models.AppState {
	blob, ok := s.Get(Key(userID))
	if !ok {
		return models.DefaultState()
	}

	var st models.AppState
	if err := json.Unmarshal(blob, &st); err != nil {
		logger.Get().Errorw("failed to decode local state, using defaults", "key", Key(userID), "error", err)
		return models.DefaultState()
	}

	return upgrade(st)
}

// Save encodes and persists the state for an identity.
func (s *Store) Save(userID string, st models.AppState) error {
	blob, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode local state: %w", err)
	}
	return s.Set(Key(userID), blob)
}

// upgrade fills in every field a stale or partial blob may be missing.
func upgrade(st models.AppState) models.AppState {
	if st.Transactions == nil {
		st.Transactions = []models.Transaction{}
	}
	if st.Reminders == nil {
		st.Reminders = []models.Reminder{}
	}
	if st.Goals == nil {
		st.Goals = []models.Goal{}
	}
	if st.UserPlan != models.PlanBasic && st.UserPlan != models.PlanPro {
		st.UserPlan = models.PlanBasic
	}
	if st.Filters.Period == "" {
		st.Filters = models.DefaultFilters()
	}
	if st.Filters.CategoryID == "" {
		st.Filters.CategoryID = models.FilterAll
	}
	if st.Filters.Type == "" {
		st.Filters.Type = models.FilterAll
	}
	if st.DashboardFilters.Period == "" {
		st.DashboardFilters = models.DefaultDashboardFilters()
	}
	if len(st.Categories) == 0 {
		st.Categories = models.SeedCategories()
	}
	return st
}
