// Package repository provides the uniform CRUD contract shared by the
// four entity collections. The local-vs-remote branch is written here
// exactly once; the mode is fixed when the session is constructed and
// never changes for its lifetime.
package repository

import (
	"context"
	"fmt"

	apperrors "github.com/Aknes122/securitycash/internal/errors"
	"github.com/Aknes122/securitycash/internal/uuid"
)

// Mode selects the backing store for a repository.
type Mode string

const (
	// ModeLocal generates client-side ids and leaves persistence to the
	// session's local blob tick.
	ModeLocal Mode = "local"
	// ModeRemote requires the remote write to succeed before the
	// in-memory state may change (confirmed-write semantics).
	ModeRemote Mode = "remote"
)

// Entity is implemented by the four entity types.
type Entity[T any] interface {
	GetID() string
	WithID(id string) T
}

// Collection is the remote-store contract for one entity collection.
// *remote.TransactionCollection and friends satisfy it structurally.
type Collection[T any, P any] interface {
	Select(ctx context.Context, userID string) ([]T, error)
	Insert(ctx context.Context, userID string, items []T) ([]T, error)
	Update(ctx context.Context, userID, id string, patch P) error
	Delete(ctx context.Context, userID, id string) error
}

// Repository exposes Add/Update/Delete/Fetch for one entity type in
// one session.
type Repository[T Entity[T], P any] struct {
	mode   Mode
	coll   Collection[T, P]
	userID string
}

// New creates a repository. coll may be nil in local mode.
func New[T Entity[T], P any](mode Mode, coll Collection[T, P], userID string) *Repository[T, P] {
	return &Repository[T, P]{mode: mode, coll: coll, userID: userID}
}

// Mode returns the repository's persistence mode.
func (r *Repository[T, P]) Mode() Mode { return r.mode }

// Add stores a new entity. Remote mode inserts first and adopts the
// server-generated id; local mode assigns a client-side UUIDv7.
func (r *Repository[T, P]) Add(ctx context.Context, item T) (T, error) {
	if r.mode == ModeLocal {
		return item.WithID(uuid.New()), nil
	}

	inserted, err := r.coll.Insert(ctx, r.userID, []T{item.WithID("")})
	if err != nil {
		var zero T
		return zero, err
	}
	if len(inserted) != 1 {
		var zero T
		return zero, apperrors.Wrap(apperrors.ErrRemoteWrite,
			fmt.Errorf("expected 1 inserted row, got %d", len(inserted)))
	}
	return inserted[0], nil
}

// Update applies a partial update. In remote mode the remote call must
// succeed before the caller merges the patch in memory; local mode has
// nothing to persist here.
func (r *Repository[T, P]) Update(ctx context.Context, id string, patch P) error {
	if r.mode == ModeLocal {
		return nil
	}
	return r.coll.Update(ctx, r.userID, id, patch)
}

// Delete removes an entity, symmetric to Update.
func (r *Repository[T, P]) Delete(ctx context.Context, id string) error {
	if r.mode == ModeLocal {
		return nil
	}
	return r.coll.Delete(ctx, r.userID, id)
}

// Fetch reads the full collection from the remote store. Local mode
// returns nil; the session reads local state through the blob loader
// instead.
func (r *Repository[T, P]) Fetch(ctx context.Context) ([]T, error) {
	if r.mode == ModeLocal {
		return nil, nil
	}
	return r.coll.Select(ctx, r.userID)
}
