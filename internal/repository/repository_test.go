package repository_test

import (
	"context"
	"testing"

	apperrors "github.com/Aknes122/securitycash/internal/errors"
	"github.com/Aknes122/securitycash/internal/models"
	"github.com/Aknes122/securitycash/internal/remote"
	"github.com/Aknes122/securitycash/internal/repository"
	"github.com/Aknes122/securitycash/internal/testutil"
	"github.com/Aknes122/securitycash/internal/uuid"
)

func TestLocalMode(t *testing.T) {
	repo := repository.New[models.Transaction, models.TransactionPatch](repository.ModeLocal, nil, "")
	ctx := context.Background()

	t.Run("add assigns a client-side id", func(t *testing.T) {
		added, err := repo.Add(ctx, testutil.Tx(t, models.TransactionTypeExpense, "2026-08-10", "cat_food", "5"))
		testutil.AssertNoError(t, err)
		if !uuid.IsValid(added.ID) {
			t.Errorf("expected a valid client-side uuid, got %q", added.ID)
		}
	})

	t.Run("update and delete are no-ops", func(t *testing.T) {
		testutil.AssertNoError(t, repo.Update(ctx, "anything", models.TransactionPatch{}))
		testutil.AssertNoError(t, repo.Delete(ctx, "anything"))
	})

	t.Run("fetch returns nothing", func(t *testing.T) {
		got, err := repo.Fetch(ctx)
		testutil.AssertNoError(t, err)
		if got != nil {
			t.Errorf("expected nil fetch in local mode, got %v", got)
		}
	})
}

func TestRemoteMode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	store := remote.NewStore(db)
	ctx := context.Background()
	userID := testutil.UserID()

	repo := repository.New[models.Transaction, models.TransactionPatch](
		repository.ModeRemote, store.Transactions(), userID)

	t.Run("add adopts the server-generated id", func(t *testing.T) {
		// A client-proposed id never survives the round trip.
		in := testutil.Tx(t, models.TransactionTypeExpense, "2026-08-10", "cat_food", "5").WithID("client-id")
		added, err := repo.Add(ctx, in)
		testutil.AssertNoError(t, err)
		if added.ID == "" || added.ID == "client-id" {
			t.Errorf("expected a server-generated id, got %q", added.ID)
		}

		got, err := repo.Fetch(ctx)
		testutil.AssertNoError(t, err)
		if len(got) != 1 || got[0].ID != added.ID {
			t.Errorf("fetched collection disagrees with add: %+v", got)
		}
	})

	t.Run("update and delete surface remote errors", func(t *testing.T) {
		desc := "x"
		err := repo.Update(ctx, "no-such-id", models.TransactionPatch{Description: &desc})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		err = repo.Delete(ctx, "no-such-id")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

// failingCollection satisfies repository.Collection and refuses every
// operation, standing in for an unreachable remote store.
type failingCollection struct{}

func (failingCollection) Select(ctx context.Context, userID string) ([]models.Goal, error) {
	return nil, apperrors.ErrRemoteRead
}

func (failingCollection) Insert(ctx context.Context, userID string, items []models.Goal) ([]models.Goal, error) {
	return nil, apperrors.ErrRemoteWrite
}

func (failingCollection) Update(ctx context.Context, userID, id string, patch models.GoalPatch) error {
	return apperrors.ErrRemoteWrite
}

func (failingCollection) Delete(ctx context.Context, userID, id string) error {
	return apperrors.ErrRemoteWrite
}

func TestRemoteModePropagatesFailures(t *testing.T) {
	repo := repository.New[models.Goal, models.GoalPatch](
		repository.ModeRemote, failingCollection{}, "u1")
	ctx := context.Background()

	_, err := repo.Add(ctx, testutil.Goal(t, "100", "0"))
	testutil.AssertAppError(t, err, "REMOTE_WRITE_FAILED")

	_, err = repo.Fetch(ctx)
	testutil.AssertAppError(t, err, "REMOTE_READ_FAILED")

	err = repo.Update(ctx, "g1", models.GoalPatch{})
	testutil.AssertAppError(t, err, "REMOTE_WRITE_FAILED")

	err = repo.Delete(ctx, "g1")
	testutil.AssertAppError(t, err, "REMOTE_WRITE_FAILED")
}
