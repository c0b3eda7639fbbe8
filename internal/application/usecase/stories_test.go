package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/domain/errs"
	"storysync/internal/domain/model"
	"storysync/internal/domain/repository/connectivity"
)

func newStoryService(db *fakeDB, remover *fakeBlobRemover, store *memStore,
	owner string, status connectivity.Status,
) *StoryService {
	return NewStoryService(db, db, db, remover, store, &fakeIdentity{owner: owner},
		func() connectivity.Status { return status })
}

func TestCreateStampsOwnerAndDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newFakeDB()
	svc := newStoryService(db, newFakeBlobRemover(), newMemStore(), "alice", connectivity.Available)

	created, err := svc.Create(ctx, &model.Story{
		Owner: "mallory",
		Title: "first entry",
		Mood:  "ecstatic",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", created.Owner, "caller-supplied owner must be overwritten")
	require.Equal(t, model.MoodNeutral, created.Mood)
	require.False(t, created.Date.IsZero())
	require.False(t, created.ID.IsZero())
}

func TestOperationsRequireIdentity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newStoryService(newFakeDB(), newFakeBlobRemover(), newMemStore(), "", connectivity.Available)

	_, err := svc.Create(ctx, &model.Story{Title: "x"})
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.Update(ctx, &model.Story{Title: "x"})
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.Get(ctx, primitive.NewObjectID())
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.Delete(ctx, primitive.NewObjectID())
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.DeleteAll(ctx)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestUpdateRejectsInvalidMood(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newFakeDB()
	svc := newStoryService(db, newFakeBlobRemover(), newMemStore(), "alice", connectivity.Available)

	created, err := svc.Create(ctx, &model.Story{Title: "x", Mood: model.MoodHappy})
	require.NoError(t, err)

	created.Mood = "ecstatic"
	_, err = svc.Update(ctx, created)
	require.Error(t, err)
}

func TestForeignStoryIsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newFakeDB()
	bobSvc := newStoryService(db, newFakeBlobRemover(), newMemStore(), "bob", connectivity.Available)
	created, err := bobSvc.Create(ctx, &model.Story{Title: "bob's entry"})
	require.NoError(t, err)

	aliceSvc := newStoryService(db, newFakeBlobRemover(), newMemStore(), "alice", connectivity.Available)

	_, err = aliceSvc.Get(ctx, created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = aliceSvc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	created.Title = "rewritten"
	_, err = aliceSvc.Update(ctx, created)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteDereferencesBlobs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newFakeDB()
	remover := newFakeBlobRemover()
	store := newMemStore()
	svc := newStoryService(db, remover, store, "alice", connectivity.Available)

	created, err := svc.Create(ctx, &model.Story{
		Title:  "with images",
		Images: []string{"images/alice/a.png", "images/alice/b.png"},
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Title, deleted.Title)
	require.ElementsMatch(t, created.Images, remover.removeCalls())

	deletes, err := store.ListDeletes(ctx)
	require.NoError(t, err)
	require.Empty(t, deletes)

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteEnqueuesFailedBlobRemovals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newFakeDB()
	remover := newFakeBlobRemover()
	remover.fail["images/alice/b.png"] = true
	store := newMemStore()
	svc := newStoryService(db, remover, store, "alice", connectivity.Available)

	created, err := svc.Create(ctx, &model.Story{
		Title:  "with images",
		Images: []string{"images/alice/a.png", "images/alice/b.png"},
	})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err, "blob failures never fail the delete")

	deletes, err := store.ListDeletes(ctx)
	require.NoError(t, err)
	require.Len(t, deletes, 1)
	require.Equal(t, "images/alice/b.png", deletes[0].RemotePath)
}

func TestDeleteAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newFakeDB()
	remover := newFakeBlobRemover()
	remover.fail["images/alice/b.png"] = true
	store := newMemStore()
	svc := newStoryService(db, remover, store, "alice", connectivity.Available)

	_, err := svc.Create(ctx, &model.Story{Title: "one", Images: []string{"images/alice/a.png"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &model.Story{Title: "two", Images: []string{"images/alice/b.png"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &model.Story{Title: "three"})
	require.NoError(t, err)

	bobSvc := newStoryService(db, newFakeBlobRemover(), newMemStore(), "bob", connectivity.Available)
	bobStory, err := bobSvc.Create(ctx, &model.Story{Title: "bob keeps this", Date: time.Now()})
	require.NoError(t, err)

	ok, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.ElementsMatch(t, []string{"images/alice/a.png", "images/alice/b.png"}, remover.removeCalls())

	deletes, err := store.ListDeletes(ctx)
	require.NoError(t, err)
	require.Len(t, deletes, 1)
	require.Equal(t, "images/alice/b.png", deletes[0].RemotePath)

	kept, err := bobSvc.Get(ctx, bobStory.ID)
	require.NoError(t, err)
	require.Equal(t, "bob keeps this", kept.Title)
}

func TestDeleteAllRequiresConnectivity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newFakeDB()
	svc := newStoryService(db, newFakeBlobRemover(), newMemStore(), "alice", connectivity.Lost)

	created, err := svc.Create(ctx, &model.Story{Title: "kept"})
	require.NoError(t, err)

	ok, err := svc.DeleteAll(ctx)
	require.ErrorIs(t, err, errs.ErrTransient)
	require.False(t, ok)

	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err, "nothing is deleted while offline")
}
