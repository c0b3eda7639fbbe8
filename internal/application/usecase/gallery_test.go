package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"storysync/internal/domain/model"
)

func TestGalleryStaging(t *testing.T) {
	t.Parallel()

	gallery := NewGalleryState()
	first := model.GalleryImage{LocalRef: "file:///tmp/a.png", RemotePath: "images/alice/a.png"}
	second := model.GalleryImage{LocalRef: "file:///tmp/b.png", RemotePath: "images/alice/b.png"}

	gallery.AddImage(first)
	gallery.AddImage(second)
	require.Len(t, gallery.Images(), 2)
	require.Empty(t, gallery.ImagesToBeDeleted())

	gallery.RemoveImage(first)
	require.Equal(t, []model.GalleryImage{second}, gallery.Images())
	require.Equal(t, []model.GalleryImage{first}, gallery.ImagesToBeDeleted())

	// removing an image that was never staged still records the delete
	third := model.GalleryImage{RemotePath: "images/alice/c.png"}
	gallery.RemoveImage(third)
	require.Len(t, gallery.Images(), 1)
	require.Len(t, gallery.ImagesToBeDeleted(), 2)

	gallery.Clear()
	require.Empty(t, gallery.Images())
	require.Empty(t, gallery.ImagesToBeDeleted())
}

func TestRemoteImagePath(t *testing.T) {
	t.Parallel()

	path := RemoteImagePath("alice", "no-such-file")
	require.True(t, strings.HasPrefix(path, "images/alice/"))
	require.True(t, strings.HasSuffix(path, ".bin"))

	other := RemoteImagePath("alice", "no-such-file")
	require.NotEqual(t, path, other, "paths must be unique per image")
}

func TestCommitUploadsAndDeletes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newMemStore()
	uploader := newFakeUploader()
	remover := newFakeBlobRemover()
	committer := NewGalleryCommitter(uploader, remover, store)

	gallery := NewGalleryState()
	gallery.AddImage(model.GalleryImage{LocalRef: "file:///tmp/a.png", RemotePath: "images/alice/a.png"})
	gallery.RemoveImage(model.GalleryImage{RemotePath: "images/alice/old.png"})

	committer.Commit(ctx, gallery)

	require.Equal(t, []string{"images/alice/a.png"}, uploader.putCalls())
	require.Equal(t, []string{"images/alice/old.png"}, remover.removeCalls())

	uploads, err := store.ListUploads(ctx)
	require.NoError(t, err)
	require.Empty(t, uploads)

	deletes, err := store.ListDeletes(ctx)
	require.NoError(t, err)
	require.Empty(t, deletes)

	require.Empty(t, gallery.Images(), "commit must clear the session")
	require.Empty(t, gallery.ImagesToBeDeleted())
}

func TestCommitDefersFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newMemStore()
	uploader := newFakeUploader()
	uploader.fail["images/alice/a.png"] = true
	uploader.token = "token-1"
	remover := newFakeBlobRemover()
	remover.fail["images/alice/old.png"] = true
	committer := NewGalleryCommitter(uploader, remover, store)

	gallery := NewGalleryState()
	gallery.AddImage(model.GalleryImage{LocalRef: "file:///tmp/a.png", RemotePath: "images/alice/a.png"})
	gallery.RemoveImage(model.GalleryImage{RemotePath: "images/alice/old.png"})

	committer.Commit(ctx, gallery)

	uploads, err := store.ListUploads(ctx)
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	require.Equal(t, "images/alice/a.png", uploads[0].RemotePath)
	require.Equal(t, "file:///tmp/a.png", uploads[0].SourceRef)
	require.Equal(t, "token-1", uploads[0].SessionToken, "the partial session must be resumable")

	deletes, err := store.ListDeletes(ctx)
	require.NoError(t, err)
	require.Len(t, deletes, 1)
	require.Equal(t, "images/alice/old.png", deletes[0].RemotePath)

	require.Empty(t, gallery.Images(), "commit clears the session even on failure")
}
