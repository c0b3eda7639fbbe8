package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"storysync/internal/domain/model"
	"storysync/internal/domain/repository/blob"
	"storysync/internal/domain/repository/pending"
	"storysync/pkg/logger"
)

// GalleryState stages image additions and removals for one edit session.
// Nothing here is persisted; unresolved blob operations reach the pending
// store only through Commit.
type GalleryState struct {
	mu       sync.Mutex
	images   []model.GalleryImage
	toDelete []model.GalleryImage
}

func NewGalleryState() *GalleryState {
	return &GalleryState{}
}

func (g *GalleryState) AddImage(image model.GalleryImage) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.images = append(g.images, image)
}

// RemoveImage moves an image from the staged set into the to-delete set.
func (g *GalleryState) RemoveImage(image model.GalleryImage) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, img := range g.images {
		if img.RemotePath == image.RemotePath {
			g.images = append(g.images[:i], g.images[i+1:]...)

			break
		}
	}
	g.toDelete = append(g.toDelete, image)
}

func (g *GalleryState) Images() []model.GalleryImage {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]model.GalleryImage(nil), g.images...)
}

func (g *GalleryState) ImagesToBeDeleted() []model.GalleryImage {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]model.GalleryImage(nil), g.toDelete...)
}

func (g *GalleryState) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.images = nil
	g.toDelete = nil
}

// RemoteImagePath mints the remote path for a staged local image. The
// extension comes from sniffing the file content.
func RemoteImagePath(owner, localRef string) string {
	ext := ".bin"
	if mtype, err := mimetype.DetectFile(localRef); err == nil {
		ext = mtype.Extension()
	}

	return fmt.Sprintf("images/%s/%s%s", owner, uuid.New().String(), ext)
}

// GalleryCommitter reconciles a staging area against the blob store when
// an edit is committed. Uploads that cannot be confirmed immediately and
// deletes that fail immediately become pending entries.
type GalleryCommitter struct {
	uploader     blob.Uploader
	remover      blob.Remover
	pendingStore pending.Store
}

func NewGalleryCommitter(uploader blob.Uploader, remover blob.Remover, store pending.Store) *GalleryCommitter {
	return &GalleryCommitter{
		uploader:     uploader,
		remover:      remover,
		pendingStore: store,
	}
}

// Commit drains the staging area. The gallery is cleared afterwards; it
// has no existence beyond one edit session.
func (c *GalleryCommitter) Commit(ctx context.Context, gallery *GalleryState) {
	defer gallery.Clear()

	for _, image := range gallery.Images() {
		result, err := c.uploader.Put(ctx, image.RemotePath, image.LocalRef, "")
		if err == nil {
			continue
		}

		if _, qErr := c.pendingStore.EnqueueUpload(ctx, image.RemotePath, image.LocalRef,
			result.SessionToken); qErr != nil {
			logger.Error("failed to enqueue pending upload", "path", image.RemotePath, "err", qErr)

			continue
		}
		logger.Debug("image upload deferred", "path", image.RemotePath, "err", err)
	}

	for _, image := range gallery.ImagesToBeDeleted() {
		if err := c.remover.Remove(ctx, image.RemotePath); err != nil {
			if _, qErr := c.pendingStore.EnqueueDelete(ctx, image.RemotePath); qErr != nil {
				logger.Error("failed to enqueue pending delete", "path", image.RemotePath, "err", qErr)

				continue
			}
			logger.Debug("image delete deferred", "path", image.RemotePath, "err", err)
		}
	}
}
