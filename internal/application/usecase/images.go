package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/domain/errs"
	"storysync/internal/domain/model"
	"storysync/internal/domain/repository/database"
	"storysync/internal/domain/repository/identity"
)

// ImageService edits the image set of an owned story. Each call stages
// its changes in a fresh gallery session and commits it against the blob
// store; uploads and deletes that cannot be confirmed immediately land in
// the pending store, but the story references are updated either way.
type ImageService struct {
	writer    database.Writer
	retriever database.Retriever
	committer *GalleryCommitter
	identity  identity.Provider
}

func NewImageService(writer database.Writer, retriever database.Retriever,
	committer *GalleryCommitter, provider identity.Provider,
) *ImageService {
	return &ImageService{
		writer:    writer,
		retriever: retriever,
		committer: committer,
		identity:  provider,
	}
}

// Attach stages the given local images, commits them, and appends their
// remote paths to the story's image list.
func (s *ImageService) Attach(ctx context.Context, id primitive.ObjectID, localRefs []string) (*model.Story, error) {
	owner, ok := s.identity.CurrentIdentity()
	if !ok {
		return nil, errs.ErrUnauthenticated
	}
	if len(localRefs) == 0 {
		return nil, errors.New("no images to attach")
	}

	story, err := s.retriever.GetByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	gallery := NewGalleryState()
	for _, ref := range localRefs {
		gallery.AddImage(model.GalleryImage{
			LocalRef:   ref,
			RemotePath: RemoteImagePath(owner, ref),
		})
	}

	staged := gallery.Images()
	s.committer.Commit(ctx, gallery)

	for _, image := range staged {
		story.Images = append(story.Images, image.RemotePath)
	}

	return s.writer.Update(ctx, story)
}

// Detach drops the given remote paths from the story's image list and
// removes the objects from the blob store.
func (s *ImageService) Detach(ctx context.Context, id primitive.ObjectID, remotePaths []string) (*model.Story, error) {
	owner, ok := s.identity.CurrentIdentity()
	if !ok {
		return nil, errs.ErrUnauthenticated
	}
	if len(remotePaths) == 0 {
		return nil, errors.New("no images to detach")
	}

	story, err := s.retriever.GetByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	detached := make(map[string]bool, len(remotePaths))
	gallery := NewGalleryState()
	for _, path := range remotePaths {
		detached[path] = true
		gallery.RemoveImage(model.GalleryImage{RemotePath: path})
	}

	s.committer.Commit(ctx, gallery)

	kept := make([]string, 0, len(story.Images))
	for _, path := range story.Images {
		if !detached[path] {
			kept = append(kept, path)
		}
	}
	story.Images = kept

	return s.writer.Update(ctx, story)
}
