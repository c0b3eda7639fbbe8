package usecase

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/domain/errs"
	"storysync/internal/domain/model"
	"storysync/internal/domain/repository/blob"
	connectivityRepo "storysync/internal/domain/repository/connectivity"
	"storysync/internal/domain/repository/database"
	"storysync/internal/domain/repository/identity"
	"storysync/internal/domain/repository/pending"
	"storysync/pkg/logger"
)

// StoryService owns CRUD against the remote document store, scoped to the
// active identity. Blob dereferencing is best effort: a blob delete that
// fails immediately becomes a pending delete and is retried by the
// reconciler.
type StoryService struct {
	writer       database.Writer
	retriever    database.Retriever
	remover      database.Remover
	blobRemover  blob.Remover
	pendingStore pending.Store
	identity     identity.Provider
	status       func() connectivityRepo.Status
}

func NewStoryService(writer database.Writer, retriever database.Retriever, remover database.Remover,
	blobRemover blob.Remover, pendingStore pending.Store, provider identity.Provider,
	status func() connectivityRepo.Status,
) *StoryService {
	return &StoryService{
		writer:       writer,
		retriever:    retriever,
		remover:      remover,
		blobRemover:  blobRemover,
		pendingStore: pendingStore,
		identity:     provider,
		status:       status,
	}
}

// Create stamps the active identity as owner; any caller-supplied owner is
// overwritten.
func (s *StoryService) Create(ctx context.Context, story *model.Story) (*model.Story, error) {
	owner, ok := s.identity.CurrentIdentity()
	if !ok {
		return nil, errs.ErrUnauthenticated
	}

	story.Owner = owner
	if !story.Mood.Valid() {
		story.Mood = model.MoodNeutral
	}
	if story.Date.IsZero() {
		story.Date = time.Now().UTC()
	}

	return s.writer.Insert(ctx, story)
}

func (s *StoryService) Update(ctx context.Context, story *model.Story) (*model.Story, error) {
	owner, ok := s.identity.CurrentIdentity()
	if !ok {
		return nil, errs.ErrUnauthenticated
	}

	story.Owner = owner
	if !story.Mood.Valid() {
		return nil, fmt.Errorf("invalid mood %q", story.Mood)
	}

	return s.writer.Update(ctx, story)
}

func (s *StoryService) Get(ctx context.Context, id primitive.ObjectID) (*model.Story, error) {
	owner, ok := s.identity.CurrentIdentity()
	if !ok {
		return nil, errs.ErrUnauthenticated
	}

	return s.retriever.GetByID(ctx, id, owner)
}

// Delete removes one owned story and dereferences its blobs. A story
// owned by another identity reports ErrNotFound.
func (s *StoryService) Delete(ctx context.Context, id primitive.ObjectID) (*model.Story, error) {
	owner, ok := s.identity.CurrentIdentity()
	if !ok {
		return nil, errs.ErrUnauthenticated
	}

	story, err := s.remover.DeleteOwned(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	s.dereferenceBlobs(ctx, story.Images)

	return story, nil
}

// DeleteAll removes every story owned by the active identity. It is gated
// on connectivity because the blob cleanup pass is only worth attempting
// online.
func (s *StoryService) DeleteAll(ctx context.Context) (bool, error) {
	owner, ok := s.identity.CurrentIdentity()
	if !ok {
		return false, errs.ErrUnauthenticated
	}

	if s.status != nil && s.status() != connectivityRepo.Available {
		return false, fmt.Errorf("%w: no internet connection", errs.ErrTransient)
	}

	stories, err := s.remover.DeleteAllOwned(ctx, owner)
	if err != nil {
		return false, err
	}

	for _, story := range stories {
		s.dereferenceBlobs(ctx, story.Images)
	}

	return true, nil
}

func (s *StoryService) dereferenceBlobs(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := s.blobRemover.Remove(ctx, path); err != nil {
			if _, qErr := s.pendingStore.EnqueueDelete(ctx, path); qErr != nil {
				logger.Error("failed to enqueue pending delete", "path", path, "err", qErr)

				continue
			}
			logger.Debug("blob delete deferred", "path", path, "err", err)
		}
	}
}
