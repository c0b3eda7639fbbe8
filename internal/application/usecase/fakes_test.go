package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/domain/entity"
	"storysync/internal/domain/errs"
	"storysync/internal/domain/model"
)

type fakeIdentity struct {
	owner string
}

func (f *fakeIdentity) CurrentIdentity() (string, bool) {
	return f.owner, f.owner != ""
}

func (f *fakeIdentity) LoggedIn() bool {
	return f.owner != ""
}

// memStore is an in-memory stand-in for the durable pending store.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	uploads []model.PendingUpload
	deletes []model.PendingDelete
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) EnqueueUpload(_ context.Context, remotePath, sourceRef, sessionToken string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.uploads = append(s.uploads, model.PendingUpload{
		ID:           s.nextID,
		RemotePath:   remotePath,
		SourceRef:    sourceRef,
		SessionToken: sessionToken,
	})

	return s.nextID, nil
}

func (s *memStore) EnqueueDelete(_ context.Context, remotePath string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.deletes = append(s.deletes, model.PendingDelete{ID: s.nextID, RemotePath: remotePath})

	return s.nextID, nil
}

func (s *memStore) ListUploads(_ context.Context) ([]model.PendingUpload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.PendingUpload(nil), s.uploads...), nil
}

func (s *memStore) ListDeletes(_ context.Context) ([]model.PendingDelete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.PendingDelete(nil), s.deletes...), nil
}

func (s *memStore) UpdateUploadSession(_ context.Context, id int64, sessionToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.uploads {
		if s.uploads[i].ID == id {
			s.uploads[i].SessionToken = sessionToken
		}
	}

	return nil
}

func (s *memStore) RemoveUpload(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.uploads {
		if s.uploads[i].ID == id {
			s.uploads = append(s.uploads[:i], s.uploads[i+1:]...)

			break
		}
	}

	return nil
}

func (s *memStore) RemoveDelete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.deletes {
		if s.deletes[i].ID == id {
			s.deletes = append(s.deletes[:i], s.deletes[i+1:]...)

			break
		}
	}

	return nil
}

type fakeUploader struct {
	mu      sync.Mutex
	fail    map[string]bool
	failAll bool
	token   string
	calls   []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{fail: make(map[string]bool)}
}

func (f *fakeUploader) Put(_ context.Context, path, _, sessionToken string) (entity.PutResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)

	token := sessionToken
	if f.token != "" {
		token = f.token
	}
	if f.failAll || f.fail[path] {
		return entity.PutResult{SessionToken: token}, errors.New("upload failed")
	}

	return entity.PutResult{SessionToken: token, Size: 1}, nil
}

func (f *fakeUploader) putCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

type fakeBlobRemover struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls []string
}

func newFakeBlobRemover() *fakeBlobRemover {
	return &fakeBlobRemover{fail: make(map[string]bool)}
}

func (f *fakeBlobRemover) Remove(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	if f.fail[path] {
		return errors.New("remove failed")
	}

	return nil
}

func (f *fakeBlobRemover) removeCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

// fakeDB backs the writer, retriever, remover and lister interfaces with a
// plain map guarded by a mutex.
type fakeDB struct {
	mu      sync.Mutex
	stories map[primitive.ObjectID]model.Story
}

func newFakeDB() *fakeDB {
	return &fakeDB{stories: make(map[primitive.ObjectID]model.Story)}
}

func (f *fakeDB) Insert(_ context.Context, story *model.Story) (*model.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if story.ID.IsZero() {
		story.ID = primitive.NewObjectID()
	}
	f.stories[story.ID] = *story

	return story, nil
}

func (f *fakeDB) Update(_ context.Context, story *model.Story) (*model.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.stories[story.ID]
	if !ok || existing.Owner != story.Owner {
		return nil, errs.ErrNotFound
	}
	f.stories[story.ID] = *story

	return story, nil
}

func (f *fakeDB) GetByID(_ context.Context, id primitive.ObjectID, owner string) (*model.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	story, ok := f.stories[id]
	if !ok || story.Owner != owner {
		return nil, errs.ErrNotFound
	}

	return &story, nil
}

func (f *fakeDB) DeleteOwned(_ context.Context, id primitive.ObjectID, owner string) (*model.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	story, ok := f.stories[id]
	if !ok || story.Owner != owner {
		return nil, errs.ErrNotFound
	}
	delete(f.stories, id)

	return &story, nil
}

func (f *fakeDB) DeleteAllOwned(_ context.Context, owner string) ([]model.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed []model.Story
	for id, story := range f.stories {
		if story.Owner == owner {
			removed = append(removed, story)
			delete(f.stories, id)
		}
	}

	return removed, nil
}

func (f *fakeDB) ListOwned(_ context.Context, owner string, since, until *time.Time) ([]model.Story, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Story
	for _, story := range f.stories {
		if story.Owner != owner {
			continue
		}
		if since != nil && story.Date.Before(*since) {
			continue
		}
		if until != nil && !story.Date.Before(*until) {
			continue
		}
		result = append(result, story)
	}

	return result, nil
}

// fakeWatcher hands out a fresh notification channel per Watch call and
// closes it when the subscription context ends, mirroring the real
// watcher. Tests drive every live subscription with notify(); overlapped()
// reports whether a Watch call ever found an earlier subscription still
// open.
type fakeWatcher struct {
	mu      sync.Mutex
	subs    []*fakeWatchSub
	overlap bool
}

type fakeWatchSub struct {
	events chan struct{}
	closed bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{}
}

func (f *fakeWatcher) Watch(ctx context.Context, _ string) (<-chan struct{}, error) {
	f.mu.Lock()
	for _, prev := range f.subs {
		if !prev.closed {
			f.overlap = true
		}
	}
	sub := &fakeWatchSub{events: make(chan struct{}, 16)}
	f.subs = append(f.subs, sub)
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		sub.closed = true
		close(sub.events)
		f.mu.Unlock()
	}()

	return sub.events, nil
}

func (f *fakeWatcher) notify() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if !sub.closed {
			sub.events <- struct{}{}
		}
	}
}

func (f *fakeWatcher) overlapped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.overlap
}
