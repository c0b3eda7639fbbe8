package pending

import (
	"context"

	"storysync/internal/domain/model"
)

// Store is the durable record of outstanding blob operations. Entries
// survive process restarts until removed. Duplicate intents for the same
// remote path are legal and resolved independently.
type Store interface {
	EnqueueUpload(ctx context.Context, remotePath, sourceRef, sessionToken string) (int64, error)
	EnqueueDelete(ctx context.Context, remotePath string) (int64, error)
	ListUploads(ctx context.Context) ([]model.PendingUpload, error)
	ListDeletes(ctx context.Context) ([]model.PendingDelete, error)
	UpdateUploadSession(ctx context.Context, id int64, sessionToken string) error
	RemoveUpload(ctx context.Context, id int64) error
	RemoveDelete(ctx context.Context, id int64) error
}
