package blob

import (
	"context"

	"storysync/internal/domain/entity"
)

// Uploader puts a local object at a remote path. An empty sessionToken
// starts a fresh upload; passing a token returned by an earlier attempt
// resumes it. The returned result carries the token to store for
// resumption even when the put fails.
type Uploader interface {
	Put(ctx context.Context, path, sourceRef, sessionToken string) (entity.PutResult, error)
}
