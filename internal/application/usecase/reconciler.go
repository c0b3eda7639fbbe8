package usecase

import (
	"context"

	"storysync/internal/domain/repository/blob"
	"storysync/internal/domain/repository/pending"
	"storysync/pkg/logger"
)

// Reconciler drains the pending-operation store against the blob store.
// It runs at engine start and on regained connectivity; an entry is
// removed only when the remote confirms it, so a failed or cancelled pass
// simply leaves the entry for the next one. Failures are never surfaced
// to callers.
type Reconciler struct {
	store    pending.Store
	uploader blob.Uploader
	remover  blob.Remover
}

func NewReconciler(store pending.Store, uploader blob.Uploader, remover blob.Remover) *Reconciler {
	return &Reconciler{
		store:    store,
		uploader: uploader,
		remover:  remover,
	}
}

func (r *Reconciler) Drain(ctx context.Context) {
	r.drainUploads(ctx)
	r.drainDeletes(ctx)
}

func (r *Reconciler) drainUploads(ctx context.Context) {
	uploads, err := r.store.ListUploads(ctx)
	if err != nil {
		logger.Error("failed to list pending uploads", "err", err)

		return
	}

	for _, upload := range uploads {
		if ctx.Err() != nil {
			return
		}

		result, err := r.uploader.Put(ctx, upload.RemotePath, upload.SourceRef, upload.SessionToken)
		if err != nil {
			// keep the entry; refresh the token so the next pass resumes
			if result.SessionToken != upload.SessionToken {
				if uErr := r.store.UpdateUploadSession(ctx, upload.ID, result.SessionToken); uErr != nil {
					logger.Error("failed to refresh upload session", "id", upload.ID, "err", uErr)
				}
			}
			logger.Debug("pending upload retry failed", "path", upload.RemotePath, "err", err)

			continue
		}

		if err := r.store.RemoveUpload(ctx, upload.ID); err != nil {
			logger.Error("failed to remove confirmed upload", "id", upload.ID, "err", err)
		}
	}
}

func (r *Reconciler) drainDeletes(ctx context.Context) {
	deletes, err := r.store.ListDeletes(ctx)
	if err != nil {
		logger.Error("failed to list pending deletes", "err", err)

		return
	}

	for _, del := range deletes {
		if ctx.Err() != nil {
			return
		}

		if err := r.remover.Remove(ctx, del.RemotePath); err != nil {
			logger.Debug("pending delete retry failed", "path", del.RemotePath, "err", err)

			continue
		}

		if err := r.store.RemoveDelete(ctx, del.ID); err != nil {
			logger.Error("failed to remove confirmed delete", "id", del.ID, "err", err)
		}
	}
}
