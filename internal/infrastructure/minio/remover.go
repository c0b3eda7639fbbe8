package minio

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
)

// Remover deletes objects. Removing an absent object reports success,
// which keeps pending-delete reconciliation idempotent.
type Remover struct {
	minioClient *minio.Client
	bucket      string
	cfg         *RemoverConfig
}

func NewRemover(client *Client, cfg *RemoverConfig) *Remover {
	return &Remover{
		minioClient: client.MinioClient,
		bucket:      client.Bucket,
		cfg:         cfg,
	}
}

func (r *Remover) Remove(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Timeout)*time.Millisecond)
	defer cancel()

	return r.minioClient.RemoveObject(ctx, r.bucket, path, minio.RemoveObjectOptions{})
}
