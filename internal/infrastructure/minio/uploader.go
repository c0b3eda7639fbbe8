package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"storysync/internal/domain/entity"
)

const chunkSize = 5 * 1024 * 1024

// Uploader performs resumable puts. An upload is split into chunks named
// after an opaque session token; a resumed put skips chunks the bucket
// already holds and composes the final object once every chunk is present.
type Uploader struct {
	minioClient *minio.Client
	bucket      string
	cfg         *UploaderConfig
}

func NewUploader(client *Client, cfg *UploaderConfig) *Uploader {
	return &Uploader{
		minioClient: client.MinioClient,
		bucket:      client.Bucket,
		cfg:         cfg,
	}
}

func (u *Uploader) Put(ctx context.Context, path, sourceRef, sessionToken string) (entity.PutResult, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(u.cfg.Timeout)*time.Millisecond)
	defer cancel()

	resuming := sessionToken != ""
	if sessionToken == "" {
		sessionToken = uuid.New().String()
	}
	result := entity.PutResult{SessionToken: sessionToken}

	file, err := os.Open(localPath(sourceRef))
	if err != nil {
		return result, fmt.Errorf("open source: %w", err)
	}
	defer file.Close()

	chunkNames, detectedMIME, totalBytes, err := u.putChunks(ctx, file, sessionToken, resuming)
	if err != nil {
		return result, err
	}

	if len(chunkNames) == 0 {
		return result, errors.New("read error: empty file")
	}

	result.Size = totalBytes
	result.Type = detectedMIME

	if err := u.composeChunks(ctx, chunkNames, path); err != nil {
		return result, err
	}

	u.cleanupChunks(ctx, chunkNames)

	return result, nil
}

func (u *Uploader) putChunks(ctx context.Context, file io.Reader, sessionToken string,
	resuming bool,
) ([]string, string, int64, error) {
	var chunkNames []string
	var detectedMIME string
	var totalBytes int64
	buf := make([]byte, chunkSize)
	chunkIndex := 0

	for {
		n, err := io.ReadFull(file, buf)
		if n > 0 {
			chunk := buf[:n]

			if chunkIndex == 0 {
				detectedMIME = mimetype.Detect(chunk).String()
			}

			chunkName := fmt.Sprintf("chunk-%s-%d", sessionToken, chunkIndex)
			chunkNames = append(chunkNames, chunkName)

			if !resuming || !u.chunkExists(ctx, chunkName, int64(n)) {
				_, putErr := u.minioClient.PutObject(ctx, u.bucket, chunkName, bytes.NewReader(chunk), int64(n),
					minio.PutObjectOptions{
						ContentType: detectedMIME,
					})
				if putErr != nil {
					return nil, "", 0, fmt.Errorf("chunk upload failed: %w", putErr)
				}
			}

			totalBytes += int64(n)
			chunkIndex++
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, "", 0, fmt.Errorf("read error: %w", err)
		}
	}

	return chunkNames, detectedMIME, totalBytes, nil
}

func (u *Uploader) chunkExists(ctx context.Context, chunkName string, size int64) bool {
	info, err := u.minioClient.StatObject(ctx, u.bucket, chunkName, minio.StatObjectOptions{})

	return err == nil && info.Size == size
}

func (u *Uploader) composeChunks(ctx context.Context, chunkNames []string, finalName string) error {
	sources := make([]minio.CopySrcOptions, len(chunkNames))
	for i, name := range chunkNames {
		sources[i] = minio.CopySrcOptions{Bucket: u.bucket, Object: name}
	}

	dst := minio.CopyDestOptions{Bucket: u.bucket, Object: finalName}
	if _, err := u.minioClient.ComposeObject(ctx, dst, sources...); err != nil {
		return fmt.Errorf("compose error: %w", err)
	}

	return nil
}

func (u *Uploader) cleanupChunks(ctx context.Context, chunkNames []string) {
	for _, name := range chunkNames {
		// best effort; an orphaned chunk is overwritten by the next attempt
		_ = u.minioClient.RemoveObject(ctx, u.bucket, name, minio.RemoveObjectOptions{})
	}
}

func localPath(sourceRef string) string {
	return strings.TrimPrefix(sourceRef, "file://")
}
