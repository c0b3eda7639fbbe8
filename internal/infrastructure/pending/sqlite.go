// Package pending persists outstanding blob operations in a local SQLite
// file so they survive process restarts.
package pending

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"storysync/internal/domain/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS pending_uploads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	remote_path TEXT NOT NULL,
	source_ref TEXT NOT NULL,
	session_token TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS pending_deletes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	remote_path TEXT NOT NULL
);`

type SQLiteStore struct {
	db *sql.DB
}

func Open(cfg Config) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pending store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to init pending store schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) EnqueueUpload(ctx context.Context, remotePath, sourceRef, sessionToken string) (int64, error) {
	query := `INSERT INTO pending_uploads (remote_path, source_ref, session_token) VALUES (?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query, remotePath, sourceRef, sessionToken)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue upload: %w", err)
	}

	return result.LastInsertId()
}

func (s *SQLiteStore) EnqueueDelete(ctx context.Context, remotePath string) (int64, error) {
	query := `INSERT INTO pending_deletes (remote_path) VALUES (?)`
	result, err := s.db.ExecContext(ctx, query, remotePath)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue delete: %w", err)
	}

	return result.LastInsertId()
}

func (s *SQLiteStore) ListUploads(ctx context.Context) ([]model.PendingUpload, error) {
	query := `SELECT id, remote_path, source_ref, session_token FROM pending_uploads ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending uploads: %w", err)
	}
	defer rows.Close()

	var result []model.PendingUpload
	for rows.Next() {
		var item model.PendingUpload
		if err := rows.Scan(&item.ID, &item.RemotePath, &item.SourceRef, &item.SessionToken); err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *SQLiteStore) ListDeletes(ctx context.Context) ([]model.PendingDelete, error) {
	query := `SELECT id, remote_path FROM pending_deletes ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending deletes: %w", err)
	}
	defer rows.Close()

	var result []model.PendingDelete
	for rows.Next() {
		var item model.PendingDelete
		if err := rows.Scan(&item.ID, &item.RemotePath); err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *SQLiteStore) UpdateUploadSession(ctx context.Context, id int64, sessionToken string) error {
	query := `UPDATE pending_uploads SET session_token = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, sessionToken, id); err != nil {
		return fmt.Errorf("failed to update upload session: %w", err)
	}

	return nil
}

func (s *SQLiteStore) RemoveUpload(ctx context.Context, id int64) error {
	query := `DELETE FROM pending_uploads WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to remove pending upload: %w", err)
	}

	return nil
}

func (s *SQLiteStore) RemoveDelete(ctx context.Context, id int64) error {
	query := `DELETE FROM pending_deletes WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to remove pending delete: %w", err)
	}

	return nil
}
