package database

import (
	"context"

	"storysync/internal/domain/model"
)

// Writer persists story creation and mutation. Both operations are scoped
// to the owner already stamped on the story.
type Writer interface {
	Insert(ctx context.Context, story *model.Story) (*model.Story, error)
	Update(ctx context.Context, story *model.Story) (*model.Story, error)
}
