package abstraction

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/domain/model"
)

// StoryEditor covers the CRUD surface of the story repository, scoped to
// the active identity.
type StoryEditor interface {
	Create(ctx context.Context, story *model.Story) (*model.Story, error)
	Update(ctx context.Context, story *model.Story) (*model.Story, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Story, error)
	DeleteAll(ctx context.Context) (bool, error)
}
