package abstraction

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/domain/model"
)

// ImageEditor edits the image set of an owned story through a gallery
// session.
type ImageEditor interface {
	Attach(ctx context.Context, id primitive.ObjectID, localRefs []string) (*model.Story, error)
	Detach(ctx context.Context, id primitive.ObjectID, remotePaths []string) (*model.Story, error)
}
