package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/domain/model"
)

// Remover deletes stories under an ownership scope. Both operations return
// snapshots of the removed documents so callers can dereference blobs.
type Remover interface {
	DeleteOwned(ctx context.Context, id primitive.ObjectID, owner string) (*model.Story, error)
	DeleteAllOwned(ctx context.Context, owner string) ([]model.Story, error)
}
