package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/domain/model"
)

type Retriever interface {
	GetByID(ctx context.Context, id primitive.ObjectID, owner string) (*model.Story, error)
}
