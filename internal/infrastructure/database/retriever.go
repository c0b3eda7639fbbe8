package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storysync/internal/domain/errs"
	"storysync/internal/domain/model"
)

type StoryRetriever struct {
	db *Database
}

func NewStoryRetriever(db *Database) *StoryRetriever {
	return &StoryRetriever{db: db}
}

func (r *StoryRetriever) GetByID(ctx context.Context, id primitive.ObjectID, owner string) (*model.Story, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	coll := r.db.Client.Database(r.db.DBName).Collection(StoryCollection)

	var story model.Story
	err := coll.FindOne(ctx, bson.M{"_id": id, "owner": owner}).Decode(&story)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}

		return nil, fmt.Errorf("%w: retrieve story: %s", errs.ErrTransient, err)
	}

	return &story, nil
}
