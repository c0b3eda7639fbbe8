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

type StoryRemover struct {
	db *Database
}

func NewStoryRemover(db *Database) *StoryRemover {
	return &StoryRemover{db: db}
}

// DeleteOwned removes one story matching both id and owner. A story that
// matches on id but belongs to another identity reports ErrNotFound, never
// success.
func (r *StoryRemover) DeleteOwned(ctx context.Context, id primitive.ObjectID, owner string) (*model.Story, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	coll := r.db.Client.Database(r.db.DBName).Collection(StoryCollection)

	var story model.Story
	err := coll.FindOneAndDelete(ctx, bson.M{"_id": id, "owner": owner}).Decode(&story)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}

		return nil, fmt.Errorf("%w: delete story: %s", errs.ErrTransient, err)
	}

	return &story, nil
}

// DeleteAllOwned removes every story owned by the identity in one logical
// operation and returns their snapshots.
func (r *StoryRemover) DeleteAllOwned(ctx context.Context, owner string) ([]model.Story, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	coll := r.db.Client.Database(r.db.DBName).Collection(StoryCollection)

	filter := bson.M{"owner": owner}
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list stories for delete: %s", errs.ErrTransient, err)
	}
	defer cursor.Close(ctx)

	var stories []model.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, fmt.Errorf("%w: decode stories for delete: %s", errs.ErrTransient, err)
	}

	if _, err := coll.DeleteMany(ctx, filter); err != nil {
		return nil, fmt.Errorf("%w: delete stories: %s", errs.ErrTransient, err)
	}

	return stories, nil
}
