package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storysync/internal/domain/errs"
	"storysync/internal/domain/model"
)

type StoryWriter struct {
	db *Database
}

func NewStoryWriter(db *Database) *StoryWriter {
	return &StoryWriter{db: db}
}

func (w *StoryWriter) Insert(ctx context.Context, story *model.Story) (*model.Story, error) {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	if story.ID.IsZero() {
		story.ID = primitive.NewObjectID()
	}

	coll := w.db.Client.Database(w.db.DBName).Collection(StoryCollection)
	if _, err := coll.InsertOne(ctx, story); err != nil {
		return nil, fmt.Errorf("%w: insert story: %s", errs.ErrTransient, err)
	}

	return story, nil
}

// Update rewrites the mutable fields of an owned story. The owner field is
// never part of the update document.
func (w *StoryWriter) Update(ctx context.Context, story *model.Story) (*model.Story, error) {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	coll := w.db.Client.Database(w.db.DBName).Collection(StoryCollection)

	filter := bson.M{"_id": story.ID, "owner": story.Owner}
	update := bson.M{"$set": bson.M{
		"title":       story.Title,
		"description": story.Description,
		"mood":        story.Mood,
		"date":        story.Date,
		"images":      story.Images,
	}}

	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("%w: update story: %s", errs.ErrTransient, err)
	}
	if result.MatchedCount == 0 {
		return nil, errs.ErrNotFound
	}

	return story, nil
}
