package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storysync/internal/domain/errs"
	"storysync/internal/domain/model"
)

type StoryLister struct {
	db *Database
}

func NewStoryLister(db *Database) *StoryLister {
	return &StoryLister{db: db}
}

// ListOwned returns the owner's stories sorted by date descending. The
// optional window is half-open: date >= since, date < until.
func (l *StoryLister) ListOwned(ctx context.Context, owner string, since, until *time.Time) ([]model.Story, error) {
	ctx, cancel := context.WithTimeout(ctx, l.db.QueryTimeout)
	defer cancel()

	coll := l.db.Client.Database(l.db.DBName).Collection(StoryCollection)

	filter := bson.M{"owner": owner}

	if since != nil || until != nil {
		dateFilter := bson.M{}
		if since != nil {
			dateFilter["$gte"] = *since
		}
		if until != nil {
			dateFilter["$lt"] = *until
		}
		filter["date"] = dateFilter
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list stories: %s", errs.ErrTransient, err)
	}
	defer cursor.Close(ctx)

	var stories []model.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, fmt.Errorf("%w: decode stories: %s", errs.ErrTransient, err)
	}

	return stories, nil
}
