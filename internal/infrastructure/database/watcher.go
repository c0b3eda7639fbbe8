package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storysync/pkg/logger"
)

// StoryWatcher turns the collection's change stream into a coarse
// notification channel. Delete events carry no full document, so the
// stream is not filtered by owner here; consumers re-query their own
// scope on each tick.
type StoryWatcher struct {
	db *Database
}

func NewStoryWatcher(db *Database) *StoryWatcher {
	return &StoryWatcher{db: db}
}

func (w *StoryWatcher) Watch(ctx context.Context, owner string) (<-chan struct{}, error) {
	coll := w.db.Client.Database(w.db.DBName).Collection(StoryCollection)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": []string{"insert", "update", "replace", "delete"}},
		}}},
	}

	stream, err := coll.Watch(ctx, pipeline, options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, err
	}

	out := make(chan struct{}, 1)
	go w.consumeLoop(ctx, stream, out, owner)

	return out, nil
}

func (w *StoryWatcher) consumeLoop(ctx context.Context, stream *mongo.ChangeStream, out chan struct{}, owner string) {
	defer close(out)
	defer func() {
		if err := stream.Close(context.Background()); err != nil {
			logger.Error("failed to close change stream", "err", err)
		}
	}()

	for stream.Next(ctx) {
		select {
		case out <- struct{}{}:
		case <-ctx.Done():
			return
		default:
			// a notification is already queued; coalesce
		}
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		logger.Error("change stream ended", "owner", owner, "err", err)
	}
}
