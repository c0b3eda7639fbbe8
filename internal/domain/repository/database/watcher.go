package database

import "context"

// Watcher delivers change notifications for an owner's stories. The
// channel closes when ctx is cancelled or the underlying subscription
// ends.
type Watcher interface {
	Watch(ctx context.Context, owner string) (<-chan struct{}, error)
}
