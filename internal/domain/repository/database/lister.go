package database

import (
	"context"
	"time"

	"storysync/internal/domain/model"
)

// Lister returns an owner's stories sorted by timestamp descending,
// optionally restricted to the half-open window [since, until).
type Lister interface {
	ListOwned(ctx context.Context, owner string, since, until *time.Time) ([]model.Story, error)
}
