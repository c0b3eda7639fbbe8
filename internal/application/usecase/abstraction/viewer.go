package abstraction

import (
	"context"
	"time"

	"storysync/internal/domain/entity"
)

// FeedViewer produces a point-in-time grouped view of the active
// identity's stories. day, when set, restricts the view to that local
// calendar day.
type FeedViewer interface {
	Snapshot(ctx context.Context, loc *time.Location, day *time.Time) ([]entity.DayGroup, error)
}
