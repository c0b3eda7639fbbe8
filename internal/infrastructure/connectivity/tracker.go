package connectivity

import (
	"context"
	"sync"

	"storysync/internal/domain/repository/connectivity"
)

// Tracker consumes an observer stream and keeps the most recent status for
// synchronous callers.
type Tracker struct {
	mu   sync.RWMutex
	last connectivity.Status
}

func NewTracker() *Tracker {
	return &Tracker{last: connectivity.Unavailable}
}

// Run consumes statuses until ctx is cancelled or the channel closes.
// onAvailable, when set, fires on every transition into Available.
func (t *Tracker) Run(ctx context.Context, statuses <-chan connectivity.Status, onAvailable func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case status, ok := <-statuses:
			if !ok {
				return
			}
			t.mu.Lock()
			prev := t.last
			t.last = status
			t.mu.Unlock()

			if status == connectivity.Available && prev != connectivity.Available && onAvailable != nil {
				onAvailable()
			}
		}
	}
}

func (t *Tracker) Last() connectivity.Status {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.last
}
