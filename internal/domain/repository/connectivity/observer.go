package connectivity

import "context"

type Status string

const (
	Available   Status = "available"
	Unavailable Status = "unavailable"
	Losing      Status = "losing"
	Lost        Status = "lost"
)

// Observer emits connectivity transitions. The engine only acts on the
// Available/Unavailable distinction.
type Observer interface {
	Observe(ctx context.Context) <-chan Status
}
