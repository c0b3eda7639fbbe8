package blob

import "context"

// Remover deletes a remote object. Removing an already-absent object
// reports success.
type Remover interface {
	Remove(ctx context.Context, path string) error
}
