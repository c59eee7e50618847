package identity

import (
	"context"
	"errors"
)

// ErrIdentityNotFound is returned when the directory has no user with
// the requested handle.
var ErrIdentityNotFound = errors.New("identity not found")

// Identity is a stable numeric user id with the directory's canonical
// spelling of the handle.
type Identity struct {
	ID       int64
	Username string
}

// Resolver maps a human-chosen handle to a stable identity. Resolution
// must complete before any registry write that depends on it; a failed
// resolution aborts the operation.
type Resolver interface {
	Resolve(ctx context.Context, username string) (*Identity, error)
}
