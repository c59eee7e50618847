package identity

import (
	"context"
	"strings"
)

// StaticResolver resolves handles from a fixed in-memory set. Used in
// tests and in deployments without a directory service.
type StaticResolver struct {
	byUsername map[string]Identity
}

// NewStaticResolver creates a resolver over the given identities.
func NewStaticResolver(users ...Identity) *StaticResolver {
	m := make(map[string]Identity, len(users))
	for _, u := range users {
		m[strings.ToLower(u.Username)] = u
	}
	return &StaticResolver{byUsername: m}
}

// Resolve returns the identity registered for username, ignoring case.
func (r *StaticResolver) Resolve(_ context.Context, username string) (*Identity, error) {
	u, ok := r.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	return &u, nil
}
