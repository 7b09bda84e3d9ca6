// Package auth implements the session gate: JWT session tokens carried in a
// cookie, the identity they resolve to, and fiber middleware guarding
// protected routes.
package auth

import (
	"context"

	"github.com/dmitrijs2005/learningjournal/internal/common"
)

// Identity is the authenticated principal of a request.
type Identity struct {
	UserID   string
	UserName string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// RequireIdentity is the service-level guard for mutating operations.
func RequireIdentity(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return Identity{}, common.ErrorAuthorizationRequired
	}
	return id, nil
}
