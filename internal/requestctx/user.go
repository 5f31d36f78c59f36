// Package requestctx carries the authenticated user of a request in context.Context.
package requestctx

import (
	"context"

	"github.com/01moynul/binner-golang/internal/models"
)

type userContextKey struct{}

// WithUser stores the user context for downstream storage calls.
func WithUser(ctx context.Context, user models.UserContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the user context, if any.
func UserFromContext(ctx context.Context) (models.UserContext, bool) {
	if ctx == nil {
		return models.UserContext{}, false
	}
	user, ok := ctx.Value(userContextKey{}).(models.UserContext)
	return user, ok
}

// UserID returns the scoping user id, or nil when the request is anonymous.
func UserID(ctx context.Context) *int64 {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil
	}
	id := user.UserID
	return &id
}
