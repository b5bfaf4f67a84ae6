// Package experts resolves the identity of the agricultural expert
// behind each request. Production deployments verify OIDC bearer tokens;
// development deployments can fall back to trusted headers.
package experts

import (
	"context"
)

// Expert is the authenticated identity attached to a request.
type Expert struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type contextKey struct{}

// WithExpert returns a context carrying the expert identity.
func WithExpert(ctx context.Context, e Expert) context.Context {
	return context.WithValue(ctx, contextKey{}, e)
}

// FromContext returns the expert identity attached to the context.
func FromContext(ctx context.Context) (Expert, bool) {
	e, ok := ctx.Value(contextKey{}).(Expert)
	return e, ok
}
