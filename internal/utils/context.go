package utils

import (
	"context"

	"github.com/MKhiriev/go-blog-sync/models"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the context key under which the auth middleware stores the
// verified bearer token claims.
var ClaimsCtxKey = contextKey("claims")

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims models.Claims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}

// GetClaimsFromContext returns the claims stored by [WithClaims]. ok is false
// for anonymous requests.
func GetClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(models.Claims)
	return claims, ok
}
