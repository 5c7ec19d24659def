package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-blog-sync/internal/utils"
	"github.com/MKhiriev/go-blog-sync/models"
)

// auth is an HTTP middleware that verifies an optional bearer token.
//
// Requests without an "Authorization" header pass through as anonymous;
// the store rules decide what anonymous callers may do. A header that is
// present must carry a valid HS256 token signed with the configured key,
// otherwise the request is rejected with 401. On success the verified
// claims are stored in the request context via [utils.WithClaims].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		claims, err := utils.ValidateAndParseJWTToken(tokenString, h.tokenSignKey, h.tokenIssuer)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidToken, err))
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithClaims(r.Context(), claims)))
	})
}

// actorFromRequest returns the verified identity of the caller, or nil for
// anonymous requests.
func actorFromRequest(r *http.Request) *models.Identity {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		return nil
	}
	identity := claims.Identity()
	return &identity
}
