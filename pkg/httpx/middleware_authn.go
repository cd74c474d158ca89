package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/soomhq/soom-auth/pkg/jwtx"
	"github.com/soomhq/soom-auth/pkg/slogx"
)

// TokenDecoder verifies an access token and returns its claims.
type TokenDecoder interface {
	Decode(token string) (jwtx.Claims, error)
}

// IdentityResolver turns a token subject (email) into a request identity.
// It fails when the user no longer exists or is not active.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, email string) (Identity, error)
}

// Authenticate inspects the Authorization header once per request. A
// missing header, an unrecognized scheme, a bad token, or a failed user
// lookup all let the request continue unauthenticated; routes that need
// an identity enforce it themselves (see RequireAuth). On success the
// resolved identity is bound into the request context.
func Authenticate(dec TokenDecoder, resolve IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := dec.Decode(raw)
			if err != nil {
				slogx.FromContext(ctx).Debug("bearer token rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			if _, bound := IdentityFrom(ctx); bound {
				next.ServeHTTP(w, r)
				return
			}

			id, err := resolve.ResolveIdentity(ctx, claims.Subject)
			if err != nil {
				slogx.FromContext(ctx).Debug("identity resolution failed",
					"subject", claims.Subject, "err", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
		})
	}
}

// RequireAuth rejects requests that reached the handler without a bound
// identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			WriteFailure(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
