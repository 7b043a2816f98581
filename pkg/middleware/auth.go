package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/quodex/invizo/pkg/auth"
	"github.com/quodex/invizo/pkg/logger"
	"github.com/quodex/invizo/pkg/response"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// IdentityLookup resolves the current user record for a verified token
// subject. Returning false means the subject no longer exists and the
// request stays unauthenticated.
type IdentityLookup func(email string) (Identity, bool)

type identityKey struct{}

// IdentityFromCtx extracts the authenticated identity from ctx.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity stores an identity in ctx. Exported for tests that exercise
// role-gated handlers without a full token round trip.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// Authenticate is the per-request authentication gate.
//
// It reads the bearer token, validates it, and re-loads the subject's
// current record via lookup so role changes after token issuance take
// effect immediately. On any failure (missing header, bad token, expiry,
// unknown subject) the request proceeds UNAUTHENTICATED; rejection is the
// authorization middleware's job, which keeps public routes working without
// a second routing table here.
func Authenticate(lookup IdentityLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.WithCtx(r.Context()).Debug("auth: token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			identity, ok := lookup(claims.Subject)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no authenticated identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromCtx(r.Context()); !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
