// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/quodex/invizo/pkg/middleware"
	"github.com/quodex/invizo/pkg/response"
)

// HasRole returns middleware that admits only authenticated identities
// holding one of the given roles. An unauthenticated request gets 401; an
// authenticated one with the wrong role gets 403. Both are terminal.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := middleware.IdentityFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}
			if !allowed[identity.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
