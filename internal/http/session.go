package http

import (
	"context"
	"net/http"
	"strings"

	"conciergerie/internal/core"
	"conciergerie/internal/metrics"
)

// Identity headers are set by the host application in front of the API.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type identityKey struct{}

// Identity is the caller as announced by the host.
type Identity struct {
	UserID string
	Role   core.Role
}

func (id Identity) Scope() metrics.Scope {
	return metrics.Scope{Role: id.Role, IdentityID: id.UserID}
}

// CurrentIdentity returns the identity stored by RequireIdentity.
func CurrentIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey{}).(Identity)
	return id, ok
}

// RequireIdentity rejects requests without a usable identity with 401.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			writeError(w, r, http.StatusUnauthorized, "missing "+HeaderUserID+" header")
			return
		}
		role, err := core.ParseRole(r.Header.Get(HeaderUserRole))
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "missing or unknown "+HeaderUserRole+" header")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, Identity{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole answers 403 unless the caller has one of roles.
func RequireRole(roles ...core.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := CurrentIdentity(r)
			if !ok {
				writeError(w, r, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, role := range roles {
				if id.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, r, http.StatusForbidden, "role "+string(id.Role)+" is not allowed here")
		})
	}
}
