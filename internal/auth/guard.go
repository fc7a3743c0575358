package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/allowance-management/internal/transport"
)

// RoleGuard gates role-scoped areas. One guard instance serves every
// area; the required roles are a parameter, not baked into each layout.
type RoleGuard struct {
	*transport.BaseHandler
}

func NewRoleGuard(logger *slog.Logger) *RoleGuard {
	return &RoleGuard{BaseHandler: transport.NewBaseHandler(logger)}
}

// Require allows the request through only when the session user holds
// one of the given roles. Unauthenticated requests get 401 with the
// login route; wrong-role sessions get 403 with their own role's home
// route so the client can redirect there. No protected payload is ever
// written on the deny paths.
func (g *RoleGuard) Require(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				g.Logger.Warn("role guard: no session user in context", "path", r.URL.Path)
				g.WriteJSON(w, http.StatusUnauthorized, map[string]string{
					"message":     "unauthorized",
					"redirect_to": LoginPath,
				})
				return
			}

			if !user.HasRole(roles...) {
				g.Logger.Warn("role guard: access denied",
					"user_id", user.ID,
					"user_role", user.Role,
					"path", r.URL.Path)
				g.WriteJSON(w, http.StatusForbidden, map[string]string{
					"message":     "insufficient role",
					"redirect_to": HomePathForRole(user.Role),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *RoleGuard) RequireAdmin() func(http.Handler) http.Handler {
	return g.Require(RoleAdmin)
}

func (g *RoleGuard) RequireFinance() func(http.Handler) http.Handler {
	return g.Require(RoleFinance)
}
