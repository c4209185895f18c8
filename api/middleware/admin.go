package middleware

import (
	"net/http"

	"github.com/angelmondragon/scent-storefront/api/responses"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
)

// RequireAdmin lets only signed-in administrators through. Anonymous visitors get an
// UNAUTHORIZED error carrying a login redirect back to the requested path.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ws := WorkspaceFromContext(ctx)
			if ws == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workspace missing"))
				return
			}
			identity, err := ws.Session.Require(ctx, r.URL.Path)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if !identity.IsAdmin() {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
				return
			}
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{"user_id": identity.ID, "actor_role": string(identity.Role)})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
