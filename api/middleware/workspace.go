package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/scent-storefront/api/responses"
	"github.com/angelmondragon/scent-storefront/internal/gateway"
	"github.com/angelmondragon/scent-storefront/internal/workspace"
	"github.com/angelmondragon/scent-storefront/pkg/auth"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
)

const defaultCookieName = "sf_sid"

type contextKey string

const ctxWorkspace contextKey = "workspace"

// WorkspaceSource hands out per-visitor workspaces. *workspace.Registry implements it.
type WorkspaceSource interface {
	Acquire(ctx context.Context, id string) (*workspace.Workspace, bool, error)
}

type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Workspace binds the visitor's workspace to the request. The workspace id travels in a
// cookie that is (re)issued whenever a new workspace is created. The backend token from
// the Authorization header is attached for the gateway.
func Workspace(source WorkspaceSource, cookie CookieOptions, logg *logger.Logger) func(http.Handler) http.Handler {
	if cookie.Name == "" {
		cookie.Name = defaultCookieName
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var id string
			if c, err := r.Cookie(cookie.Name); err == nil {
				id = c.Value
			}
			ws, created, err := source.Acquire(ctx, id)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "workspace unavailable"))
				return
			}
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     cookie.Name,
					Value:    ws.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   cookie.Secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(cookie.MaxAge.Seconds()),
				})
			}

			ctx = withBearerToken(ctx, r)
			if logg != nil {
				ctx = logg.WithWorkspaceID(ctx, ws.ID)
			}
			if ws.Bind(ctx) && logg != nil {
				logg.Info(ctx, "workspace.identity_changed")
			}
			ctx = context.WithValue(ctx, ctxWorkspace, ws)
			ctx = responses.WithNotices(ctx, ws.Notices)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BackendToken attaches the Authorization bearer token for the gateway without binding
// a workspace. Stateless routes use it so they never allocate per-visitor state.
func BackendToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(withBearerToken(r.Context(), r)))
	})
}

func withBearerToken(ctx context.Context, r *http.Request) context.Context {
	if token, ok := auth.BearerToken(r.Header.Get("Authorization")); ok {
		return gateway.WithToken(ctx, token)
	}
	return ctx
}

// WorkspaceFromContext returns the workspace bound by the Workspace middleware.
func WorkspaceFromContext(ctx context.Context) *workspace.Workspace {
	if ctx == nil {
		return nil
	}
	ws, _ := ctx.Value(ctxWorkspace).(*workspace.Workspace)
	return ws
}

// WithWorkspace injects a workspace into the context; used by tests and background callers.
func WithWorkspace(ctx context.Context, ws *workspace.Workspace) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxWorkspace, ws)
	if ws != nil {
		ctx = responses.WithNotices(ctx, ws.Notices)
	}
	return ctx
}
