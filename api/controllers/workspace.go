package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/angelmondragon/scent-storefront/api/middleware"
	"github.com/angelmondragon/scent-storefront/api/responses"
	"github.com/angelmondragon/scent-storefront/internal/workspace"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
)

// returnToParam lets the browser name the page a login redirect should come back to.
const returnToParam = "returnTo"

func requireWorkspace(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (*workspace.Workspace, bool) {
	ws := middleware.WorkspaceFromContext(r.Context())
	if ws == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workspace missing"))
		return nil, false
	}
	return ws, true
}

// returnPath is the page to come back to after login. Only site-relative paths are
// honoured.
func returnPath(r *http.Request, fallback string) string {
	value := strings.TrimSpace(r.URL.Query().Get(returnToParam))
	if !isLocalPath(value) {
		return fallback
	}
	return value
}

// isLocalPath rejects anything a browser could resolve against another origin,
// including backslash and control-character variants of "//host".
func isLocalPath(value string) bool {
	if len(value) < 1 || value[0] != '/' {
		return false
	}
	if len(value) > 1 && (value[1] == '/' || value[1] == '\\') {
		return false
	}
	if strings.ContainsFunc(value, unicode.IsControl) || strings.ContainsRune(value, '\\') {
		return false
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return false
	}
	return true
}
