package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/scent-storefront/internal/gateway"
	"github.com/angelmondragon/scent-storefront/internal/workspace"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *workspace.Registry {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer admin-token":
			_, _ = w.Write([]byte(`{"status":200,"result":{"id":"a1","username":"root","roleName":"ADMIN"}}`))
		case "Bearer user-token":
			_, _ = w.Write([]byte(`{"status":200,"result":{"id":"u1","username":"ana","roleName":"USER"}}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := gateway.NewClient(srv.URL)
	require.NoError(t, err)
	reg, err := workspace.NewRegistry(workspace.RegistryParams{Backend: client})
	require.NoError(t, err)
	t.Cleanup(reg.Close)
	return reg
}

func okHandler(captured **workspace.Workspace, token *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			*captured = WorkspaceFromContext(r.Context())
		}
		if token != nil {
			*token = gateway.TokenFrom(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestWorkspaceIssuesCookieOnFirstVisit(t *testing.T) {
	reg := newRegistry(t)
	var ws *workspace.Workspace
	var token string
	handler := Workspace(reg, CookieOptions{Secure: true}, nil)(okHandler(&ws, &token))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, ws)
	assert.Equal(t, "user-token", token)

	cookies := resp.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sf_sid", cookies[0].Name)
	assert.Equal(t, ws.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
}

func TestWorkspaceReusesKnownCookie(t *testing.T) {
	reg := newRegistry(t)
	first, _, err := reg.Acquire(context.Background(), "")
	require.NoError(t, err)

	var ws *workspace.Workspace
	handler := Workspace(reg, CookieOptions{}, nil)(okHandler(&ws, nil))
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "sf_sid", Value: first.ID})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Same(t, first, ws)
	assert.Empty(t, resp.Result().Cookies())
}

type failingSource struct{}

func (failingSource) Acquire(context.Context, string) (*workspace.Workspace, bool, error) {
	return nil, false, workspace.ErrClosed
}

func TestWorkspaceFailureIsInternalError(t *testing.T) {
	handler := Workspace(failingSource{}, CookieOptions{}, nil)(okHandler(nil, nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func serveAdmin(t *testing.T, reg *workspace.Registry, authz string) *httptest.ResponseRecorder {
	t.Helper()
	handler := Workspace(reg, CookieOptions{}, nil)(RequireAdmin(nil)(okHandler(nil, nil)))
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestRequireAdmin(t *testing.T) {
	reg := newRegistry(t)

	resp := serveAdmin(t, reg, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	var body types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "/login?redirectTo=%2Fapi%2Fadmin%2Fusers", body.Redirect)

	assert.Equal(t, http.StatusForbidden, serveAdmin(t, reg, "Bearer user-token").Code)
	assert.Equal(t, http.StatusOK, serveAdmin(t, reg, "Bearer admin-token").Code)
}

type fakeLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (f *fakeLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[scope]++
	return f.counts[scope] <= limit, f.counts[scope], nil
}

func TestWorkspaceRateLimit(t *testing.T) {
	reg := newRegistry(t)
	limiter := &fakeLimiter{}
	policy := NewRateLimitPolicy("checkout", time.Minute, 2)
	handler := Workspace(reg, CookieOptions{}, nil)(WorkspaceRateLimit(policy, limiter, nil)(okHandler(nil, nil)))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/checkout", nil))
	require.Equal(t, http.StatusOK, first.Code)
	cookie := first.Result().Cookies()[0]

	var last *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
		req.AddCookie(cookie)
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "60", last.Header().Get("Retry-After"))

	other := httptest.NewRecorder()
	handler.ServeHTTP(other, httptest.NewRequest(http.MethodPost, "/api/checkout", nil))
	assert.Equal(t, http.StatusOK, other.Code, "limits are per workspace")
}

func TestRateLimitDisabledWithoutStore(t *testing.T) {
	policy := NewRateLimitPolicy("checkout", time.Minute, 1)
	handler := WorkspaceRateLimit(policy, nil, nil)(okHandler(nil, nil))
	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, resp.Code)
	}
}

func TestRecovererReturnsInternalError(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	var body types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(pkgerrors.CodeInternal), body.Error.Code)
}

func TestRequestIDEchoesHeader(t *testing.T) {
	handler := RequestID(nil)(okHandler(nil, nil))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-abc-123")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, "req-abc-123", resp.Header().Get(requestIDHeader))
}

func TestRequestIDReplacesMalformedHeader(t *testing.T) {
	handler := RequestID(nil)(okHandler(nil, nil))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "<script>")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	got := resp.Header().Get(requestIDHeader)
	assert.NotEqual(t, "<script>", got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

func TestRecovererReraisesAbort(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestLoggingRecordsStatusAndSize(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("info"), Output: buf})
	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hello"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"bytes":5`)
	assert.Contains(t, buf.String(), `"path":"/api/cart"`)

	buf.Reset()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Empty(t, buf.String())
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://shop.example.com"})(okHandler(nil, nil))

	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, "https://shop.example.com", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
}
