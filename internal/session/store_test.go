package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/angelmondragon/scent-storefront/internal/gateway"
	"github.com/angelmondragon/scent-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/redis"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	calls    int
	identity *types.Identity
	err      error
	updated  *types.UserUpdate
}

func (s *stubBackend) Me(context.Context) (*types.Identity, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.identity
	return &copied, nil
}

func (s *stubBackend) UpdateMyInfo(_ context.Context, update types.UserUpdate) (*types.Identity, error) {
	s.updated = &update
	copied := *s.identity
	if update.FullName != nil {
		copied.FullName = *update.FullName
	}
	return &copied, nil
}

func newStore(t *testing.T, backend Backend, opts Options) *Store {
	t.Helper()
	store, err := NewStore(backend, opts)
	require.NoError(t, err)
	return store
}

func withToken(token string) context.Context {
	return gateway.WithToken(context.Background(), token)
}

func TestNewStoreRequiresBackend(t *testing.T) {
	_, err := NewStore(nil, Options{})
	require.Error(t, err)
}

func TestAnonymousVisitorNeverCallsBackend(t *testing.T) {
	backend := &stubBackend{identity: &types.Identity{ID: "u1"}}
	store := newStore(t, backend, Options{})

	identity, err := store.Identity(context.Background())
	require.NoError(t, err)
	assert.Nil(t, identity)
	assert.Zero(t, backend.calls)
}

func TestIdentityIsResolvedOncePerToken(t *testing.T) {
	backend := &stubBackend{identity: &types.Identity{ID: "u1", Username: "ada"}}
	store := newStore(t, backend, Options{})

	for i := 0; i < 3; i++ {
		identity, err := store.Identity(withToken("tok-a"))
		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "u1", identity.ID)
	}
	assert.Equal(t, 1, backend.calls)

	_, err := store.Identity(withToken("tok-b"))
	require.NoError(t, err)
	assert.Equal(t, 2, backend.calls, "a new token must be resolved again")
}

func TestRejectedTokenIsAnonymous(t *testing.T) {
	backend := &stubBackend{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "token expired")}
	store := newStore(t, backend, Options{})

	identity, err := store.Identity(withToken("tok-a"))
	require.NoError(t, err)
	assert.Nil(t, identity)

	_, _ = store.Identity(withToken("tok-a"))
	assert.Equal(t, 1, backend.calls)
}

func TestBackendOutageIsReturned(t *testing.T) {
	backend := &stubBackend{err: pkgerrors.New(pkgerrors.CodeDependency, "backend unavailable")}
	store := newStore(t, backend, Options{})

	_, err := store.Identity(withToken("tok-a"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.CodeOf(err))
}

func TestExpiredJWTSkipsBackend(t *testing.T) {
	backend := &stubBackend{identity: &types.Identity{ID: "u1"}}
	store := newStore(t, backend, Options{})

	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	identity, err := store.Identity(withToken(token))
	require.NoError(t, err)
	assert.Nil(t, identity)
	assert.Zero(t, backend.calls)
}

func TestRequireCarriesLoginRedirect(t *testing.T) {
	store := newStore(t, &stubBackend{}, Options{})

	_, err := store.Require(context.Background(), "/orders/42")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsUnauthorized(err))

	details, ok := pkgerrors.As(err).Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/login?redirectTo=%2Forders%2F42", details["redirect"])
}

func TestLoginRedirect(t *testing.T) {
	store := newStore(t, &stubBackend{}, Options{LoginPath: "/signin"})
	assert.Equal(t, "/signin", store.LoginRedirect(""))
	assert.Equal(t, "/signin?redirectTo=%2Fcart", store.LoginRedirect("/cart"))
}

func TestSharedCacheServesOtherWorkspaces(t *testing.T) {
	srv := miniredis.RunT(t)
	client, err := redis.New(context.Background(), config.RedisConfig{Address: srv.Addr()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	backend := &stubBackend{identity: &types.Identity{ID: "u1", Role: "ADMIN"}}
	first := newStore(t, backend, Options{Cache: client, CacheTTL: time.Minute})
	second := newStore(t, backend, Options{Cache: client, CacheTTL: time.Minute})

	_, err = first.Identity(withToken("tok-a"))
	require.NoError(t, err)

	identity, err := second.Identity(withToken("tok-a"))
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.True(t, identity.IsAdmin())
	assert.Equal(t, 1, backend.calls)
}

func TestUpdateProfileRefreshesIdentity(t *testing.T) {
	backend := &stubBackend{identity: &types.Identity{ID: "u1", FullName: "Ada"}}
	store := newStore(t, backend, Options{})
	ctx := withToken("tok-a")

	name := "Ada Lovelace"
	identity, err := store.UpdateProfile(ctx, types.UserUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, identity.FullName)
	assert.Equal(t, name, store.Current().FullName)

	_, err = store.UpdateProfile(context.Background(), types.UserUpdate{FullName: &name})
	assert.True(t, pkgerrors.IsUnauthorized(err))
}
