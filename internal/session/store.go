package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/scent-storefront/internal/gateway"
	"github.com/angelmondragon/scent-storefront/pkg/auth"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/redis"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const defaultLoginPath = "/login"

// Backend is the part of the gateway the session store needs.
type Backend interface {
	Me(ctx context.Context) (*types.Identity, error)
	UpdateMyInfo(ctx context.Context, update types.UserUpdate) (*types.Identity, error)
}

// Options configures a Store. Cache is optional and shares identities across replicas.
type Options struct {
	Cache     redis.KV
	CacheTTL  time.Duration
	LoginPath string
	Logger    *logger.Logger
}

// Store resolves the signed-in identity lazily and keeps it for the workspace lifetime.
// The cached identity is bound to the token it was resolved from; a different token
// triggers a fresh lookup.
type Store struct {
	backend   Backend
	cache     redis.KV
	cacheTTL  time.Duration
	loginPath string
	logg      *logger.Logger
	now       func() time.Time

	mu       sync.Mutex
	digest   string
	identity *types.Identity
}

func NewStore(backend Backend, opts Options) (*Store, error) {
	if backend == nil {
		return nil, errors.New("session backend required")
	}
	loginPath := strings.TrimSpace(opts.LoginPath)
	if loginPath == "" {
		loginPath = defaultLoginPath
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{
		backend:   backend,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		loginPath: loginPath,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// Identity returns the identity for the token on ctx, or nil when the visitor is anonymous.
// Rejected or expired tokens count as anonymous; other backend failures are returned.
func (s *Store) Identity(ctx context.Context) (*types.Identity, error) {
	token := gateway.TokenFrom(ctx)
	if token == "" || auth.Expired(token, s.now()) {
		s.forget()
		return nil, nil
	}
	digest := auth.Digest(token)

	s.mu.Lock()
	if s.digest == digest {
		identity := s.identity
		s.mu.Unlock()
		return identity, nil
	}
	s.mu.Unlock()

	if identity, ok := s.fromCache(ctx, digest); ok {
		s.remember(digest, identity)
		return identity, nil
	}

	identity, err := s.backend.Me(ctx)
	if err != nil {
		if pkgerrors.IsUnauthorized(err) || pkgerrors.IsForbidden(err) {
			s.remember(digest, nil)
			return nil, nil
		}
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "session.identity_lookup_failed")
		return nil, err
	}

	s.remember(digest, identity)
	s.toCache(ctx, digest, identity)
	return identity, nil
}

// Require returns the identity or an UNAUTHORIZED error whose details carry the login
// redirect for returnPath.
func (s *Store) Require(ctx context.Context, returnPath string) (*types.Identity, error) {
	identity, err := s.Identity(ctx)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, s.Unauthenticated(returnPath)
	}
	return identity, nil
}

// Unauthenticated builds the error used when an action needs a signed-in visitor.
func (s *Store) Unauthenticated(returnPath string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required").
		WithDetails(map[string]any{"redirect": s.LoginRedirect(returnPath)})
}

// LoginRedirect is the login page URL that sends the visitor back to returnPath.
func (s *Store) LoginRedirect(returnPath string) string {
	returnPath = strings.TrimSpace(returnPath)
	if returnPath == "" {
		return s.loginPath
	}
	return s.loginPath + "?redirectTo=" + url.QueryEscape(returnPath)
}

// UpdateProfile changes the signed-in account's own profile and refreshes the cached identity.
func (s *Store) UpdateProfile(ctx context.Context, update types.UserUpdate) (*types.Identity, error) {
	if _, err := s.Require(ctx, "/admin/profile"); err != nil {
		return nil, err
	}
	identity, err := s.backend.UpdateMyInfo(ctx, update)
	if err != nil {
		return nil, err
	}
	digest := auth.Digest(gateway.TokenFrom(ctx))
	s.remember(digest, identity)
	s.toCache(ctx, digest, identity)
	return identity, nil
}

// Current returns the last resolved identity without contacting the backend.
func (s *Store) Current() *types.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *Store) remember(digest string, identity *types.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digest = digest
	s.identity = identity
}

func (s *Store) forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digest = ""
	s.identity = nil
}

func (s *Store) fromCache(ctx context.Context, digest string) (*types.Identity, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.IdentityKey(digest))
	if err != nil {
		if !redis.IsMiss(err) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "session.cache_read_failed")
		}
		return nil, false
	}
	var identity types.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return nil, false
	}
	return &identity, true
}

func (s *Store) toCache(ctx context.Context, digest string, identity *types.Identity) {
	if s.cache == nil || identity == nil {
		return
	}
	payload, err := json.Marshal(identity)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.IdentityKey(digest), string(payload), s.cacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "session.cache_write_failed")
	}
}
