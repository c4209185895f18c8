package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/metrics"
	"github.com/google/uuid"
)

const (
	defaultIdleTTL = 30 * time.Minute
	defaultMaxLive = 10000
)

var ErrClosed = errors.New("workspace registry closed")

type RegistryParams struct {
	Backend  Backend
	Settings Settings
	IdleTTL  time.Duration
	MaxLive  int
	Logger   *logger.Logger
	Metrics  *metrics.JobMetrics
}

type entry struct {
	ws       *Workspace
	lastSeen time.Time
}

// Registry hands out workspaces by id and forgets the ones left idle.
type Registry struct {
	backend  Backend
	settings Settings
	idleTTL  time.Duration
	maxLive  int
	logg     *logger.Logger
	metrics  *metrics.JobMetrics
	now      func() time.Time
	newID    func() string

	mu     sync.Mutex
	items  map[string]*entry
	closed bool
}

func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Backend == nil {
		return nil, errors.New("workspace backend required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	ttl := params.IdleTTL
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}
	maxLive := params.MaxLive
	if maxLive <= 0 {
		maxLive = defaultMaxLive
	}
	return &Registry{
		backend:  params.Backend,
		settings: params.Settings,
		idleTTL:  ttl,
		maxLive:  maxLive,
		logg:     logg,
		metrics:  params.Metrics,
		now:      time.Now,
		newID:    uuid.NewString,
		items:    map[string]*entry{},
	}, nil
}

// Acquire returns the workspace for id, creating a fresh one under a new id when id
// is empty or no longer known. created reports whether the caller must hand the new
// id back to the visitor. At the live cap the least recently used workspace is
// released to make room.
func (r *Registry) Acquire(ctx context.Context, id string) (ws *Workspace, created bool, err error) {
	var evicted *Workspace
	defer func() {
		if evicted != nil {
			evicted.Release()
		}
	}()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, false, ErrClosed
	}
	if e, ok := r.items[id]; ok && id != "" {
		e.lastSeen = r.now()
		return e.ws, false, nil
	}

	newID := r.newID()
	ws, err = New(newID, r.backend, r.settings, r.logg)
	if err != nil {
		return nil, false, err
	}
	if len(r.items) >= r.maxLive {
		var evictedID string
		evictedID, evicted = r.oldestLocked()
		r.logg.Warn(r.logg.WithFields(ctx, map[string]any{"evicted": evictedID, "cap": r.maxLive}), "workspace.evicted")
	}
	r.items[newID] = &entry{ws: ws, lastSeen: r.now()}
	r.metrics.SetLiveWorkspaces(len(r.items))
	r.logg.Debug(r.logg.WithWorkspaceID(ctx, newID), "workspace.created")
	return ws, true, nil
}

// oldestLocked removes and returns the least recently seen workspace. r.mu must be held.
func (r *Registry) oldestLocked() (string, *Workspace) {
	var (
		oldestID string
		oldest   *entry
	)
	for id, e := range r.items {
		if oldest == nil || e.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, e
		}
	}
	if oldest == nil {
		return "", nil
	}
	delete(r.items, oldestID)
	return oldestID, oldest.ws
}

// Get returns a known workspace without creating one.
func (r *Registry) Get(id string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, false
	}
	return e.ws, true
}

// Len is the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep releases every workspace idle for longer than the TTL and returns how many
// were dropped.
func (r *Registry) Sweep(ctx context.Context) int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var expired []*Workspace
	for id, e := range r.items {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.ws)
			delete(r.items, id)
		}
	}
	live := len(r.items)
	r.mu.Unlock()

	for _, ws := range expired {
		ws.Release()
	}
	r.metrics.SetLiveWorkspaces(live)
	if len(expired) > 0 {
		r.logg.Info(r.logg.WithFields(ctx, map[string]any{"expired": len(expired), "live": live}), "workspace.swept")
	}
	return len(expired)
}

// Close releases every workspace; later Acquire calls fail.
func (r *Registry) Close() {
	r.mu.Lock()
	items := r.items
	r.items = map[string]*entry{}
	r.closed = true
	r.mu.Unlock()

	for _, e := range items {
		e.ws.Release()
	}
	r.metrics.SetLiveWorkspaces(0)
}
