package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/scent-storefront/internal/cart"
	"github.com/angelmondragon/scent-storefront/internal/checkout"
	"github.com/angelmondragon/scent-storefront/internal/gateway"
	"github.com/angelmondragon/scent-storefront/internal/notify"
	"github.com/angelmondragon/scent-storefront/internal/orderdetail"
	"github.com/angelmondragon/scent-storefront/internal/orders"
	"github.com/angelmondragon/scent-storefront/internal/search"
	"github.com/angelmondragon/scent-storefront/internal/session"
	"github.com/angelmondragon/scent-storefront/internal/users"
	"github.com/angelmondragon/scent-storefront/internal/variants"
	"github.com/angelmondragon/scent-storefront/pkg/auth"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/redis"
)

// Backend is every gateway surface a workspace talks to. *gateway.Client implements it.
type Backend interface {
	session.Backend
	cart.Backend
	checkout.OrderBackend
	orders.Backend
	search.Backend
	users.Backend
	variants.Backend
}

// Settings are the per-workspace knobs shared by every visitor.
type Settings struct {
	Cache           redis.KV
	CacheTTL        time.Duration
	LoginPath       string
	SearchDelay     time.Duration
	SearchPageSize  int
	SuggestionLimit int
	// Scheduler builds the search debouncer; nil uses the timer-based default.
	Scheduler func() search.Scheduler
}

// Workspace holds one visitor's client state. Handlers receive it from the registry
// and never share stores across visitors.
type Workspace struct {
	ID string

	Notices     *notify.Queue
	Session     *session.Store
	Cart        *cart.Store
	Checkout    *checkout.Service
	Orders      *orders.Store
	OrderDetail *orderdetail.Viewer
	Search      *search.Box
	Users       *users.Store
	Variants    *variants.Store

	mu          sync.Mutex
	bound       bool
	tokenDigest string
	ownerID     string
}

// New wires a workspace's stores against the backend.
func New(id string, backend Backend, settings Settings, logg *logger.Logger) (*Workspace, error) {
	if backend == nil {
		return nil, fmt.Errorf("workspace backend required")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	notices := notify.NewQueue()
	sess, err := session.NewStore(backend, session.Options{
		Cache:     settings.Cache,
		CacheTTL:  settings.CacheTTL,
		LoginPath: settings.LoginPath,
		Logger:    logg,
	})
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	cartStore, err := cart.NewStore(backend, sess, notices, logg)
	if err != nil {
		return nil, fmt.Errorf("cart store: %w", err)
	}
	checkoutSvc, err := checkout.NewService(cartStore, backend, sess, notices, logg)
	if err != nil {
		return nil, fmt.Errorf("checkout service: %w", err)
	}
	orderStore, err := orders.NewStore(backend, sess, notices, logg)
	if err != nil {
		return nil, fmt.Errorf("order store: %w", err)
	}
	viewer, err := orderdetail.NewViewer(sess, orderStore, logg)
	if err != nil {
		return nil, fmt.Errorf("order detail viewer: %w", err)
	}

	searchOpts := search.Options{
		Delay:           settings.SearchDelay,
		PageSize:        settings.SearchPageSize,
		SuggestionLimit: settings.SuggestionLimit,
		Logger:          logg,
	}
	if settings.Scheduler != nil {
		searchOpts.Scheduler = settings.Scheduler()
	}
	box, err := search.NewBox(backend, searchOpts)
	if err != nil {
		return nil, fmt.Errorf("search box: %w", err)
	}
	userStore, err := users.NewStore(backend, notices, logg)
	if err != nil {
		return nil, fmt.Errorf("user store: %w", err)
	}
	variantStore, err := variants.NewStore(backend, notices, logg)
	if err != nil {
		return nil, fmt.Errorf("variant store: %w", err)
	}

	return &Workspace{
		ID:          id,
		Notices:     notices,
		Session:     sess,
		Cart:        cartStore,
		Checkout:    checkoutSvc,
		Orders:      orderStore,
		OrderDetail: viewer,
		Search:      box,
		Users:       userStore,
		Variants:    variantStore,
	}, nil
}

// Bind ties the workspace to the identity behind the token on ctx. When that identity
// differs from the one the stores were filled for, every account-scoped snapshot is
// dropped and Bind reports true. The identity is only resolved again when the token
// changes.
func (w *Workspace) Bind(ctx context.Context) bool {
	digest := auth.Digest(gateway.TokenFrom(ctx))

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.bound && digest == w.tokenDigest {
		return false
	}

	identity, err := w.Session.Identity(ctx)
	if err != nil {
		dropped := w.bound
		w.bound = false
		w.ownerID = ""
		w.resetAccountState()
		return dropped
	}
	owner := ""
	if identity != nil {
		owner = identity.ID
	}
	first := !w.bound
	w.bound = true
	w.tokenDigest = digest
	if first && w.ownerID == "" {
		w.ownerID = owner
		return false
	}
	if owner == w.ownerID {
		return false
	}
	w.ownerID = owner
	w.resetAccountState()
	return true
}

func (w *Workspace) resetAccountState() {
	w.OrderDetail.Leave()
	w.Cart.Reset()
	w.Checkout.Reset()
	w.Orders.Reset()
	w.Users.Reset()
	w.Variants.Reset()
}

// Release stops timers and makes every store ignore responses still in flight.
func (w *Workspace) Release() {
	if w == nil {
		return
	}
	w.OrderDetail.Leave()
	w.Cart.Release()
	w.Orders.Close()
	w.Search.Close()
}
