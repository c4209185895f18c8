package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/scent-storefront/pkg/debounce"
	"github.com/angelmondragon/scent-storefront/pkg/enums"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const (
	DefaultDelay    = 300 * time.Millisecond
	DefaultPageSize = 12

	sortField = "id"
	noneIndex = -1
)

// Key is a keyboard key the search box reacts to.
type Key string

const (
	KeyDown  Key = "ArrowDown"
	KeyUp    Key = "ArrowUp"
	KeyEnter Key = "Enter"
)

// Backend is the product search surface of the gateway.
type Backend interface {
	SearchNames(ctx context.Context, name string) ([]string, error)
	SearchProducts(ctx context.Context, filter types.ProductFilter) (*types.Page[types.Product], error)
}

// Scheduler delays a call until input settles. *debounce.Debouncer satisfies it.
type Scheduler interface {
	Trigger(fn func())
	Cancel()
	Stop()
}

type Options struct {
	Delay           time.Duration
	PageSize        int
	SuggestionLimit int
	// Scheduler replaces the timer-based debouncer; tests drive it by hand.
	Scheduler Scheduler
	Logger    *logger.Logger
}

// Box is the state of one visitor's search box: the typed query, name suggestions
// with a keyboard highlight, and the last full search result.
type Box struct {
	backend   Backend
	scheduler Scheduler
	pageSize  int
	limit     int
	logg      *logger.Logger

	mu          sync.Mutex
	query       string
	suggestions []string
	show        bool
	highlight   int
	hasSearched bool
	searching   bool
	results     *types.Page[types.Product]
	searchSeq   uint64
	closed      bool
}

func NewBox(backend Backend, opts Options) (*Box, error) {
	if backend == nil {
		return nil, errors.New("search backend required")
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Scheduler == nil {
		opts.Scheduler = debounce.New(opts.Delay)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Box{
		backend:   backend,
		scheduler: opts.Scheduler,
		pageSize:  opts.PageSize,
		limit:     opts.SuggestionLimit,
		logg:      opts.Logger,
		highlight: noneIndex,
	}, nil
}

// SetQuery records a keystroke. The highlight resets at once; suggestions are
// requested once the query has been stable for the debounce delay, and only for
// a non-blank query.
func (b *Box) SetQuery(ctx context.Context, query string) View {
	b.mu.Lock()
	b.query = query
	b.highlight = noneIndex
	b.mu.Unlock()

	// The request context ends before the timer fires; keep its values only.
	detached := context.WithoutCancel(ctx)
	b.scheduler.Trigger(func() { b.fetchSuggestions(detached, query) })
	return b.View()
}

func (b *Box) fetchSuggestions(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		b.mu.Lock()
		b.show = false
		b.mu.Unlock()
		return
	}

	names, err := b.backend.SearchNames(ctx, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.query != query {
		return
	}
	if err != nil {
		b.logg.Warn(b.logg.WithField(ctx, "error", err.Error()), "search.suggestions_failed")
		b.show = false
		return
	}
	if b.limit > 0 && len(names) > b.limit {
		names = names[:b.limit]
	}
	b.suggestions = names
	b.show = len(names) > 0
}

// Key handles a key press in the search input.
func (b *Box) Key(ctx context.Context, key Key) (View, error) {
	switch key {
	case KeyDown, KeyUp:
		b.mu.Lock()
		if n := len(b.suggestions); n > 0 {
			b.show = true
			b.highlight = step(b.highlight, n, key == KeyDown)
		}
		b.mu.Unlock()
		return b.View(), nil
	case KeyEnter:
		b.mu.Lock()
		highlighted := ""
		if b.highlight >= 0 && b.highlight < len(b.suggestions) {
			highlighted = b.suggestions[b.highlight]
		}
		b.mu.Unlock()
		if highlighted != "" {
			return b.SelectSuggestion(ctx, highlighted)
		}
		return b.Search(ctx)
	default:
		return b.View(), nil
	}
}

// step moves the highlight with wraparound. From no highlight, down lands on the
// first entry and up on the last.
func step(current, n int, down bool) int {
	if down {
		if current == noneIndex || current >= n-1 {
			return 0
		}
		return current + 1
	}
	if current <= 0 {
		return n - 1
	}
	return current - 1
}

// SelectSuggestion puts the suggestion in the box and searches for it.
func (b *Box) SelectSuggestion(ctx context.Context, suggestion string) (View, error) {
	b.scheduler.Cancel()
	b.mu.Lock()
	b.query = suggestion
	b.show = false
	b.highlight = noneIndex
	b.mu.Unlock()
	return b.run(ctx, suggestion, 1, b.pageSize)
}

// Search runs a full search for the current query from the first page. A blank
// query does nothing.
func (b *Box) Search(ctx context.Context) (View, error) {
	b.mu.Lock()
	query := b.query
	b.mu.Unlock()
	if strings.TrimSpace(query) == "" {
		return b.View(), nil
	}
	b.mu.Lock()
	b.show = false
	b.mu.Unlock()
	return b.run(ctx, query, 1, b.pageSize)
}

// ChangePage re-runs the current query on another page with the same page size.
func (b *Box) ChangePage(ctx context.Context, page int) (View, error) {
	b.mu.Lock()
	query := b.query
	size := b.pageSize
	if b.results != nil && b.results.PageSize > 0 {
		size = b.results.PageSize
	}
	b.mu.Unlock()
	if page < 1 {
		page = 1
	}
	return b.run(ctx, query, page, size)
}

func (b *Box) run(ctx context.Context, query string, page, size int) (View, error) {
	b.mu.Lock()
	b.hasSearched = true
	b.searching = true
	b.searchSeq++
	seq := b.searchSeq
	b.mu.Unlock()

	filter := types.ProductFilter{
		Name: query,
		Page: pagination.Params{
			PageNumber:    page,
			PageSize:      size,
			SortBy:        sortField,
			SortDirection: enums.SortAsc,
		},
	}
	results, err := b.backend.SearchProducts(ctx, filter)

	b.mu.Lock()
	if !b.closed && seq == b.searchSeq {
		b.searching = false
		if err == nil {
			b.results = results
		}
	}
	b.mu.Unlock()

	if err != nil {
		b.logg.Warn(b.logg.WithField(ctx, "error", err.Error()), "search.products_failed")
		return b.View(), err
	}
	return b.View(), nil
}

// Focus clears the highlight and reopens the panel when suggestions exist for a
// query longer than one character.
func (b *Box) Focus() View {
	b.mu.Lock()
	b.highlight = noneIndex
	if len(strings.TrimSpace(b.query)) > 1 && len(b.suggestions) > 0 {
		b.show = true
	}
	b.mu.Unlock()
	return b.View()
}

// Dismiss closes the suggestion panel, as a pointer press outside it does.
func (b *Box) Dismiss() View {
	b.mu.Lock()
	b.show = false
	b.mu.Unlock()
	return b.View()
}

// Clear empties the box and forgets the last search.
func (b *Box) Clear() View {
	b.scheduler.Cancel()
	b.mu.Lock()
	b.query = ""
	b.show = false
	b.hasSearched = false
	b.highlight = noneIndex
	b.searchSeq++
	b.searching = false
	b.mu.Unlock()
	return b.View()
}

// Close stops the debouncer; responses arriving later are dropped.
func (b *Box) Close() {
	b.scheduler.Stop()
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}
