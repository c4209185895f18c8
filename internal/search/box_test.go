package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/angelmondragon/scent-storefront/pkg/enums"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler keeps only the latest triggered call until Flush.
type manualScheduler struct {
	mu       sync.Mutex
	pending  func()
	triggers int
	stopped  bool
}

func (m *manualScheduler) Trigger(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggers++
	m.pending = fn
}

func (m *manualScheduler) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = nil
}

func (m *manualScheduler) Stop() {
	m.Cancel()
	m.stopped = true
}

func (m *manualScheduler) Flush() {
	m.mu.Lock()
	fn := m.pending
	m.pending = nil
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

type stubBackend struct {
	names    []string
	namesErr error
	nameCall []string
	filters  []types.ProductFilter
	page     *types.Page[types.Product]
}

func (s *stubBackend) SearchNames(_ context.Context, name string) ([]string, error) {
	s.nameCall = append(s.nameCall, name)
	return s.names, s.namesErr
}

func (s *stubBackend) SearchProducts(_ context.Context, filter types.ProductFilter) (*types.Page[types.Product], error) {
	s.filters = append(s.filters, filter)
	if s.page != nil {
		return s.page, nil
	}
	return &types.Page[types.Product]{PageNumber: filter.Page.PageNumber, PageSize: filter.Page.PageSize}, nil
}

func newBox(t *testing.T, backend *stubBackend) (*Box, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	box, err := NewBox(backend, Options{Scheduler: sched})
	require.NoError(t, err)
	return box, sched
}

func TestOnlySettledQueryFetchesSuggestions(t *testing.T) {
	backend := &stubBackend{names: []string{"Rose", "Rosewood"}}
	box, sched := newBox(t, backend)
	ctx := context.Background()

	box.SetQuery(ctx, "r")
	box.SetQuery(ctx, "ro")
	box.SetQuery(ctx, "ros")
	assert.Empty(t, backend.nameCall)

	sched.Flush()
	assert.Equal(t, []string{"ros"}, backend.nameCall)
	view := box.View()
	assert.True(t, view.ShowSuggestions)
	assert.Equal(t, []string{"Rose", "Rosewood"}, view.Suggestions)
}

func TestBlankQueryNeverFetches(t *testing.T) {
	backend := &stubBackend{names: []string{"Rose"}}
	box, sched := newBox(t, backend)

	box.SetQuery(context.Background(), "   ")
	sched.Flush()
	assert.Empty(t, backend.nameCall)
	assert.False(t, box.View().ShowSuggestions)
}

func TestSuggestionFailureHidesPanel(t *testing.T) {
	backend := &stubBackend{namesErr: errors.New("down")}
	box, sched := newBox(t, backend)
	box.SetQuery(context.Background(), "oud")
	sched.Flush()
	assert.False(t, box.View().ShowSuggestions)
}

func TestSuggestionLimit(t *testing.T) {
	backend := &stubBackend{names: []string{"a1", "a2", "a3"}}
	sched := &manualScheduler{}
	box, err := NewBox(backend, Options{Scheduler: sched, SuggestionLimit: 2})
	require.NoError(t, err)
	box.SetQuery(context.Background(), "a")
	sched.Flush()
	assert.Len(t, box.View().Suggestions, 2)
}

func TestArrowKeysWrap(t *testing.T) {
	backend := &stubBackend{names: []string{"a", "b", "c"}}
	box, sched := newBox(t, backend)
	ctx := context.Background()
	box.SetQuery(ctx, "x")
	sched.Flush()

	expectDown := []int{0, 1, 2, 0}
	for _, want := range expectDown {
		view, err := box.Key(ctx, KeyDown)
		require.NoError(t, err)
		assert.Equal(t, want, view.Highlighted)
	}

	box.SetQuery(ctx, "x")
	assert.Equal(t, -1, box.View().Highlighted, "query change resets highlight")

	expectUp := []int{2, 1, 0, 2}
	for _, want := range expectUp {
		view, err := box.Key(ctx, KeyUp)
		require.NoError(t, err)
		assert.Equal(t, want, view.Highlighted)
	}
}

func TestArrowKeysWithoutSuggestionsDoNothing(t *testing.T) {
	box, _ := newBox(t, &stubBackend{})
	view, err := box.Key(context.Background(), KeyDown)
	require.NoError(t, err)
	assert.Equal(t, -1, view.Highlighted)
	assert.False(t, view.ShowSuggestions)
}

func TestEnterOnHighlightSearchesSuggestion(t *testing.T) {
	backend := &stubBackend{names: []string{"Rose", "Rosewood"}}
	box, sched := newBox(t, backend)
	ctx := context.Background()
	box.SetQuery(ctx, "ros")
	sched.Flush()
	_, err := box.Key(ctx, KeyDown)
	require.NoError(t, err)
	_, err = box.Key(ctx, KeyDown)
	require.NoError(t, err)

	view, err := box.Key(ctx, KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "Rosewood", view.Query)
	assert.False(t, view.ShowSuggestions)
	assert.Equal(t, -1, view.Highlighted)
	assert.True(t, view.HasSearched)
	require.Len(t, backend.filters, 1)
	filter := backend.filters[0]
	assert.Equal(t, "Rosewood", filter.Name)
	assert.Equal(t, 1, filter.Page.PageNumber)
	assert.Equal(t, 12, filter.Page.PageSize)
	assert.Equal(t, "id", filter.Page.SortBy)
	assert.Equal(t, enums.SortAsc, filter.Page.SortDirection)
}

func TestEnterWithoutHighlightRunsFullSearch(t *testing.T) {
	backend := &stubBackend{}
	box, _ := newBox(t, backend)
	ctx := context.Background()
	box.SetQuery(ctx, "vanilla")

	_, err := box.Key(ctx, KeyEnter)
	require.NoError(t, err)
	require.Len(t, backend.filters, 1)
	assert.Equal(t, "vanilla", backend.filters[0].Name)
}

func TestBlankSearchDoesNothing(t *testing.T) {
	backend := &stubBackend{}
	box, _ := newBox(t, backend)
	view, err := box.Search(context.Background())
	require.NoError(t, err)
	assert.False(t, view.HasSearched)
	assert.Empty(t, backend.filters)
}

func TestChangePageReusesQueryAndSize(t *testing.T) {
	backend := &stubBackend{}
	box, _ := newBox(t, backend)
	ctx := context.Background()
	box.SetQuery(ctx, "musk")
	_, err := box.Search(ctx)
	require.NoError(t, err)

	_, err = box.ChangePage(ctx, 3)
	require.NoError(t, err)
	require.Len(t, backend.filters, 2)
	assert.Equal(t, "musk", backend.filters[1].Name)
	assert.Equal(t, 3, backend.filters[1].Page.PageNumber)
	assert.Equal(t, 12, backend.filters[1].Page.PageSize)
}

func TestSearchResultsPager(t *testing.T) {
	backend := &stubBackend{page: &types.Page[types.Product]{
		Content:       []types.Product{{ID: "p1"}},
		PageNumber:    5,
		PageSize:      12,
		TotalElements: 90,
		TotalPages:    8,
	}}
	box, _ := newBox(t, backend)
	box.SetQuery(context.Background(), "amber")
	view, err := box.Search(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5, 6, 7}, view.Pages)
	assert.Equal(t, int64(90), view.TotalProducts)
}

func TestDismissAndClear(t *testing.T) {
	backend := &stubBackend{names: []string{"Rose"}}
	box, sched := newBox(t, backend)
	ctx := context.Background()
	box.SetQuery(ctx, "ro")
	sched.Flush()
	assert.False(t, box.Dismiss().ShowSuggestions)

	assert.True(t, box.Focus().ShowSuggestions)

	_, err := box.Search(ctx)
	require.NoError(t, err)
	box.SetQuery(ctx, "rose")
	view := box.Clear()
	assert.Equal(t, "", view.Query)
	assert.False(t, view.HasSearched)
	assert.False(t, view.ShowSuggestions)
	assert.Equal(t, -1, view.Highlighted)

	sched.Flush()
	assert.Equal(t, []string{"ro"}, backend.nameCall, "clear cancels the pending lookup")
}

func TestStaleSuggestionsIgnored(t *testing.T) {
	backend := &stubBackend{names: []string{"Rose"}}
	box, sched := newBox(t, backend)
	ctx := context.Background()
	box.SetQuery(ctx, "ro")
	pending := sched.pending
	box.Clear()
	pending()
	assert.Empty(t, box.View().Suggestions)
}

func TestCloseStopsScheduler(t *testing.T) {
	box, sched := newBox(t, &stubBackend{})
	box.Close()
	assert.True(t, sched.stopped)
}
