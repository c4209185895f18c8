package orderdetail

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/angelmondragon/scent-storefront/internal/orders"
	"github.com/angelmondragon/scent-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	identity *types.Identity
	err      error
}

func (a stubAuth) Identity(context.Context) (*types.Identity, error) { return a.identity, a.err }

func (a stubAuth) LoginRedirect(returnPath string) string {
	return "/login?redirectTo=" + url.QueryEscape(returnPath)
}

type stubSelector struct {
	order    *types.Order
	err      error
	selected []string
	cleared  int
	onSelect func()
}

func (s *stubSelector) Select(_ context.Context, id string) (*types.Order, error) {
	s.selected = append(s.selected, id)
	if s.onSelect != nil {
		s.onSelect()
	}
	return s.order, s.err
}

func (s *stubSelector) ClearSelected() { s.cleared++ }

func newViewer(t *testing.T, auth stubAuth, sel *stubSelector) *Viewer {
	t.Helper()
	v, err := NewViewer(auth, sel, nil)
	require.NoError(t, err)
	return v
}

func TestAnonymousVisitorGetsLoginRedirect(t *testing.T) {
	sel := &stubSelector{}
	v := newViewer(t, stubAuth{}, sel)

	view := v.Open(context.Background(), "42")
	assert.Equal(t, StateUnauthenticated, view.State)
	assert.Equal(t, "/login?redirectTo=%2Forders%2F42", view.LoginRedirect)
	assert.Empty(t, sel.selected)
}

func TestAuthLookupFailureCountsAsAnonymous(t *testing.T) {
	v := newViewer(t, stubAuth{err: errors.New("backend down")}, &stubSelector{})
	assert.Equal(t, StateUnauthenticated, v.Open(context.Background(), "42").State)
}

func TestOpenOutcomes(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		state State
	}{
		{name: "forbidden status", err: pkgerrors.New(pkgerrors.CodeForbidden, "access denied"), state: StateForbidden},
		{name: "not found", err: pkgerrors.New(pkgerrors.CodeNotFound, "missing"), state: StateNotFound},
		{name: "other failure", err: errors.New("timeout"), state: StateNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newViewer(t, stubAuth{identity: &types.Identity{ID: "u1"}}, &stubSelector{err: tc.err})
			view := v.Open(context.Background(), "42")
			assert.Equal(t, tc.state, view.State)
			assert.Equal(t, "/orders", view.BackTo)
		})
	}
}

func TestEmptyOrderIsNotFound(t *testing.T) {
	for _, order := range []*types.Order{nil, {}} {
		v := newViewer(t, stubAuth{identity: &types.Identity{ID: "u1"}}, &stubSelector{order: order})
		view := v.Open(context.Background(), "42")
		assert.Equal(t, StateNotFound, view.State)
		assert.Nil(t, view.Order)
		assert.Empty(t, view.Steps)
	}
}

func TestOpenSuccess(t *testing.T) {
	order := &types.Order{
		ID:            "42",
		OrderNumber:   "1001",
		OrderStatus:   enums.OrderStatusPending,
		PaymentStatus: enums.PaymentStatusPending,
	}
	order.City = "Hanoi"
	v := newViewer(t, stubAuth{identity: &types.Identity{ID: "u1"}}, &stubSelector{order: order})

	view := v.Open(context.Background(), "42")
	assert.Equal(t, StateSuccess, view.State)
	assert.Equal(t, "#1001", view.DisplayID)
	assert.True(t, view.HasAddressInfo)
	require.Len(t, view.Steps, 5)
}

func TestLeaveClearsSelectedOrder(t *testing.T) {
	sel := &stubSelector{order: &types.Order{ID: "42"}}
	v := newViewer(t, stubAuth{identity: &types.Identity{ID: "u1"}}, sel)
	v.Open(context.Background(), "42")

	v.Leave()
	assert.Equal(t, 1, sel.cleared)
	assert.Equal(t, StateIdle, v.Current().State)
}

func TestResultAfterLeaveIsIgnored(t *testing.T) {
	sel := &stubSelector{order: &types.Order{ID: "42"}}
	v := newViewer(t, stubAuth{identity: &types.Identity{ID: "u1"}}, sel)
	sel.onSelect = v.Leave

	view := v.Open(context.Background(), "42")
	assert.Equal(t, StateIdle, view.State)
}

func TestStaleSelectionKeepsNewerState(t *testing.T) {
	sel := &stubSelector{err: orders.ErrStale}
	v := newViewer(t, stubAuth{identity: &types.Identity{ID: "u1"}}, sel)
	assert.Equal(t, StateLoading, v.Open(context.Background(), "42").State)
}

func TestTrackingSteps(t *testing.T) {
	steps := TrackingSteps(enums.OrderStatusPending, enums.PaymentStatusPending, enums.DeliveryStatusPending)
	assert.True(t, steps[0].Completed)
	assert.True(t, steps[0].Current)
	assert.True(t, steps[1].Current)
	assert.True(t, steps[2].Disabled)
	assert.True(t, steps[3].Disabled)
	assert.True(t, steps[4].Disabled)

	steps = TrackingSteps(enums.OrderStatusProcessing, enums.PaymentStatusFailed, enums.DeliveryStatusPending)
	assert.True(t, steps[1].Error)
	assert.False(t, steps[1].Completed)

	steps = TrackingSteps(enums.OrderStatusProcessing, enums.PaymentStatusCompleted, enums.DeliveryStatusShipped)
	assert.False(t, steps[0].Current)
	assert.True(t, steps[1].Completed)
	assert.True(t, steps[2].Completed)
	assert.False(t, steps[2].Disabled)
	assert.True(t, steps[3].Current)
	assert.False(t, steps[3].Disabled)
	assert.True(t, steps[4].Disabled)

	steps = TrackingSteps(enums.OrderStatusCompleted, enums.PaymentStatusCompleted, enums.DeliveryStatusDelivered)
	for _, step := range steps {
		assert.True(t, step.Completed, step.Label)
		assert.False(t, step.Disabled, step.Label)
		assert.False(t, step.Current, step.Label)
	}
}

func TestHasAddressInfo(t *testing.T) {
	assert.False(t, HasAddressInfo(nil))
	assert.False(t, HasAddressInfo(&types.Order{}))
	order := &types.Order{}
	order.PostalCode = "100000"
	assert.True(t, HasAddressInfo(order))
	assert.Equal(t, "", DisplayID(nil))
	assert.Equal(t, "abc", DisplayID(&types.Order{ID: "abc"}))
}
