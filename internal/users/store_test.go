package users

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/scent-storefront/internal/notify"
	"github.com/angelmondragon/scent-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendErr struct{ msg string }

func (e backendErr) Error() string          { return "backend: " + e.msg }
func (e backendErr) StatusCode() int        { return 400 }
func (e backendErr) BackendMessage() string { return e.msg }
func (e backendErr) Path() string           { return "/api/user" }

type stubBackend struct {
	users     []types.User
	total     int64
	pages     []pagination.Params
	updates   map[string]types.UserUpdate
	deleted   []string
	created   []types.NewUser
	err       error
	createErr error
}

func (s *stubBackend) Users(_ context.Context, page pagination.Params) (*types.Page[types.User], error) {
	s.pages = append(s.pages, page)
	if s.err != nil {
		return nil, s.err
	}
	return &types.Page[types.User]{Content: append([]types.User(nil), s.users...), TotalElements: s.total, TotalPages: 1}, nil
}

func (s *stubBackend) User(_ context.Context, id string) (*types.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &types.User{ID: id}, nil
}

func (s *stubBackend) UpdateUser(_ context.Context, id string, update types.UserUpdate) error {
	if s.err != nil {
		return s.err
	}
	if s.updates == nil {
		s.updates = map[string]types.UserUpdate{}
	}
	s.updates[id] = update
	return nil
}

func (s *stubBackend) DeleteUser(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBackend) CreateUser(_ context.Context, user types.NewUser) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, user)
	return nil
}

func seeded() *stubBackend {
	return &stubBackend{
		users: []types.User{{ID: "u1", FullName: "Ana", IsActive: true}, {ID: "u2", FullName: "Bao", IsActive: true}},
		total: 2,
	}
}

func newStore(t *testing.T, backend *stubBackend) (*Store, *notify.Queue) {
	t.Helper()
	queue := notify.NewQueue()
	store, err := NewStore(backend, queue, nil)
	require.NoError(t, err)
	return store, queue
}

func TestFetchDefaults(t *testing.T) {
	backend := seeded()
	store, _ := newStore(t, backend)

	state, err := store.Fetch(context.Background(), pagination.Params{})
	require.NoError(t, err)
	require.Len(t, backend.pages, 1)
	assert.Equal(t, pagination.Params{PageNumber: 1, PageSize: 10, SortBy: "id", SortDirection: enums.SortAsc}, backend.pages[0])
	assert.Len(t, state.Users, 2)
	assert.Equal(t, int64(2), state.TotalUsers)

	_, err = store.Fetch(context.Background(), pagination.Params{PageNumber: 3, PageSize: 25})
	require.NoError(t, err)
	state = store.State()
	assert.Equal(t, 3, state.CurrentPage)
	assert.Equal(t, 25, state.PageSize)

	_, err = store.Fetch(context.Background(), pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, 3, backend.pages[2].PageNumber, "keeps the current page")
}

func TestFetchFailureRecordsMessage(t *testing.T) {
	backend := seeded()
	backend.err = errors.New("down")
	store, _ := newStore(t, backend)
	state, err := store.Fetch(context.Background(), pagination.Params{})
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch users. Please try again.", state.Error)
}

func TestUpdatePatchesListAndClearsSelection(t *testing.T) {
	backend := seeded()
	store, queue := newStore(t, backend)
	_, err := store.Fetch(context.Background(), pagination.Params{})
	require.NoError(t, err)
	_, err = store.Get(context.Background(), "u1")
	require.NoError(t, err)

	name := "Ana Tran"
	require.NoError(t, store.Update(context.Background(), "u1", types.UserUpdate{FullName: &name}))
	state := store.State()
	assert.Equal(t, "Ana Tran", state.Users[0].FullName)
	assert.Nil(t, state.SelectedUser)
	assert.Equal(t, MsgUserUpdated, queue.Drain()[0].Message)
}

func TestUpdateFailureUsesBackendMessage(t *testing.T) {
	backend := seeded()
	store, queue := newStore(t, backend)
	backend.err = pkgerrors.Wrap(pkgerrors.CodeValidation, backendErr{msg: "Phone number invalid"}, "Phone number invalid")
	require.Error(t, store.Update(context.Background(), "u1", types.UserUpdate{}))
	assert.Equal(t, "Phone number invalid", queue.Drain()[0].Message)

	backend.err = errors.New("timeout")
	require.Error(t, store.Update(context.Background(), "u1", types.UserUpdate{}))
	assert.Equal(t, "Failed to update user", queue.Drain()[0].Message)
}

func TestSetActiveMessages(t *testing.T) {
	backend := seeded()
	store, queue := newStore(t, backend)
	_, err := store.Fetch(context.Background(), pagination.Params{})
	require.NoError(t, err)

	require.NoError(t, store.SetActive(context.Background(), "u2", false))
	assert.False(t, store.State().Users[1].IsActive)
	assert.Equal(t, "User deactivated successfully!", queue.Drain()[0].Message)

	require.NoError(t, store.SetActive(context.Background(), "u2", true))
	assert.Equal(t, "User activated successfully!", queue.Drain()[0].Message)
	require.NotNil(t, backend.updates["u2"].IsActive)
}

func TestDeleteRemovesLocally(t *testing.T) {
	backend := seeded()
	store, queue := newStore(t, backend)
	_, err := store.Fetch(context.Background(), pagination.Params{})
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "u1"))
	state := store.State()
	require.Len(t, state.Users, 1)
	assert.Equal(t, "u2", state.Users[0].ID)
	assert.Equal(t, int64(1), state.TotalUsers)
	assert.Equal(t, MsgUserDeleted, queue.Drain()[0].Message)
}

func TestCreateRefreshesList(t *testing.T) {
	backend := seeded()
	store, queue := newStore(t, backend)

	err := store.Create(context.Background(), types.NewUser{Email: " new@example.com ", Username: "newbie"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", backend.created[0].Email)
	assert.Len(t, backend.pages, 1)
	assert.Equal(t, MsgUserCreated, queue.Drain()[0].Message)
}

func TestCreateFailure(t *testing.T) {
	backend := seeded()
	backend.createErr = pkgerrors.Wrap(pkgerrors.CodeConflict, backendErr{msg: "Username already exists"}, "Username already exists")
	store, queue := newStore(t, backend)
	require.Error(t, store.Create(context.Background(), types.NewUser{}))
	assert.Equal(t, "Username already exists", store.State().Error)
	assert.Equal(t, "Username already exists", queue.Drain()[0].Message)
	assert.Empty(t, backend.pages)
}
