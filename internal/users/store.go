package users

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/angelmondragon/scent-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/pagination"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const (
	defaultPageSize = 10
	defaultSortBy   = "id"

	MsgUserUpdated = "User updated successfully!"
	MsgUserDeleted = "User deleted successfully!"
	MsgUserCreated = "User created successfully!"
)

// Backend is the admin user surface of the gateway.
type Backend interface {
	Users(ctx context.Context, page pagination.Params) (*types.Page[types.User], error)
	User(ctx context.Context, id string) (*types.User, error)
	UpdateUser(ctx context.Context, id string, update types.UserUpdate) error
	DeleteUser(ctx context.Context, id string) error
	CreateUser(ctx context.Context, user types.NewUser) error
}

type Notifier interface {
	Success(message string)
	Error(message string)
}

// State is the admin users page.
type State struct {
	Users        []types.User `json:"users"`
	TotalUsers   int64        `json:"totalUsers"`
	TotalPages   int          `json:"totalPages"`
	CurrentPage  int          `json:"currentPage"`
	PageSize     int          `json:"pageSize"`
	SelectedUser *types.User  `json:"selectedUser,omitempty"`
	Error        string       `json:"error,omitempty"`
}

// Store keeps one admin's user listing and applies mutations to it locally once
// the backend accepts them.
type Store struct {
	backend Backend
	notices Notifier
	logg    *logger.Logger

	mu    sync.Mutex
	state State
}

func NewStore(backend Backend, notices Notifier, logg *logger.Logger) (*Store, error) {
	if backend == nil {
		return nil, errors.New("user backend required")
	}
	if notices == nil {
		return nil, errors.New("notifier required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{
		backend: backend,
		notices: notices,
		logg:    logg,
		state:   initialState(),
	}, nil
}

func initialState() State {
	return State{Users: []types.User{}, CurrentPage: 1, PageSize: defaultPageSize}
}

// Reset clears the listing and selection.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = initialState()
}

// Fetch loads a page of users. Zero page fields keep the current page and size;
// sorting defaults to id ascending.
func (s *Store) Fetch(ctx context.Context, page pagination.Params) (State, error) {
	s.mu.Lock()
	current := pagination.Params{
		PageNumber:    s.state.CurrentPage,
		PageSize:      s.state.PageSize,
		SortBy:        defaultSortBy,
		SortDirection: enums.SortAsc,
	}
	s.mu.Unlock()
	page = page.Normalize(current)

	result, err := s.backend.Users(ctx, page)
	if err != nil {
		msg := pkgerrors.UserMessage(err, "Failed to fetch users. Please try again.")
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "users.fetch_failed")
		s.setError(msg)
		return s.State(), err
	}

	s.mu.Lock()
	s.state.Users = result.Content
	if s.state.Users == nil {
		s.state.Users = []types.User{}
	}
	s.state.TotalUsers = result.TotalElements
	s.state.TotalPages = result.TotalPages
	s.state.CurrentPage = page.PageNumber
	s.state.PageSize = page.PageSize
	s.state.Error = ""
	s.mu.Unlock()
	return s.State(), nil
}

// Get loads one user into the selection.
func (s *Store) Get(ctx context.Context, id string) (*types.User, error) {
	user, err := s.backend.User(ctx, id)
	if err != nil {
		s.setError(pkgerrors.UserMessage(err, "Failed to fetch user. Please try again."))
		return nil, err
	}
	s.mu.Lock()
	s.state.SelectedUser = user
	s.state.Error = ""
	s.mu.Unlock()
	return user, nil
}

func (s *Store) SetSelected(user *types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedUser = user
}

// Update patches a user's profile and clears the selection.
func (s *Store) Update(ctx context.Context, id string, update types.UserUpdate) error {
	if err := s.backend.UpdateUser(ctx, id, update); err != nil {
		s.notices.Error(pkgerrors.UserMessage(err, "Failed to update user"))
		s.setError("Failed to update user.")
		return err
	}
	s.mu.Lock()
	s.patch(id, update)
	s.state.SelectedUser = nil
	s.state.Error = ""
	s.mu.Unlock()
	s.notices.Success(MsgUserUpdated)
	return nil
}

// SetActive activates or deactivates a user.
func (s *Store) SetActive(ctx context.Context, id string, active bool) error {
	update := types.UserUpdate{IsActive: &active}
	if err := s.backend.UpdateUser(ctx, id, update); err != nil {
		s.notices.Error(pkgerrors.UserMessage(err, "Failed to update user status"))
		s.setError("Failed to update user status.")
		return err
	}
	s.mu.Lock()
	s.patch(id, update)
	s.state.Error = ""
	s.mu.Unlock()
	if active {
		s.notices.Success("User activated successfully!")
	} else {
		s.notices.Success("User deactivated successfully!")
	}
	return nil
}

// Delete removes a user and drops it from the listing.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteUser(ctx, id); err != nil {
		s.notices.Error(pkgerrors.UserMessage(err, "Failed to delete user"))
		s.setError("Failed to delete user.")
		return err
	}
	s.mu.Lock()
	kept := s.state.Users[:0]
	for _, u := range s.state.Users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.state.Users = kept
	s.state.TotalUsers--
	s.state.Error = ""
	s.mu.Unlock()
	s.notices.Success(MsgUserDeleted)
	return nil
}

// Create adds a user and reloads the current page.
func (s *Store) Create(ctx context.Context, user types.NewUser) error {
	user.Email = strings.TrimSpace(user.Email)
	user.Username = strings.TrimSpace(user.Username)
	if err := s.backend.CreateUser(ctx, user); err != nil {
		msg := pkgerrors.UserMessage(err, "Failed to create user")
		s.notices.Error(msg)
		s.setError(msg)
		return err
	}
	if _, err := s.Fetch(ctx, pagination.Params{}); err != nil {
		s.notices.Error(pkgerrors.UserMessage(err, "Failed to create user"))
		return err
	}
	s.notices.Success(MsgUserCreated)
	return nil
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.Users = append([]types.User{}, s.state.Users...)
	return out
}

func (s *Store) patch(id string, update types.UserUpdate) {
	for i := range s.state.Users {
		if s.state.Users[i].ID == id {
			s.state.Users[i] = update.Apply(s.state.Users[i])
		}
	}
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = msg
}
