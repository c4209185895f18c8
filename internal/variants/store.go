package variants

import (
	"context"
	"errors"
	"sync"

	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

const (
	MsgCreated = "Product variant created successfully"
	MsgUpdated = "Product variant updated successfully"
	MsgDeleted = "Product variant deleted successfully"
)

type Backend interface {
	Variant(ctx context.Context, id string) (*types.ProductVariant, error)
	CreateVariant(ctx context.Context, input types.VariantInput) (*types.ProductVariant, error)
	UpdateVariant(ctx context.Context, id string, input types.VariantInput) (*types.ProductVariant, error)
	DeleteVariant(ctx context.Context, id string) error
}

type Notifier interface {
	Success(message string)
	Error(message string)
}

// Store is the admin product-variant editor state.
type Store struct {
	backend Backend
	notices Notifier
	logg    *logger.Logger

	mu       sync.Mutex
	selected *types.ProductVariant
	lastErr  string
}

func NewStore(backend Backend, notices Notifier, logg *logger.Logger) (*Store, error) {
	if backend == nil {
		return nil, errors.New("variant backend required")
	}
	if notices == nil {
		return nil, errors.New("notifier required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{backend: backend, notices: notices, logg: logg}, nil
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.lastErr = ""
}

func (s *Store) Create(ctx context.Context, input types.VariantInput) (*types.ProductVariant, error) {
	variant, err := s.backend.CreateVariant(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, err, "Failed to create product variant")
	}
	s.succeed(MsgCreated)
	return variant, nil
}

func (s *Store) Update(ctx context.Context, id string, input types.VariantInput) (*types.ProductVariant, error) {
	variant, err := s.backend.UpdateVariant(ctx, id, input)
	if err != nil {
		return nil, s.fail(ctx, err, "Failed to update product variant")
	}
	s.mu.Lock()
	if s.selected != nil && s.selected.ID == id {
		s.selected = variant
	}
	s.mu.Unlock()
	s.succeed(MsgUpdated)
	return variant, nil
}

// Get loads a variant and selects it.
func (s *Store) Get(ctx context.Context, id string) (*types.ProductVariant, error) {
	variant, err := s.backend.Variant(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, err, "Failed to fetch product variant")
	}
	s.mu.Lock()
	s.selected = variant
	s.lastErr = ""
	s.mu.Unlock()
	return variant, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteVariant(ctx, id); err != nil {
		return s.fail(ctx, err, "Failed to delete product variant")
	}
	s.mu.Lock()
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()
	s.succeed(MsgDeleted)
	return nil
}

func (s *Store) SetSelected(variant *types.ProductVariant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = variant
}

func (s *Store) Selected() *types.ProductVariant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// LastError is the message of the most recent failure, cleared by the next success.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) succeed(msg string) {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	s.notices.Success(msg)
}

func (s *Store) fail(ctx context.Context, err error, fallback string) error {
	msg := pkgerrors.UserMessage(err, fallback)
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "variants.request_failed")
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
	s.notices.Error(msg)
	return err
}
