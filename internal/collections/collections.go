// package collections manages user-owned artwork collections.
//
// Every mutating operation re-checks authentication before dispatching
// any HTTP request, and successful create/delete operations refresh the
// local collection cache wholesale rather than patching it.
package collections

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/services"
	"github.com/Flammans/artanova/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// AuthState exposes the session facts the manager gates on.
// session.Store satisfies this.
type AuthState interface {
	IsAuthenticated() bool
	Current() models.Session
}

// Manager coordinates collection reads and mutations against the API.
type Manager struct {
	api    services.CollectionAPI
	auth   AuthState
	logger *log.Logger

	mu       sync.RWMutex
	cached   []models.Collection
	watchers []func([]models.Collection)
}

// NewManager creates a Manager. A nil logger falls back to the default logger.
func NewManager(api services.CollectionAPI, auth AuthState, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{api: api, auth: auth, logger: logger}
}

// List fetches all collections visible to the current session and
// replaces the local cache with the result.
func (m *Manager) List(ctx context.Context) ([]models.Collection, error) {
	if !m.auth.IsAuthenticated() {
		return nil, shared.ErrNotAuthenticated
	}

	collections, err := m.api.Collections(ctx)
	if err != nil {
		return nil, err
	}

	m.replaceCache(collections)
	return collections, nil
}

// Cached returns a copy of the last fetched collection list.
func (m *Manager) Cached() []models.Collection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Collection, len(m.cached))
	copy(out, m.cached)
	return out
}

// Get fetches a single collection by UUID. No authentication is
// required: collections are readable through their share link.
func (m *Manager) Get(ctx context.Context, id string) (models.Collection, error) {
	if err := validateUUID(id); err != nil {
		return models.Collection{}, err
	}
	collection, err := m.api.Collection(ctx, id)
	if err != nil {
		return models.Collection{}, err
	}
	return *collection, nil
}

// Create creates a collection with the given title and refreshes the
// cache. A blank title is rejected locally without any HTTP call.
func (m *Manager) Create(ctx context.Context, title string) (models.Collection, error) {
	if !m.auth.IsAuthenticated() {
		return models.Collection{}, shared.ErrNotAuthenticated
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return models.Collection{}, fmt.Errorf("%w: collection title is required", shared.ErrInvalidInput)
	}

	created, err := m.api.CreateCollection(ctx, title)
	if err != nil {
		return models.Collection{}, err
	}

	m.refresh(ctx)
	return created, nil
}

// Delete removes a collection and refreshes the cache.
//
// Ownership is enforced server-side; when the cached copy shows a
// different owner the attempt is logged but still dispatched.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if !m.auth.IsAuthenticated() {
		return shared.ErrNotAuthenticated
	}
	if err := validateUUID(id); err != nil {
		return err
	}

	if owner, ok := m.cachedOwner(id); ok && owner != m.auth.Current().ID {
		m.logger.Warn("deleting a collection owned by another user", "uuid", id, "owner", owner)
	}

	if err := m.api.DeleteCollection(ctx, id); err != nil {
		return err
	}

	m.refresh(ctx)
	return nil
}

// AddArtwork adds an artwork to a collection.
func (m *Manager) AddArtwork(ctx context.Context, id string, artworkID int) error {
	if !m.auth.IsAuthenticated() {
		return shared.ErrNotAuthenticated
	}
	if err := validateUUID(id); err != nil {
		return err
	}
	if artworkID <= 0 {
		return fmt.Errorf("%w: artwork id must be positive", shared.ErrInvalidArgument)
	}

	return m.api.AddArtwork(ctx, id, artworkID)
}

// RemoveArtwork removes an artwork from a collection. The server does
// not return the updated element list; callers showing the collection
// detail must refetch it via Get.
func (m *Manager) RemoveArtwork(ctx context.Context, id string, artworkID int) error {
	if !m.auth.IsAuthenticated() {
		return shared.ErrNotAuthenticated
	}
	if err := validateUUID(id); err != nil {
		return err
	}
	if artworkID <= 0 {
		return fmt.Errorf("%w: artwork id must be positive", shared.ErrInvalidArgument)
	}

	return m.api.RemoveArtwork(ctx, id, artworkID)
}

// Subscribe registers fn to be called with the new list after every
// cache replacement.
func (m *Manager) Subscribe(fn func([]models.Collection)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchers = append(m.watchers, fn)
}

// refresh re-lists collections after a successful mutation. A failed
// refresh is logged but does not fail the mutation that triggered it.
func (m *Manager) refresh(ctx context.Context) {
	if _, err := m.List(ctx); err != nil {
		m.logger.Warn("failed to refresh collections after mutation", "error", err)
	}
}

func (m *Manager) replaceCache(collections []models.Collection) {
	m.mu.Lock()
	m.cached = collections
	watchers := make([]func([]models.Collection), len(m.watchers))
	copy(watchers, m.watchers)
	m.mu.Unlock()

	for _, fn := range watchers {
		fn(collections)
	}
}

func (m *Manager) cachedOwner(id string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.cached {
		if c.UUID == id {
			return c.UserID, true
		}
	}
	return 0, false
}

func validateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q is not a valid collection uuid", shared.ErrInvalidArgument, id)
	}
	return nil
}
