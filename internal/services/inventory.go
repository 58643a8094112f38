package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
	"gp1-tickets/internal/repositories"
)

// InventoryStore holds the last successfully loaded event catalog. Reload
// replaces the held list wholesale; on failure the previous list is kept and
// the error is surfaced as a user-visible message instead of clearing the
// display. After any admin mutation the store is fully reloaded rather than
// optimistically patched, so the displayed state always matches the
// gateway's last-known-good state.
type InventoryStore struct {
	repo   repositories.EventRepository
	logger zerolog.Logger

	mu       sync.RWMutex
	events   []models.Event
	loading  bool
	lastErr  string
	loadedAt bool
}

// NewInventoryStore returns an empty store bound to the given gateway.
func NewInventoryStore(repo repositories.EventRepository, logger zerolog.Logger) *InventoryStore {
	return &InventoryStore{repo: repo, logger: logger}
}

// Reload fetches the full catalog and replaces the held list. The returned
// error mirrors LastError for callers that want to react; the store itself
// never clears its contents on failure.
func (s *InventoryStore) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	events, err := s.repo.ListEvents(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = "Failed to load events. Please check the store connection."
		s.logger.Error().Err(err).Msg("inventory reload failed")
		return err
	}

	s.events = models.CloneEvents(events)
	s.lastErr = ""
	s.loadedAt = true
	s.logger.Debug().Int("events", len(events)).Msg("inventory reloaded")
	return nil
}

// Events returns a copy of the held catalog.
func (s *InventoryStore) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneEvents(s.events)
}

// EventsByYear returns the held events for one season year.
func (s *InventoryStore) EventsByYear(year int) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Event
	for i := range s.events {
		if s.events[i].Year == year {
			out = append(out, *s.events[i].Clone())
		}
	}
	return out
}

// FindByID returns a copy of the event with the given id.
func (s *InventoryStore) FindByID(id string) (*models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.events {
		if s.events[i].ID == id {
			return s.events[i].Clone(), true
		}
	}
	return nil, false
}

// Loading reports whether a reload is in flight.
func (s *InventoryStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the user-visible message from the most recent failed
// reload, or the empty string after a successful one.
func (s *InventoryStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Loaded reports whether at least one reload has succeeded.
func (s *InventoryStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
