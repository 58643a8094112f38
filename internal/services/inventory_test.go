package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gp1-tickets/internal/models"
)

// fakeEventRepo serves a scripted catalog and records the order of calls.
type fakeEventRepo struct {
	mu     sync.Mutex
	events []models.Event
	fail   bool
	calls  []string
}

func (r *fakeEventRepo) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *fakeEventRepo) ListEvents(context.Context) ([]models.Event, error) {
	r.record("list")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, fmt.Errorf("list events: %w", models.ErrStorageUnavailable)
	}
	return models.CloneEvents(r.events), nil
}

func (r *fakeEventRepo) CreateEvent(_ context.Context, event *models.Event) (*models.Event, error) {
	r.record("create " + event.ID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, fmt.Errorf("create event: %w", models.ErrWriteFailed)
	}
	r.events = append(r.events, *event.Clone())
	return event.Clone(), nil
}

func (r *fakeEventRepo) UpdateEvent(_ context.Context, event *models.Event) (*models.Event, error) {
	r.record("update " + event.ID)
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID == event.ID {
			r.events[i] = *event.Clone()
			return event.Clone(), nil
		}
	}
	return nil, fmt.Errorf("update event %q: %w", event.ID, models.ErrNotFound)
}

func (r *fakeEventRepo) DeleteEvent(_ context.Context, id string) error {
	r.record("delete " + id)
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete event %q: %w", id, models.ErrNotFound)
}

func TestInventoryReloadReplacesWholesale(t *testing.T) {
	repo := &fakeEventRepo{events: models.SeedEvents()}
	store := NewInventoryStore(repo, zerolog.Nop())

	assert.False(t, store.Loaded())
	assert.Empty(t, store.Events())

	require.NoError(t, store.Reload(context.Background()))
	assert.True(t, store.Loaded())
	assert.Len(t, store.Events(), 2)
	assert.Empty(t, store.LastError())

	// Shrink the backing catalog; a reload must replace, not merge.
	repo.mu.Lock()
	repo.events = repo.events[:1]
	repo.mu.Unlock()

	require.NoError(t, store.Reload(context.Background()))
	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "qatar-grand-prix-2025", events[0].ID)
}

func TestInventoryReloadFailureKeepsLastKnownGood(t *testing.T) {
	repo := &fakeEventRepo{events: models.SeedEvents()}
	store := NewInventoryStore(repo, zerolog.Nop())

	require.NoError(t, store.Reload(context.Background()))
	require.Len(t, store.Events(), 2)

	repo.mu.Lock()
	repo.fail = true
	repo.mu.Unlock()

	err := store.Reload(context.Background())
	require.ErrorIs(t, err, models.ErrStorageUnavailable)

	// The previous catalog stays visible alongside the error message.
	assert.Len(t, store.Events(), 2)
	assert.Equal(t, "Failed to load events. Please check the store connection.", store.LastError())
	assert.True(t, store.Loaded())
	assert.False(t, store.Loading())

	// A later successful reload clears the message.
	repo.mu.Lock()
	repo.fail = false
	repo.mu.Unlock()

	require.NoError(t, store.Reload(context.Background()))
	assert.Empty(t, store.LastError())
}

func TestInventoryReloadIdempotent(t *testing.T) {
	repo := &fakeEventRepo{events: models.SeedEvents()}
	store := NewInventoryStore(repo, zerolog.Nop())

	require.NoError(t, store.Reload(context.Background()))
	first := store.Events()
	require.NoError(t, store.Reload(context.Background()))
	assert.Equal(t, first, store.Events())
}

func TestInventoryFindByID(t *testing.T) {
	repo := &fakeEventRepo{events: models.SeedEvents()}
	store := NewInventoryStore(repo, zerolog.Nop())
	require.NoError(t, store.Reload(context.Background()))

	event, ok := store.FindByID("italian-grand-prix-2025")
	require.True(t, ok)
	assert.Equal(t, "Italian Grand Prix", event.Name)

	// Mutating the returned copy must not leak into the store.
	event.Name = "changed"
	again, ok := store.FindByID("italian-grand-prix-2025")
	require.True(t, ok)
	assert.Equal(t, "Italian Grand Prix", again.Name)

	_, ok = store.FindByID("monaco-grand-prix-1984")
	assert.False(t, ok)
}

func TestInventoryEventsByYear(t *testing.T) {
	repo := &fakeEventRepo{events: models.SeedEvents()}
	store := NewInventoryStore(repo, zerolog.Nop())
	require.NoError(t, store.Reload(context.Background()))

	assert.Len(t, store.EventsByYear(2025), 2)
	assert.Empty(t, store.EventsByYear(2024))
}
