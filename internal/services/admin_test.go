package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gp1-tickets/internal/models"
)

func newTestAdmin(t *testing.T) (*AdminService, *fakeEventRepo, *InventoryStore, *recordingNotifier) {
	t.Helper()

	repo := &fakeEventRepo{events: models.SeedEvents()}
	store := NewInventoryStore(repo, zerolog.Nop())
	require.NoError(t, store.Reload(context.Background()))

	notifier := &recordingNotifier{}
	admin := NewAdminService(repo, store, notifier, zerolog.Nop())
	return admin, repo, store, notifier
}

func TestAdminCreateEventSynthesizesID(t *testing.T) {
	admin, _, store, notifier := newTestAdmin(t)

	created, err := admin.CreateEvent(context.Background(), &models.Event{
		Name:    "Monaco Grand Prix",
		Date:    "2025-05-25",
		Year:    2025,
		Tickets: models.DefaultTickets(),
	})
	require.NoError(t, err)
	assert.Equal(t, "monaco-grand-prix-2025", created.ID)

	// Blank optional fields pick up the fixed defaults.
	assert.Equal(t, "TBA", created.Location)
	assert.Equal(t, models.DefaultEventImageURL, created.ImageURL)
	assert.Equal(t, models.DefaultFlagURL, created.FlagURL)

	// The store sees the new event after the write-then-reload cycle.
	_, ok := store.FindByID("monaco-grand-prix-2025")
	assert.True(t, ok)

	texts := notifier.all()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "New event created: Monaco Grand Prix")
}

func TestAdminCreateEventKeepsExplicitID(t *testing.T) {
	admin, _, _, _ := newTestAdmin(t)

	created, err := admin.CreateEvent(context.Background(), &models.Event{
		ID:      "monaco-special",
		Name:    "Monaco Grand Prix",
		Date:    "2025-05-25",
		Year:    2025,
		Tickets: models.DefaultTickets(),
	})
	require.NoError(t, err)
	assert.Equal(t, "monaco-special", created.ID)
}

func TestAdminCreateEventDoesNotMutateInput(t *testing.T) {
	admin, _, _, _ := newTestAdmin(t)

	input := &models.Event{Name: "Monaco Grand Prix", Date: "2025-05-25", Year: 2025}
	_, err := admin.CreateEvent(context.Background(), input)
	require.NoError(t, err)

	assert.Empty(t, input.ID)
	assert.Empty(t, input.Location)
}

func TestAdminCreateEventRejectsInvalid(t *testing.T) {
	admin, repo, _, notifier := newTestAdmin(t)

	_, err := admin.CreateEvent(context.Background(), &models.Event{
		Name: "Monaco Grand Prix",
		Date: "next sunday",
		Year: 2025,
	})
	require.ErrorIs(t, err, models.ErrValidationRejected)
	assert.Empty(t, notifier.all())

	// Nothing reached the gateway.
	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Len(t, repo.events, 2)
}

func TestAdminUpdateEventRequiresID(t *testing.T) {
	admin, _, _, _ := newTestAdmin(t)

	_, err := admin.UpdateEvent(context.Background(), &models.Event{
		Name: "Qatar Grand Prix",
		Date: "2025-11-30",
		Year: 2025,
	})
	require.ErrorIs(t, err, models.ErrValidationRejected)
}

func TestAdminUpdateEventReplacesWholesale(t *testing.T) {
	admin, _, store, notifier := newTestAdmin(t)

	event, ok := store.FindByID("qatar-grand-prix-2025")
	require.True(t, ok)
	event.Location = "Lusail"
	event.Tickets = event.Tickets[:1]

	updated, err := admin.UpdateEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, "Lusail", updated.Location)

	held, ok := store.FindByID("qatar-grand-prix-2025")
	require.True(t, ok)
	assert.Equal(t, "Lusail", held.Location)
	assert.Len(t, held.Tickets, 1)

	assert.Contains(t, notifier.all(), "Event updated: Qatar Grand Prix")
}

func TestAdminDeleteEvent(t *testing.T) {
	admin, _, store, notifier := newTestAdmin(t)

	require.NoError(t, admin.DeleteEvent(context.Background(), "qatar-grand-prix-2025"))

	_, ok := store.FindByID("qatar-grand-prix-2025")
	assert.False(t, ok)
	assert.Contains(t, notifier.all(), "Event deleted: Qatar Grand Prix")

	err := admin.DeleteEvent(context.Background(), "qatar-grand-prix-2025")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestAdminReloadSequencedAfterWrite(t *testing.T) {
	admin, repo, _, _ := newTestAdmin(t)

	_, err := admin.CreateEvent(context.Background(), &models.Event{
		Name: "Monaco Grand Prix",
		Date: "2025-05-25",
		Year: 2025,
	})
	require.NoError(t, err)

	repo.mu.Lock()
	calls := append([]string(nil), repo.calls...)
	repo.mu.Unlock()

	// One list from setup, then the create strictly before its reload.
	require.Len(t, calls, 3)
	assert.Equal(t, "list", calls[0])
	assert.True(t, strings.HasPrefix(calls[1], "create "))
	assert.Equal(t, "list", calls[2])
}

func TestEventDraftLifecycle(t *testing.T) {
	draft := NewEventDraft()

	assert.Empty(t, draft.EditingID)
	assert.Equal(t, 2025, draft.Year)
	assert.Len(t, draft.Tickets, 4)

	added := draft.AddTicket()
	assert.True(t, strings.HasPrefix(added.ID, "custom-"))
	assert.Equal(t, "New Grandstand", added.Name)
	assert.Equal(t, float64(100), added.Price)
	assert.Len(t, draft.Tickets, 5)

	// Edits through the returned pointer land in the draft.
	added.Price = 275
	held, ok := draft.Ticket(added.ID)
	require.True(t, ok)
	assert.Equal(t, float64(275), held.Price)

	draft.RemoveTicket(added.ID)
	assert.Len(t, draft.Tickets, 4)
	_, ok = draft.Ticket(added.ID)
	assert.False(t, ok)
}

func TestEventDraftSubmitCreatesAndResets(t *testing.T) {
	admin, _, store, _ := newTestAdmin(t)

	draft := NewEventDraft()
	draft.Name = "Monaco Grand Prix"
	draft.Date = "2025-05-25"

	saved, err := draft.Submit(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, "monaco-grand-prix-2025", saved.ID)

	// Success resets the form for the next event.
	assert.Empty(t, draft.Name)
	assert.Empty(t, draft.EditingID)

	_, ok := store.FindByID("monaco-grand-prix-2025")
	assert.True(t, ok)
}

func TestEventDraftSubmitKeepsDraftOnFailure(t *testing.T) {
	admin, _, _, _ := newTestAdmin(t)

	draft := NewEventDraft()
	draft.Name = "Monaco Grand Prix"

	_, err := draft.Submit(context.Background(), admin)
	require.ErrorIs(t, err, models.ErrValidationRejected)
	assert.Equal(t, "Monaco Grand Prix", draft.Name)
}

func TestEventDraftSubmitUpdates(t *testing.T) {
	admin, _, store, _ := newTestAdmin(t)

	event, ok := store.FindByID("italian-grand-prix-2025")
	require.True(t, ok)

	draft := NewEventDraft()
	draft.LoadEvent(event)
	draft.Location = "Autodromo Nazionale Monza"

	saved, err := draft.Submit(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, "italian-grand-prix-2025", saved.ID)
	assert.Equal(t, "Autodromo Nazionale Monza", saved.Location)

	held, ok := store.FindByID("italian-grand-prix-2025")
	require.True(t, ok)
	assert.Equal(t, "Autodromo Nazionale Monza", held.Location)
}

func TestEventDraftDeleteRequiresConfirmation(t *testing.T) {
	admin, _, store, _ := newTestAdmin(t)

	event, ok := store.FindByID("italian-grand-prix-2025")
	require.True(t, ok)

	draft := NewEventDraft()
	draft.LoadEvent(event)

	// Not armed yet.
	err := draft.ConfirmDelete(context.Background(), admin)
	require.ErrorIs(t, err, models.ErrConfirmationRequired)
	_, ok = store.FindByID("italian-grand-prix-2025")
	assert.True(t, ok)

	draft.ArmDelete()
	assert.True(t, draft.DeleteArmed())
	draft.DisarmDelete()
	err = draft.ConfirmDelete(context.Background(), admin)
	require.ErrorIs(t, err, models.ErrConfirmationRequired)

	draft.ArmDelete()
	require.NoError(t, draft.ConfirmDelete(context.Background(), admin))
	_, ok = store.FindByID("italian-grand-prix-2025")
	assert.False(t, ok)
	assert.Empty(t, draft.EditingID)
}

func TestEventDraftDeleteWithoutEditTarget(t *testing.T) {
	admin, _, _, _ := newTestAdmin(t)

	draft := NewEventDraft()
	draft.ArmDelete()
	err := draft.ConfirmDelete(context.Background(), admin)
	require.ErrorIs(t, err, models.ErrConfirmationRequired)
}
