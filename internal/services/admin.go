package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
)

// AdminService performs the create/update/delete mutations on the event
// catalog. Every successful write is followed by a full inventory reload,
// sequenced strictly after the write completes, so readers never observe a
// reload that raced ahead of its triggering mutation.
type AdminService struct {
	repo     eventWriter
	store    *InventoryStore
	notifier Notifier
	logger   zerolog.Logger
}

// eventWriter is the slice of the gateway the admin flow needs.
type eventWriter interface {
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// NewAdminService wires the admin flow to the gateway and inventory store.
func NewAdminService(repo eventWriter, store *InventoryStore, notifier Notifier, logger zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, store: store, notifier: notifier, logger: logger}
}

// CreateEvent persists a new event and reloads the inventory. A blank id is
// synthesized from the name and season year; blank artwork fields fall back
// to the fixed placeholders. The input is not mutated on failure so the
// operator can retry without re-entering data.
func (s *AdminService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	prepared := event.Clone()
	applyDefaults(prepared)
	if prepared.ID == "" {
		prepared.ID = models.EventID(prepared.Name, prepared.Year)
	}

	if err := prepared.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidationRejected, err)
	}

	created, err := s.repo.CreateEvent(ctx, prepared)
	if err != nil {
		return nil, err
	}
	s.reloadAfterWrite(ctx)

	s.notifier.Notify(ctx, fmt.Sprintf("New event created: %s (%s, %s). Tickets configured: %d",
		created.Name, created.Location, created.Date, len(created.Tickets)))
	return created, nil
}

// UpdateEvent replaces an existing event wholesale and reloads the
// inventory. The id must already exist; it never changes on update.
func (s *AdminService) UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	prepared := event.Clone()
	applyDefaults(prepared)

	if prepared.ID == "" {
		return nil, fmt.Errorf("%w: update requires an event id", models.ErrValidationRejected)
	}
	if err := prepared.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidationRejected, err)
	}

	updated, err := s.repo.UpdateEvent(ctx, prepared)
	if err != nil {
		return nil, err
	}
	s.reloadAfterWrite(ctx)

	s.notifier.Notify(ctx, "Event updated: "+updated.Name)
	return updated, nil
}

// DeleteEvent removes an event by id and reloads the inventory.
func (s *AdminService) DeleteEvent(ctx context.Context, id string) error {
	name := id
	if event, ok := s.store.FindByID(id); ok {
		name = event.Name
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.reloadAfterWrite(ctx)

	s.notifier.Notify(ctx, "Event deleted: "+name)
	return nil
}

// reloadAfterWrite refreshes the inventory once the mutation has completed.
// A failed reload keeps the store's last-known-good list and message; the
// mutation itself already succeeded, so the error is only logged here.
func (s *AdminService) reloadAfterWrite(ctx context.Context) {
	if err := s.store.Reload(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("reload after write failed")
	}
}

func applyDefaults(event *models.Event) {
	event.Name = strings.TrimSpace(event.Name)
	if strings.TrimSpace(event.Location) == "" {
		event.Location = "TBA"
	}
	if event.Year == 0 {
		event.Year = 2025
	}
	if strings.TrimSpace(event.ImageURL) == "" {
		event.ImageURL = models.DefaultEventImageURL
	}
	if strings.TrimSpace(event.FlagURL) == "" {
		event.FlagURL = models.DefaultFlagURL
	}
}

// EventDraft is the in-memory edit buffer behind the admin form: one event's
// fields plus its ticket list, editable as a unit and only persisted on
// submit. A fresh draft starts from the default ticket template.
type EventDraft struct {
	EditingID string
	Name      string
	Location  string
	Date      string
	Year      int
	ImageURL  string
	FlagURL   string
	Tickets   []models.Ticket

	deleteArmed bool
}

// NewEventDraft returns an empty draft seeded with the default tickets.
func NewEventDraft() *EventDraft {
	return &EventDraft{Year: 2025, Tickets: models.DefaultTickets()}
}

// LoadEvent fills the draft from an existing event for editing.
func (d *EventDraft) LoadEvent(event *models.Event) {
	d.EditingID = event.ID
	d.Name = event.Name
	d.Location = event.Location
	d.Date = event.Date
	d.Year = event.Year
	d.ImageURL = event.ImageURL
	d.FlagURL = event.FlagURL
	d.Tickets = models.CloneTickets(event.Tickets)
	d.deleteArmed = false
}

// Reset returns the draft to the blank create state.
func (d *EventDraft) Reset() {
	*d = *NewEventDraft()
}

// AddTicket appends a clone of the template ticket with a freshly generated
// id and a default price, returning a pointer for in-place editing.
func (d *EventDraft) AddTicket() *models.Ticket {
	ticket := models.DefaultTickets()[0]
	ticket.ID = "custom-" + uuid.NewString()
	ticket.Name = "New Grandstand"
	ticket.Price = 100
	d.Tickets = append(d.Tickets, ticket)
	return &d.Tickets[len(d.Tickets)-1]
}

// Ticket returns a pointer to the draft ticket with the given id so any of
// its fields can be edited in place.
func (d *EventDraft) Ticket(id string) (*models.Ticket, bool) {
	for i := range d.Tickets {
		if d.Tickets[i].ID == id {
			return &d.Tickets[i], true
		}
	}
	return nil, false
}

// RemoveTicket drops the draft ticket with the given id.
func (d *EventDraft) RemoveTicket(id string) {
	kept := d.Tickets[:0]
	for _, t := range d.Tickets {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	d.Tickets = kept
}

// ArmDelete is the first step of the two-step delete confirmation.
func (d *EventDraft) ArmDelete() { d.deleteArmed = true }

// DisarmDelete backs out of an armed delete.
func (d *EventDraft) DisarmDelete() { d.deleteArmed = false }

// DeleteArmed reports whether a delete has been armed.
func (d *EventDraft) DeleteArmed() bool { return d.deleteArmed }

// Event materializes the draft into an event entity. Name and date are
// required; everything else is defaulted on submit.
func (d *EventDraft) Event() (*models.Event, error) {
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Date) == "" {
		return nil, fmt.Errorf("%w: event name and date are required", models.ErrValidationRejected)
	}
	return &models.Event{
		ID:       d.EditingID,
		Name:     d.Name,
		Location: d.Location,
		Date:     d.Date,
		Year:     d.Year,
		ImageURL: d.ImageURL,
		FlagURL:  d.FlagURL,
		Tickets:  models.CloneTickets(d.Tickets),
	}, nil
}

// Submit persists the draft: create when no event is being edited, full
// replace otherwise. On success the draft is reset; on failure it is left
// untouched for retry.
func (d *EventDraft) Submit(ctx context.Context, admin *AdminService) (*models.Event, error) {
	event, err := d.Event()
	if err != nil {
		return nil, err
	}

	var saved *models.Event
	if d.EditingID == "" {
		saved, err = admin.CreateEvent(ctx, event)
	} else {
		saved, err = admin.UpdateEvent(ctx, event)
	}
	if err != nil {
		return nil, err
	}

	d.Reset()
	return saved, nil
}

// ConfirmDelete executes an armed delete of the event being edited. Without
// a prior ArmDelete, or outside of edit mode, it fails with
// models.ErrConfirmationRequired.
func (d *EventDraft) ConfirmDelete(ctx context.Context, admin *AdminService) error {
	if d.EditingID == "" || !d.deleteArmed {
		return fmt.Errorf("delete event: %w", models.ErrConfirmationRequired)
	}

	if err := admin.DeleteEvent(ctx, d.EditingID); err != nil {
		return err
	}
	d.Reset()
	return nil
}
