package repositories

import (
	"context"

	"gp1-tickets/internal/models"
)

// EventRepository is the persistence gateway for the event catalog. Two
// implementations satisfy the same contract: a local simulated store backed
// by a single SQLite slot and a remote client speaking the event CRUD API.
// Callers pick one at construction time and never branch on the mode.
type EventRepository interface {
	// ListEvents returns the full catalog. It fails with
	// models.ErrStorageUnavailable when the backing store cannot be
	// reached.
	ListEvents(ctx context.Context) ([]models.Event, error)

	// CreateEvent persists a new event including its nested ticket list.
	// It fails with models.ErrWriteFailed on a duplicate id or transport
	// error.
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)

	// UpdateEvent replaces all mutable fields of one event, including the
	// entire ticket list, by id. It fails with models.ErrNotFound when the
	// id does not exist and models.ErrWriteFailed otherwise.
	UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error)

	// DeleteEvent removes the event and its nested tickets. It fails with
	// models.ErrNotFound when the id is absent.
	DeleteEvent(ctx context.Context, id string) error
}
