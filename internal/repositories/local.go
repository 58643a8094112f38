package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
)

// catalogSlot names the single durable slot holding the whole event list.
const catalogSlot = "event-catalog"

// LocalEventRepository is the simulated store: one SQLite row holds the full
// event list as a single JSON blob and every operation is a read-modify-write
// against that slot. The first read of an empty slot seeds it from the fixed
// default catalog.
type LocalEventRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewLocalEventRepository opens (and if needed creates) the SQLite database
// at path and ensures the slot table exists.
func NewLocalEventRepository(path string, logger zerolog.Logger) (*LocalEventRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS catalog_slots (
			name       TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init local store schema: %w", err)
	}

	return &LocalEventRepository{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (r *LocalEventRepository) Close() error {
	return r.db.Close()
}

// ListEvents reads the whole catalog from the slot.
func (r *LocalEventRepository) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := r.readSlot(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent appends the event to the catalog and writes the whole list back.
func (r *LocalEventRepository) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	events, err := r.readSlot(ctx)
	if err != nil {
		return nil, err
	}

	for i := range events {
		if events[i].ID == event.ID {
			return nil, fmt.Errorf("create event %q: %w", event.ID, models.ErrDuplicateEvent)
		}
	}

	events = append(events, *event.Clone())
	if err := r.writeSlot(ctx, events); err != nil {
		return nil, fmt.Errorf("create event %q: %w", event.ID, err)
	}

	r.logger.Info().Str("event_id", event.ID).Str("name", event.Name).Msg("event created")
	return event.Clone(), nil
}

// UpdateEvent replaces the stored event with the given id wholesale.
func (r *LocalEventRepository) UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	events, err := r.readSlot(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = *event.Clone()
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("update event %q: %w", event.ID, models.ErrNotFound)
	}

	if err := r.writeSlot(ctx, events); err != nil {
		return nil, fmt.Errorf("update event %q: %w", event.ID, err)
	}

	r.logger.Info().Str("event_id", event.ID).Msg("event updated")
	return event.Clone(), nil
}

// DeleteEvent removes the event with the given id and writes the list back.
func (r *LocalEventRepository) DeleteEvent(ctx context.Context, id string) error {
	events, err := r.readSlot(ctx)
	if err != nil {
		return err
	}

	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(events) {
		return fmt.Errorf("delete event %q: %w", id, models.ErrNotFound)
	}

	if err := r.writeSlot(ctx, kept); err != nil {
		return fmt.Errorf("delete event %q: %w", id, err)
	}

	r.logger.Info().Str("event_id", id).Msg("event deleted")
	return nil
}

func (r *LocalEventRepository) readSlot(ctx context.Context) ([]models.Event, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM catalog_slots WHERE name = ?`, catalogSlot,
	).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		// Empty store: seed it with the default catalog so the first
		// read of a fresh installation is never empty.
		seeds := models.SeedEvents()
		if err := r.writeSlot(ctx, seeds); err != nil {
			return nil, fmt.Errorf("seed default catalog: %w", err)
		}
		r.logger.Info().Int("events", len(seeds)).Msg("seeded empty catalog slot")
		return seeds, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog slot: %v", models.ErrStorageUnavailable, err)
	}

	var events []models.Event
	if err := json.Unmarshal([]byte(payload), &events); err != nil {
		return nil, fmt.Errorf("%w: decode catalog slot: %v", models.ErrStorageUnavailable, err)
	}
	return events, nil
}

func (r *LocalEventRepository) writeSlot(ctx context.Context, events []models.Event) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("%w: encode catalog: %v", models.ErrWriteFailed, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO catalog_slots (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		catalogSlot, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: write catalog slot: %v", models.ErrWriteFailed, err)
	}
	return nil
}
