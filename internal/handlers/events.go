package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
	"gp1-tickets/internal/services"
)

// EventHandler serves the event catalog API. Reads come from the inventory
// store so the storefront always sees the last-known-good catalog; writes go
// through the admin service, which persists first and reloads after.
type EventHandler struct {
	store  *services.InventoryStore
	admin  *services.AdminService
	logger zerolog.Logger
}

// NewEventHandler creates a new event handler.
func NewEventHandler(store *services.InventoryStore, admin *services.AdminService, logger zerolog.Logger) *EventHandler {
	return &EventHandler{store: store, admin: admin, logger: logger}
}

// List returns the full catalog, optionally filtered to one season year.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.store.Loaded() {
		if err := h.store.Reload(r.Context()); err != nil {
			writeError(w, err)
			return
		}
	}

	events := h.store.Events()
	if rawYear := r.URL.Query().Get("year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			writeError(w, fmt.Errorf("%w: year must be a number", models.ErrValidationRejected))
			return
		}
		events = h.store.EventsByYear(year)
	}
	if events == nil {
		events = []models.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}

// Get returns one event by id.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, ok := h.store.FindByID(id)
	if !ok {
		writeError(w, fmt.Errorf("event %q: %w", id, models.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Create persists a new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := decodeJSON(r, &event); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidationRejected, err))
		return
	}

	created, err := h.admin.CreateEvent(r.Context(), &event)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces an existing event wholesale. The path id wins over any id
// in the body.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := decodeJSON(r, &event); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidationRejected, err))
		return
	}
	event.ID = chi.URLParam(r, "id")

	updated, err := h.admin.UpdateEvent(r.Context(), &event)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes an event by id.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
