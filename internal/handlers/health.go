package handlers

import (
	"net/http"

	"gp1-tickets/internal/services"
)

// HealthHandler reports process liveness and catalog state.
type HealthHandler struct {
	store *services.InventoryStore
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store *services.InventoryStore) *HealthHandler {
	return &HealthHandler{store: store}
}

type healthResponse struct {
	Status string `json:"status"`
	Events int    `json:"events"`
	Error  string `json:"error,omitempty"`
}

// Check answers 200 as long as the process is up; a degraded catalog shows
// in the body rather than the status code so load balancers keep routing.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		Events: len(h.store.Events()),
		Error:  h.store.LastError(),
	}
	if resp.Error != "" {
		resp.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}
