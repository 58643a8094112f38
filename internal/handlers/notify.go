package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
	"gp1-tickets/internal/services"
)

// NotifyHandler relays storefront log lines to the notification sink so the
// browser never holds the bot credentials.
type NotifyHandler struct {
	notifier services.Notifier
	logger   zerolog.Logger
}

// NewNotifyHandler creates a new notify handler.
func NewNotifyHandler(notifier services.Notifier, logger zerolog.Logger) *NotifyHandler {
	return &NotifyHandler{notifier: notifier, logger: logger}
}

type notifyRequest struct {
	Text string `json:"text"`
}

// Relay forwards one text line. It always answers 202: delivery is
// best-effort and the caller must never block on it.
func (h *NotifyHandler) Relay(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidationRejected, err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, fmt.Errorf("%w: text is required", models.ErrValidationRejected))
		return
	}

	h.notifier.Notify(r.Context(), req.Text)
	w.WriteHeader(http.StatusAccepted)
}
