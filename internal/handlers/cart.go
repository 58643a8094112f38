package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
	"gp1-tickets/internal/services"
)

const (
	sessionCookie = "gp1_session"
	sessionIDKey  = "sid"
)

// CartHandler manages the per-session shopping cart. The cart itself lives
// in memory; the cookie only carries an opaque session id.
type CartHandler struct {
	sessions *services.SessionRegistry
	cookies  sessions.Store
	store    *services.InventoryStore
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(registry *services.SessionRegistry, cookies sessions.Store, store *services.InventoryStore, logger zerolog.Logger) *CartHandler {
	return &CartHandler{sessions: registry, cookies: cookies, store: store, logger: logger}
}

// shopSession resolves the caller's shop session, minting a session id on
// first contact.
func (h *CartHandler) shopSession(w http.ResponseWriter, r *http.Request) (*services.ShopSession, error) {
	cookie, err := h.cookies.Get(r, sessionCookie)
	if err != nil {
		// A stale or tampered cookie gets replaced instead of failing.
		cookie, _ = h.cookies.New(r, sessionCookie)
	}

	sid, ok := cookie.Values[sessionIDKey].(string)
	if !ok || sid == "" {
		sid = uuid.NewString()
		cookie.Values[sessionIDKey] = sid
		if err := cookie.Save(r, w); err != nil {
			return nil, fmt.Errorf("save session cookie: %w", err)
		}
	}
	return h.sessions.Get(sid), nil
}

type cartResponse struct {
	Lines []models.CartLine `json:"lines"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func cartView(cart *models.Cart) cartResponse {
	lines := cart.Lines()
	if lines == nil {
		lines = []models.CartLine{}
	}
	return cartResponse{Lines: lines, Total: cart.Total(), Count: cart.Count()}
}

// View returns the session's cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	session, err := h.shopSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(session.Cart()))
}

type addItemRequest struct {
	EventID  string `json:"eventId"`
	TicketID string `json:"ticketId"`
}

// AddItem puts one unit of an event's ticket into the cart. Adding the same
// ticket again increments the existing line.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session, err := h.shopSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidationRejected, err))
		return
	}

	event, ok := h.store.FindByID(req.EventID)
	if !ok {
		writeError(w, fmt.Errorf("event %q: %w", req.EventID, models.ErrNotFound))
		return
	}
	ticket, ok := event.TicketByID(req.TicketID)
	if !ok {
		writeError(w, fmt.Errorf("ticket %q: %w", req.TicketID, models.ErrNotFound))
		return
	}
	if !ticket.Available {
		writeError(w, fmt.Errorf("%w: ticket %q is sold out", models.ErrValidationRejected, req.TicketID))
		return
	}

	session.Cart().Add(ticket)
	writeJSON(w, http.StatusOK, cartView(session.Cart()))
}

type removeItemRequest struct {
	TicketID string `json:"ticketId"`
}

// RemoveItem drops a whole cart line regardless of its quantity.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session, err := h.shopSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req removeItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidationRejected, err))
		return
	}

	session.Cart().Remove(req.TicketID)
	writeJSON(w, http.StatusOK, cartView(session.Cart()))
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, err := h.shopSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	session.Cart().Clear()
	writeJSON(w, http.StatusOK, cartView(session.Cart()))
}
