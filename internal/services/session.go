package services

import (
	"sync"

	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
)

// ShopSession is the per-browser-session state: one cart and, while a
// checkout is open, one checkout session. Neither is ever persisted.
type ShopSession struct {
	mu       sync.Mutex
	cart     *models.Cart
	checkout *CheckoutSession
}

// Cart returns the session's cart.
func (s *ShopSession) Cart() *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Checkout returns the open checkout session, or nil.
func (s *ShopSession) Checkout() *CheckoutSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout
}

// OpenCheckout creates a checkout session for the cart. An already-open
// session is returned as-is so a double click does not restart the flow.
func (s *ShopSession) OpenCheckout(notifier Notifier, logger zerolog.Logger, opts CheckoutOptions) *CheckoutSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout != nil {
		return s.checkout
	}
	s.checkout = NewCheckoutSession(s.cart, notifier, logger, opts)
	return s.checkout
}

// CloseCheckout drops the checkout session reference after teardown.
func (s *ShopSession) CloseCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout = nil
}

// SessionRegistry maps opaque session ids to their shop state. Entries are
// created lazily on first access.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*ShopSession
}

// NewSessionRegistry returns an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*ShopSession)}
}

// Get returns the session for id, creating it if necessary.
func (r *SessionRegistry) Get(id string) *ShopSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		session = &ShopSession{cart: models.NewCart()}
		r.sessions[id] = session
	}
	return session
}

// Drop removes the session for id.
func (r *SessionRegistry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
