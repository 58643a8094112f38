package handlers

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
	"gp1-tickets/internal/services"
)

// CheckoutHandler drives the staged purchase flow over the session's cart.
// Every route resolves the caller's session first; checkout state never
// leaves process memory.
type CheckoutHandler struct {
	cart     *CartHandler
	notifier services.Notifier
	options  services.CheckoutOptions
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(cart *CartHandler, notifier services.Notifier, options services.CheckoutOptions, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{cart: cart, notifier: notifier, options: options, logger: logger}
}

type checkoutResponse struct {
	Stage     services.CheckoutStage `json:"stage"`
	Resending bool                   `json:"resending"`
	Total     float64                `json:"total"`
	FirstName string                 `json:"firstName,omitempty"`
	Email     string                 `json:"email,omitempty"`
}

func checkoutView(session *services.CheckoutSession, cart *models.Cart) checkoutResponse {
	out := checkoutResponse{
		Stage:     session.Stage(),
		Resending: session.Resending(),
		Total:     cart.Total(),
	}
	if out.Stage == services.StageSuccess {
		out.FirstName, out.Email = session.Confirmation()
	}
	return out
}

// checkoutSession resolves the open checkout for the caller, or fails when
// none has been started.
func (h *CheckoutHandler) checkoutSession(w http.ResponseWriter, r *http.Request) (*services.ShopSession, *services.CheckoutSession, error) {
	session, err := h.cart.shopSession(w, r)
	if err != nil {
		return nil, nil, err
	}
	checkout := session.Checkout()
	if checkout == nil {
		return nil, nil, fmt.Errorf("no open checkout: %w", models.ErrNotFound)
	}
	return session, checkout, nil
}

// Start opens a checkout for the session's cart.
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.cart.shopSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if session.Cart().Empty() {
		writeError(w, fmt.Errorf("%w: cart is empty", models.ErrValidationRejected))
		return
	}

	checkout := session.OpenCheckout(h.notifier, h.logger, h.options)
	writeJSON(w, http.StatusOK, checkoutView(checkout, session.Cart()))
}

// Status reports the current stage of the open checkout.
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	session, checkout, err := h.checkoutSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutView(checkout, session.Cart()))
}

// SubmitPayment accepts the contact and payment form.
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	session, checkout, err := h.checkoutSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	var form services.PaymentForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidationRejected, err))
		return
	}

	if err := checkout.SubmitPayment(r.Context(), form); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutView(checkout, session.Cart()))
}

type codeRequest struct {
	Code string `json:"code"`
}

// SubmitCode accepts the SMS verification code.
func (h *CheckoutHandler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	session, checkout, err := h.checkoutSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req codeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidationRejected, err))
		return
	}

	if err := checkout.SubmitCode(r.Context(), req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutView(checkout, session.Cart()))
}

// Resend requests a new verification code.
func (h *CheckoutHandler) Resend(w http.ResponseWriter, r *http.Request) {
	session, checkout, err := h.checkoutSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := checkout.Resend(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutView(checkout, session.Cart()))
}

// Cancel abandons the checkout. The cart is untouched.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	session, checkout, err := h.checkoutSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := checkout.Cancel(); err != nil {
		writeError(w, err)
		return
	}
	session.CloseCheckout()
	writeJSON(w, http.StatusOK, checkoutResponse{Stage: services.StageCancelled})
}

// Acknowledge confirms the success screen, clearing the cart and closing
// the checkout.
func (h *CheckoutHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	session, checkout, err := h.checkoutSession(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := checkout.Acknowledge(); err != nil {
		writeError(w, err)
		return
	}
	view := checkoutView(checkout, session.Cart())
	session.CloseCheckout()
	writeJSON(w, http.StatusOK, view)
}
