package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
)

// CheckoutStage identifies where a purchase attempt currently stands.
type CheckoutStage string

const (
	StageForm         CheckoutStage = "form"
	StageVerification CheckoutStage = "verification"
	StageProcessing   CheckoutStage = "processing"
	StageSuccess      CheckoutStage = "success"
	StageCancelled    CheckoutStage = "cancelled"
)

// PaymentForm carries the contact and payment fields entered on the first
// checkout step. Card number and expiry are normalized before validation.
type PaymentForm struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

// CheckoutOptions tune the simulated timers. Zero values fall back to the
// production defaults.
type CheckoutOptions struct {
	ProcessingDelay time.Duration
	ResendCooldown  time.Duration
}

const (
	defaultProcessingDelay = 2500 * time.Millisecond
	defaultResendCooldown  = 2 * time.Second
)

// CheckoutSession drives one purchase attempt through
// form -> verification -> processing -> success. It is ephemeral: created
// when checkout opens and discarded when it closes. Completing it does not
// touch ticket availability; this storefront does not decrement stock.
//
// This is a simulated flow. Payment fields are checked for presence and
// shape only (no Luhn, no expiry-in-future), the verification code is
// accepted by length alone, and processing is a fixed-duration timer with
// no declined path. A real integration would replace the timer with a
// payment-authorization call and add a failure terminal state.
type CheckoutSession struct {
	notifier Notifier
	logger   zerolog.Logger
	cart     *models.Cart

	processingDelay time.Duration
	resendCooldown  time.Duration

	mu        sync.Mutex
	stage     CheckoutStage
	form      PaymentForm
	resending bool
	done      chan struct{}
}

// NewCheckoutSession opens a checkout for the given cart and announces it to
// the notification sink.
func NewCheckoutSession(cart *models.Cart, notifier Notifier, logger zerolog.Logger, opts CheckoutOptions) *CheckoutSession {
	if opts.ProcessingDelay <= 0 {
		opts.ProcessingDelay = defaultProcessingDelay
	}
	if opts.ResendCooldown <= 0 {
		opts.ResendCooldown = defaultResendCooldown
	}

	s := &CheckoutSession{
		notifier:        notifier,
		logger:          logger,
		cart:            cart,
		processingDelay: opts.ProcessingDelay,
		resendCooldown:  opts.ResendCooldown,
		stage:           StageForm,
		done:            make(chan struct{}),
	}

	s.notifier.Notify(context.Background(), fmt.Sprintf("Checkout started. Amount: €%v", cart.Total()))
	return s
}

// Stage returns the current stage.
func (s *CheckoutSession) Stage() CheckoutStage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// SubmitPayment moves form -> verification after validating the entered
// contact and payment fields. On a validation failure the stage is unchanged
// and the error wraps models.ErrValidationRejected.
func (s *CheckoutSession) SubmitPayment(ctx context.Context, form PaymentForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageForm {
		return fmt.Errorf("submit payment in stage %q: %w", s.stage, models.ErrInvalidTransition)
	}

	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)
	form.CardNumber = NormalizeCardNumber(form.CardNumber)
	form.Expiry = NormalizeExpiry(form.Expiry)
	form.CVC = digitsOnly(form.CVC)

	if err := validatePaymentForm(form); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidationRejected, err)
	}

	s.form = form
	s.stage = StageVerification

	// Payment instrument fields are deliberately redacted: only the last
	// four card digits ever leave the process.
	s.notifier.Notify(ctx, fmt.Sprintf("Payment details submitted. Card: %s. Waiting for SMS verification.", MaskCardNumber(form.CardNumber)))
	return nil
}

// SubmitCode moves verification -> processing when the entered code has at
// least four digits; shorter input is rejected and the stage is unchanged.
// Processing resolves to success unconditionally after the fixed delay.
func (s *CheckoutSession) SubmitCode(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageVerification {
		return fmt.Errorf("submit code in stage %q: %w", s.stage, models.ErrInvalidTransition)
	}

	code = digitsOnly(code)
	if len(code) < 4 {
		return fmt.Errorf("%w: verification code must be at least 4 digits", models.ErrValidationRejected)
	}

	s.stage = StageProcessing
	s.notifier.Notify(ctx, "Verification code submitted. Processing transaction.")

	time.AfterFunc(s.processingDelay, s.complete)
	return nil
}

func (s *CheckoutSession) complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageProcessing {
		return
	}
	s.stage = StageSuccess

	total := s.cart.Total()
	manifest := s.cart.Manifest()
	s.notifier.Notify(context.Background(),
		fmt.Sprintf("New order received. Total: €%v. Items: %s. Status: Paid", total, manifest))
	s.logger.Info().Float64("total", total).Str("items", manifest).Msg("checkout completed")

	close(s.done)
}

// Resend re-arms the transient sending flag for the fixed cooldown window.
// The stage never changes; repeated calls inside the window are ignored.
func (s *CheckoutSession) Resend(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageVerification {
		return fmt.Errorf("resend in stage %q: %w", s.stage, models.ErrInvalidTransition)
	}
	if s.resending {
		return nil
	}

	s.resending = true
	s.notifier.Notify(ctx, "Verification code resend requested.")

	time.AfterFunc(s.resendCooldown, func() {
		s.mu.Lock()
		s.resending = false
		s.mu.Unlock()
	})
	return nil
}

// Resending reports whether the resend cooldown is active.
func (s *CheckoutSession) Resending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resending
}

// Done is closed when the session reaches success.
func (s *CheckoutSession) Done() <-chan struct{} {
	return s.done
}

// Cancel discards the session. Closing the flow is allowed from the form
// and verification stages only; once processing has started there is no way
// out but completion.
func (s *CheckoutSession) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.stage {
	case StageForm, StageVerification:
		s.stage = StageCancelled
		return nil
	default:
		return fmt.Errorf("cancel in stage %q: %w", s.stage, models.ErrInvalidTransition)
	}
}

// Acknowledge confirms a successful checkout: the cart is cleared exactly
// once and the session is finished. Only legal in the success stage.
func (s *CheckoutSession) Acknowledge() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageSuccess {
		return fmt.Errorf("acknowledge in stage %q: %w", s.stage, models.ErrInvalidTransition)
	}
	s.cart.Clear()
	return nil
}

// Confirmation returns the finalized first name and email shown on the
// success screen. Both are empty before the form has been accepted.
func (s *CheckoutSession) Confirmation() (firstName, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.FirstName, s.form.Email
}

func validatePaymentForm(form PaymentForm) error {
	if form.FirstName == "" {
		return fmt.Errorf("first name is required")
	}
	if form.LastName == "" {
		return fmt.Errorf("last name is required")
	}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		return fmt.Errorf("invalid email address %q", form.Email)
	}
	if digitsOnly(form.CardNumber) == "" {
		return fmt.Errorf("card number is required")
	}
	if len(form.Expiry) != 5 || form.Expiry[2] != '/' {
		return fmt.Errorf("expiry must be in MM/YY form")
	}
	if len(form.CVC) != 3 {
		return fmt.Errorf("CVC must be 3 digits")
	}
	return nil
}

// NormalizeCardNumber strips non-digits and regroups the number into blocks
// of four, capped at 19 characters (16 digits plus separators).
func NormalizeCardNumber(raw string) string {
	digits := digitsOnly(raw)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if len(out) > 19 {
		out = out[:19]
	}
	return out
}

// NormalizeExpiry strips non-digits and inserts the MM/YY slash, capped at
// five characters.
func NormalizeExpiry(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) <= 2 {
		return digits
	}
	out := digits[:2] + "/" + digits[2:]
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// MaskCardNumber hides all but the last four digits.
func MaskCardNumber(normalized string) string {
	digits := digitsOnly(normalized)
	if len(digits) <= 4 {
		return "****"
	}
	return "**** " + digits[len(digits)-4:]
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
