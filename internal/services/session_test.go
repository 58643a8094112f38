package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gp1-tickets/internal/models"
)

func TestSessionRegistryLazyCreation(t *testing.T) {
	registry := NewSessionRegistry()

	first := registry.Get("sid-1")
	require.NotNil(t, first)
	require.NotNil(t, first.Cart())

	// Same id, same session; different id, different cart.
	assert.Same(t, first, registry.Get("sid-1"))
	assert.NotSame(t, first, registry.Get("sid-2"))

	first.Cart().Add(models.DefaultTickets()[0])
	assert.True(t, registry.Get("sid-2").Cart().Empty())

	registry.Drop("sid-1")
	assert.True(t, registry.Get("sid-1").Cart().Empty())
}

func TestShopSessionCheckoutLifecycle(t *testing.T) {
	session := NewSessionRegistry().Get("sid-1")
	session.Cart().Add(models.DefaultTickets()[0])

	assert.Nil(t, session.Checkout())

	opts := CheckoutOptions{ProcessingDelay: 10 * time.Millisecond, ResendCooldown: 10 * time.Millisecond}
	checkout := session.OpenCheckout(NoopNotifier{}, zerolog.Nop(), opts)
	require.NotNil(t, checkout)

	// Opening again returns the in-flight session instead of restarting.
	assert.Same(t, checkout, session.OpenCheckout(NoopNotifier{}, zerolog.Nop(), opts))
	assert.Same(t, checkout, session.Checkout())

	session.CloseCheckout()
	assert.Nil(t, session.Checkout())
}
