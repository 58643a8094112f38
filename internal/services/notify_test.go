package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTelegramNotifierSendsMessage(t *testing.T) {
	type sendMessage struct {
		ChatID string `json:"chat_id"`
		Text   string `json:"text"`
	}

	var (
		mu       sync.Mutex
		path     string
		received sendMessage
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewTelegramNotifier("bot-token", "chat-42", zerolog.Nop())
	notifier.baseURL = server.URL

	notifier.Notify(context.Background(), "New order received.")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return received.Text != ""
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/botbot-token/sendMessage", path)
	assert.Equal(t, "chat-42", received.ChatID)
	assert.Equal(t, "New order received.", received.Text)
}

func TestTelegramNotifierSkipsWithoutCredentials(t *testing.T) {
	hits := make(chan struct{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
	}))
	defer server.Close()

	notifier := NewTelegramNotifier("", "", zerolog.Nop())
	notifier.baseURL = server.URL

	notifier.Notify(context.Background(), "ignored")

	select {
	case <-hits:
		t.Fatal("notifier called the API without credentials")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTelegramNotifierSwallowsDeliveryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	server.Close()

	notifier := NewTelegramNotifier("bot-token", "chat-42", zerolog.Nop())
	notifier.baseURL = server.URL

	// Must not panic or block even though the endpoint is gone.
	notifier.Notify(context.Background(), "lost message")
	time.Sleep(20 * time.Millisecond)
}

func TestTelegramNotifierOutlivesCallerContext(t *testing.T) {
	delivered := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(delivered)
	}))
	defer server.Close()

	notifier := NewTelegramNotifier("bot-token", "chat-42", zerolog.Nop())
	notifier.baseURL = server.URL

	ctx, cancel := context.WithCancel(context.Background())
	notifier.Notify(ctx, "request-scoped")
	cancel()

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery was tied to the caller's context")
	}
}

func TestNotifierFuncAdapter(t *testing.T) {
	var got string
	NotifierFunc(func(_ context.Context, text string) { got = text }).Notify(context.Background(), "hello")
	assert.Equal(t, "hello", got)
}
