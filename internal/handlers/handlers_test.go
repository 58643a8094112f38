package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"gp1-tickets/internal/middleware"
	"gp1-tickets/internal/repositories"
	"gp1-tickets/internal/services"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	texts []string
}

func (n *recordingNotifier) Notify(_ context.Context, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.texts = append(n.texts, text)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.texts...)
}

// testServer is a fully wired API over a fresh local store.
type testServer struct {
	*httptest.Server
	client   *http.Client
	notifier *recordingNotifier
	store    *services.InventoryStore
	auth     *services.AuthService
}

// adminPassword protects the mutating routes in tests that enable auth.
const adminPassword = "paddock-pass"

func newTestServer(t *testing.T, withAuth bool) *testServer {
	t.Helper()

	repo, err := repositories.NewLocalEventRepository(filepath.Join(t.TempDir(), "catalog.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	notifier := &recordingNotifier{}
	store := services.NewInventoryStore(repo, zerolog.Nop())
	require.NoError(t, store.Reload(context.Background()))
	admin := services.NewAdminService(repo, store, notifier, zerolog.Nop())

	hash := ""
	if withAuth {
		hash, err = services.HashPassword(adminPassword)
		require.NoError(t, err)
	}
	auth := services.NewAuthService(hash, "test-secret", time.Hour, notifier, zerolog.Nop())

	registry := services.NewSessionRegistry()
	cookies := sessions.NewCookieStore([]byte("test-cookie-key"))
	cart := NewCartHandler(registry, cookies, store, zerolog.Nop())
	checkout := NewCheckoutHandler(cart, notifier, services.CheckoutOptions{
		ProcessingDelay: 10 * time.Millisecond,
		ResendCooldown:  10 * time.Millisecond,
	}, zerolog.Nop())

	router := NewRouter(RouterConfig{
		Store:    store,
		Admin:    admin,
		Auth:     auth,
		Notifier: notifier,
		CORS:     middleware.DefaultCORSConfig(),
		Logger:   zerolog.Nop(),
	}, cart, checkout)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testServer{
		Server:   server,
		client:   &http.Client{Jar: jar},
		notifier: notifier,
		store:    store,
		auth:     auth,
	}
}

// do issues a JSON request, reusing the session cookie jar.
func (s *testServer) do(t *testing.T, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeBody[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	resp, raw := s.do(t, http.MethodPost, "/api/admin/login", loginRequest{Password: adminPassword}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[loginResponse](t, raw).Token
}
