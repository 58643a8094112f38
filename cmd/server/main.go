package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"gp1-tickets/internal/config"
	"gp1-tickets/internal/handlers"
	"gp1-tickets/internal/middleware"
	"gp1-tickets/internal/repositories"
	"gp1-tickets/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg)

	// Select the catalog gateway: embedded SQLite or a remote event API.
	var repo repositories.EventRepository
	switch cfg.Store.Mode {
	case config.StoreModeRemote:
		repo = repositories.NewRemoteEventRepository(cfg.Store.APIBaseURL, cfg.Store.APIToken, logger)
		logger.Info().Str("base_url", cfg.Store.APIBaseURL).Msg("using remote event store")
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Store.DataPath), 0o755); err != nil {
			logger.Fatal().Err(err).Msg("failed to create data directory")
		}
		local, err := repositories.NewLocalEventRepository(cfg.Store.DataPath, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open local event store")
		}
		defer local.Close()
		repo = local
		logger.Info().Str("path", cfg.Store.DataPath).Msg("using local event store")
	}

	notifier := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)

	store := services.NewInventoryStore(repo, logger)
	if err := store.Reload(context.Background()); err != nil {
		// The server still starts; the catalog shows the connection error
		// until a reload succeeds.
		logger.Warn().Err(err).Msg("initial catalog load failed")
	}

	admin := services.NewAdminService(repo, store, notifier, logger)
	auth := services.NewAuthService(cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, cfg.Admin.TokenTTL, notifier, logger)
	if !auth.Enabled() {
		logger.Warn().Msg("ADMIN_PASSWORD_HASH not set, event mutations are unprotected")
	}

	cookieStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	registry := services.NewSessionRegistry()
	cart := handlers.NewCartHandler(registry, cookieStore, store, logger)
	checkout := handlers.NewCheckoutHandler(cart, notifier, services.CheckoutOptions{}, logger)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORS.AllowedOrigins

	router := handlers.NewRouter(handlers.RouterConfig{
		Store:    store,
		Admin:    admin,
		Auth:     auth,
		Notifier: notifier,
		CORS:     corsConfig,
		Logger:   logger,
	}, cart, checkout)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr()).Str("env", cfg.Server.Env).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
