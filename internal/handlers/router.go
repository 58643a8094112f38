package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"gp1-tickets/internal/middleware"
	"gp1-tickets/internal/services"
)

// RouterConfig bundles the wired services the HTTP surface needs.
type RouterConfig struct {
	Store    *services.InventoryStore
	Admin    *services.AdminService
	Auth     *services.AuthService
	Notifier services.Notifier
	CORS     middleware.CORSConfig
	Logger   zerolog.Logger
}

// NewRouter assembles the API. Catalog reads and the storefront flows are
// public; event mutations and the login endpoint sit behind the admin
// guard and a per-IP rate limit respectively.
func NewRouter(cfg RouterConfig, cart *CartHandler, checkout *CheckoutHandler) http.Handler {
	events := NewEventHandler(cfg.Store, cfg.Admin, cfg.Logger)
	auth := NewAuthHandler(cfg.Auth, cfg.Logger)
	notify := NewNotifyHandler(cfg.Notifier, cfg.Logger)
	health := NewHealthHandler(cfg.Store)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/healthz", health.Check)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", events.List)
		r.Get("/events/{id}", events.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.Auth))
			r.Post("/events", events.Create)
			r.Put("/events/{id}", events.Update)
			r.Delete("/events/{id}", events.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(10, time.Minute))
			r.Post("/admin/login", auth.Login)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.View)
			r.Post("/items", cart.AddItem)
			r.Delete("/items", cart.RemoveItem)
			r.Delete("/", cart.Clear)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkout.Start)
			r.Get("/", checkout.Status)
			r.Post("/payment", checkout.SubmitPayment)
			r.Post("/code", checkout.SubmitCode)
			r.Post("/resend", checkout.Resend)
			r.Post("/cancel", checkout.Cancel)
			r.Post("/acknowledge", checkout.Acknowledge)
		})

		r.Post("/notify", notify.Relay)
	})

	return r
}
