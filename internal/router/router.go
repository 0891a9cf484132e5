package router

import (
	"net/http"

	"github.com/dillkhus/order-api/internal/config"
	"github.com/dillkhus/order-api/internal/handler"
	"github.com/dillkhus/order-api/internal/menu"
	"github.com/dillkhus/order-api/internal/order"
	"github.com/dillkhus/order-api/internal/session"
	"github.com/dillkhus/order-api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, sessions *session.Store, catalog *menu.Catalog, submitter order.Submitter, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration: the storefront page is the only expected caller
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// WebSocket summary feed per session
	r.Get("/ws/carts/{sid}", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	// Carts
	cartHandler := handler.NewCartHandler(sessions, catalog, hub)
	checkoutHandler := handler.NewCheckoutHandler(sessions, submitter, hub, cfg.ResetDelay)
	r.Route("/carts", func(r chi.Router) {
		cartHandler.RegisterRoutes(r)
		checkoutHandler.RegisterRoutes(r)
	})

	return r
}
