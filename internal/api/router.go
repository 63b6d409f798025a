package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/flickmark/flickmark-be/internal/api/handlers"
	"github.com/flickmark/flickmark-be/internal/auth"
	"github.com/flickmark/flickmark-be/internal/config"
	"github.com/flickmark/flickmark-be/internal/metrics"
	"github.com/flickmark/flickmark-be/internal/middleware"
	"github.com/flickmark/flickmark-be/internal/services"
	"github.com/flickmark/flickmark-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	authMgr *auth.Auth,
	userService services.UserServiceProvider,
	bookmarkService services.BookmarkServiceProvider,
	catalogService services.CatalogServiceProvider,
	hub *websocket.Hub,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Instrument)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, authMgr, cfg.IsProduction())
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerSecond, cfg.AuthBurst)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Catalog event feed
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Handler)
			r.Post("/signup", authHandler.Signup)
			r.Post("/signin", authHandler.Signin)
			r.Post("/signout", authHandler.Signout)
			r.With(authMgr.Middleware()).Get("/me", authHandler.Me)
		})

		r.Get("/catalog", catalogHandler.List)

		r.Route("/user/bookmarks", func(r chi.Router) {
			r.Use(authMgr.Middleware())
			r.Get("/", bookmarkHandler.List)
			r.Post("/", bookmarkHandler.Add)
			r.Delete("/", bookmarkHandler.Remove)
		})
	})

	return r
}
