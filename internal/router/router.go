package router

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	analyticsHandler *handler.AnalyticsHandler,
	tokens auth.TokenManager,
	users middleware.UserResolver,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	authenticate := middleware.Authenticate(tokens, users, logger)
	requireAdmin := middleware.RequireAdmin(logger)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(authenticate).Get("/profile", authHandler.Profile)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.GetAll)
			r.Get("/{id}", productHandler.GetByID)
			r.Get("/{id}/ratings", productHandler.GetRatings)

			r.With(authenticate).Post("/{id}/rating", productHandler.Rate)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, requireAdmin)
				r.Post("/", productHandler.Create)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", orderHandler.Create)
			r.Get("/myorders", orderHandler.ListMine)
			r.Get("/{id}", orderHandler.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", orderHandler.ListAll)
				r.Put("/{id}/status", orderHandler.UpdateStatus)
			})
		})

		r.With(authenticate, requireAdmin).Get("/analytics", analyticsHandler.Report)
	})

	return r
}
