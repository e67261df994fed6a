package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/zen-api/internal/api"
	apiMiddleware "github.com/phrazzld/zen-api/internal/api/middleware"
)

// setupRouter registers every route and the shared middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	readingHandler := api.NewReadingHandler(app.readingService, app.logger)
	catalogHandler := api.NewCatalogHandler(app.deck, app.policy)
	memberHandler := api.NewMemberHandler(app.userService, app.readingService, app.logger)
	adminHandler := api.NewAdminHandler(app.userService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userService, app.config.Auth.AdminEmail)

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Get("/plans", catalogHandler.Plans)
		r.Get("/cards", catalogHandler.Cards)

		r.With(authMiddleware.OptionalAuthenticate).Post("/readings", readingHandler.Draw)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/me", memberHandler.Me)
			r.Get("/readings", readingHandler.History)
			r.Post("/checkout/{plan}", memberHandler.Checkout)

			r.Route("/admin", func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin)
				r.Get("/users", adminHandler.ListUsers)
				r.Put("/users/{id}/plan", adminHandler.UpdatePlan)
				r.Delete("/users/{id}", adminHandler.DeleteUser)
			})
		})
	})

	return r
}
