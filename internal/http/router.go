package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"bartab/internal/auth"
	authHandler "bartab/internal/http/auth"
	catalogHandler "bartab/internal/http/catalog"
	ledgerHandler "bartab/internal/http/ledger"
	personHandler "bartab/internal/http/person"
	sessionHandler "bartab/internal/http/session"
)

func New(
	adminGate *auth.Service,
	authV1 *authHandler.Handler,
	sessionV1 *sessionHandler.Handler,
	ledgerV1 *ledgerHandler.Handler,
	personV1 *personHandler.Handler,
	catalogV1 *catalogHandler.Handler,
	corsOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health)

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Route("/session", func(r chi.Router) {
			sessionV1.Routes(r)
			r.Group(func(r chi.Router) {
				r.Use(adminGate.AdminOnly)
				sessionV1.AdminRoutes(r)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			ledgerV1.Routes(r)
			r.Group(func(r chi.Router) {
				r.Use(adminGate.AdminOnly)
				ledgerV1.AdminRoutes(r)
			})
		})

		r.Route("/persons", personV1.Routes)

		r.Route("/categories", func(r chi.Router) {
			catalogV1.CategoryRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(adminGate.AdminOnly)
				catalogV1.CategoryAdminRoutes(r)
			})
		})

		r.Route("/items", func(r chi.Router) {
			catalogV1.ItemRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(adminGate.AdminOnly)
				catalogV1.ItemAdminRoutes(r)
			})
		})

		r.Route("/coffee-presets", func(r chi.Router) {
			catalogV1.PresetRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(adminGate.AdminOnly)
				catalogV1.PresetAdminRoutes(r)
			})
		})
	})

	return router
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
