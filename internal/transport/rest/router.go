package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/geocasagroup/portal/internal/auth"
	"github.com/geocasagroup/portal/internal/catalog"
	"github.com/geocasagroup/portal/internal/document"
	"github.com/geocasagroup/portal/internal/navigation"
	"github.com/geocasagroup/portal/internal/personnel"
	"github.com/geocasagroup/portal/internal/session"
	"github.com/geocasagroup/portal/internal/transport/middleware"
	"github.com/geocasagroup/portal/internal/transport/swagger"
	"github.com/geocasagroup/portal/internal/user"
)

// Handlers bundles everything RegisterAllRoutes mounts. Nil entries are
// skipped, which keeps partial wiring possible in tests.
type Handlers struct {
	Auth       *auth.Handler
	Session    *session.Handler
	Navigation *navigation.Handler
	Catalog    *catalog.Handler
	User       *user.Handler
	Personnel  *personnel.Handler
	Document   *document.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, rdb *redis.Client, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, rdb)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.Locale)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		// The reference catalog is static and public.
		if h.Catalog != nil {
			r.Get("/catalog/departments", h.Catalog.ListDepartments)
			r.Get("/catalog/departments/{id}", h.Catalog.GetDepartment)
			r.Get("/catalog/divisions", h.Catalog.ListDivisions)
			r.Get("/catalog/divisions/{id}", h.Catalog.GetDivision)
		}

		if h.Auth == nil {
			return
		}

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
			}

			if h.Session != nil {
				pr.Get("/session", h.Session.Current)
				pr.Delete("/session/selection", h.Session.ResetSelection)
			}

			if h.Navigation != nil {
				pr.Route("/navigation", func(nr chi.Router) {
					nr.Get("/view", h.Navigation.CurrentView)
					nr.Post("/department", h.Navigation.SelectDepartment)
					nr.Post("/division", h.Navigation.SelectDivision)
					nr.Post("/office", h.Navigation.SelectOffice)
					nr.Post("/land-office", h.Navigation.OpenLandOffice)
					nr.Post("/back", h.Navigation.Back)
					nr.Post("/selector", h.Navigation.BackToSelector)
				})
			}

			if h.Personnel != nil {
				pr.Route("/personnel", func(sr chi.Router) {
					sr.Post("/", h.Personnel.Register)
					sr.Get("/", h.Personnel.List)
					sr.Get("/{id}", h.Personnel.Get)
				})
			}

			if h.Document != nil {
				pr.Get("/offices/{officeID}/documents", h.Document.ListByOffice)
				pr.Route("/documents", func(dr chi.Router) {
					dr.Post("/", h.Document.Create)
					dr.Get("/{id}", h.Document.Get)
					dr.Patch("/{id}/validate", h.Document.Validate)
					dr.Patch("/{id}/assign", h.Document.Assign)
				})
			}
		})
	})
}
