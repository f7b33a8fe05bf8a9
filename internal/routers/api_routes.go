package routers

import (
	"github.com/go-chi/chi/v5"

	"solverpro/internal/handlers"
	"solverpro/internal/middleware"
	"solverpro/internal/models"
)

// APIHandlers groups the handlers mounted under /api/v1.
type APIHandlers struct {
	Auth     *handlers.AuthHandler
	Packages *handlers.PackageHandler
	Analysis *handlers.AnalysisHandler
	Problems *handlers.ProblemHandler
	Admin    *handlers.AdminHandler
}

func APIRoutes(router *chi.Mux, h APIHandlers, auth middleware.Authenticator) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", h.Auth.LoginHandler)
			r.Post("/logout", h.Auth.LogoutHandler)
			r.Get("/session", h.Auth.SessionHandler)
			r.With(middleware.ValidateRequest[*models.NavigateRequest]()).Post("/navigate", h.Auth.NavigateHandler)
		})

		r.Get("/packages", h.Packages.ListHandler)
		r.With(middleware.ValidateRequest[*models.AnalyzeRequest]()).Post("/analyses", h.Analysis.AnalyzeHandler)
		r.With(middleware.ValidateRequest[*models.SubmitProblemRequest]()).Post("/problems", h.Problems.SubmitHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(auth))
			r.Get("/problems", h.Admin.ListHandler)
			r.Get("/stats", h.Admin.StatsHandler)
			r.With(middleware.ValidateRequest[*models.UpdateStatusRequest]()).Put("/problems/{id}/status", h.Admin.UpdateStatusHandler)
			r.Post("/problems/{id}/paid", h.Admin.TogglePaidHandler)
			r.Delete("/problems/{id}", h.Admin.DeleteHandler)
			r.Get("/problems/{id}/contact", h.Admin.ContactHandler)
		})
	})
}
