package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes behind the authentication gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/user", h.getUser)
		r.Put("/api/user/email", h.updateEmail)

		r.Post("/api/rules", h.createRule)
		r.Get("/api/rules", h.listRules)
		r.Get("/api/rules/{ruleID}", h.getRule)
		r.Patch("/api/rules/{ruleID}", h.updateRule)
		r.Delete("/api/rules/{ruleID}", h.deleteRule)

		r.Post("/api/evaluate", h.evaluate)
		r.Get("/api/events", h.listEvents)

		r.Get("/api/settings", h.getSettings)
		r.Put("/api/settings", h.updateSettings)
	})

	return router
}
