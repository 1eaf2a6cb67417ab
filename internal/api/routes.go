package api

import "github.com/go-chi/chi/v5"

func RegisterRoutes(mux *chi.Mux, h *Handlers) {
	mux.Get("/healthz", h.Health)

	mux.Get("/app", h.AppInfo)
	mux.Post("/session", h.CreateSession)
	mux.Post("/session/{id}/prompt", h.Prompt)
	mux.Get("/session/{id}/messages", h.GetMessages)
	mux.Get("/sessions", h.ListSessions)
}
