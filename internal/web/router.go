package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, h *ReduceHandler) {
	r.Use(middleware.Recoverer)
	r.Get("/healthz", h.Healthz)
	r.Group(func(r chi.Router) {
		r.Use(LoggerMiddleware(h.logger))
		r.Post("/reduce", h.Reduce)
	})
}
