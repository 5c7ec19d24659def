package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.auth)

	router.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Route("/collections/{collection}", func(r chi.Router) {
			// streams outlive the request timeout and are never compressed
			r.Get("/listen", h.listen)

			r.Group(func(r chi.Router) {
				r.Use(withGZip)
				if h.requestTimeout > 0 {
					r.Use(middleware.Timeout(h.requestTimeout))
				}

				r.Get("/documents", h.list)
				r.Post("/documents", h.create)
				r.Patch("/documents/{id}", h.update)
				r.Delete("/documents/{id}", h.delete)
			})
		})
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(methodNotAllowed)

	return router
}
