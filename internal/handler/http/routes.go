package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/entities", func(r chi.Router) {
		r.Post("/", h.createEntity)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getEntity)
			r.Put("/body", h.updateBody)
			r.Get("/builder", h.getBuilderStatus)
			r.Put("/builder", h.saveBuilderOption)
			r.Post("/events/option-updated", h.optionUpdated)
			r.Post("/render", h.render)
			r.Post("/import", h.importOptions)
		})
	})

	router.Route("/api/types/{type}/builder", func(r chi.Router) {
		r.Get("/", h.getOptionsDescriptor)
		r.Put("/", h.declareSupport)
	})

	router.Post("/api/shortcodes/decode", h.decodeShortcodeAtts)
	router.Post("/api/resync", h.resync)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
