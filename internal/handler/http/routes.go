// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// routes without a session
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/{store}", h.getAll)
		r.Get("/api/{store}/{id}", h.getByID)
		r.Put("/api/{store}/batch", h.upsertBatch)
		r.Post("/api/{store}/batch-delete", h.deleteBatch)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
