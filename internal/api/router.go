// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the full HTTP surface.
func NewRouter(cfg Config, h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		MaxAge:         86400,
	}))

	r.Get("/healthz", h.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Observe)

		// The feedback web page is the only write-heavy client; keep its
		// endpoints rate limited per IP.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
			r.Post("/feedback", h.Feedback)
			r.Post("/feedback/batch", h.FeedbackBatch)
		})

		r.Get("/feed", h.Feed)
		r.Get("/preferences", h.Preferences)
		r.Get("/digest/preview", h.DigestPreview)

		r.Route("/items/{itemID}", func(r chi.Router) {
			r.Get("/", h.GetItem)
			r.Get("/score", h.GetItemScore)
			r.Put("/analysis", h.PutItemAnalysis)
		})
	})

	return r
}
