package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealthCheck)
		r.Post("/extract", s.handleExtract)
		r.Get("/extract/status", s.handleExtractStatus)
		r.Get("/news", s.handleRecentNews)
		r.Get("/news/range", s.handleNewsByDateRange)
		r.Get("/news/{source}", s.handleNewsBySource)
	})

	return r
}
