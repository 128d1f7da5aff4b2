package server

import (
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pdfquery/internal/handlers"
	"pdfquery/internal/query"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(docs handlers.DocumentStore, matcher *query.Matcher) {
	// Initialize handlers
	serviceHandler := handlers.NewServiceHandler(docs)
	probeHandler := handlers.NewProbeHandler(docs)
	queryHandler := handlers.NewQueryHandler(docs, matcher, s.Cfg.MaxQueryLength)

	s.App.Get("/", serviceHandler.Home)
	s.App.Get("/health", serviceHandler.Health)
	s.App.Get("/query", queryHandler.Query)

	// Kubernetes probes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	if s.Cfg.MetricsEnabled {
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	} else {
		log.Println("Metrics endpoint disabled")
	}
}
