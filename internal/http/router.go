package http

import (
	"net/http"

	"usage-metrics/internal/events"
	"usage-metrics/internal/ingestors"
	"usage-metrics/internal/queries"
	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/metrics"
	"usage-metrics/internal/streams"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps are the services the routes delegate to.
type RouterDeps struct {
	IngestionService  ingestors.IngestionService
	QueryService      queries.QueryService
	Parser            events.MessageParser
	Producer          streams.MetricUpdateProducer
	DeadLetterService streams.DeadLetterService
	MaxBodyBytes      int64
}

// NewRouter creates and configures the HTTP router.
func NewRouter(deps RouterDeps, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	metricUpdateHandler := NewMetricUpdateHandler(deps.Parser, deps.Producer, deps.MaxBodyBytes)
	batchIngestHandler := NewBatchIngestHandler(deps.IngestionService, deps.MaxBodyBytes)
	metricCountHandler := NewMetricCountHandler(deps.QueryService)
	deadLetterListHandler := NewDeadLetterListHandler(deps.DeadLetterService)
	deadLetterReplayHandler := NewDeadLetterReplayHandler(deps.DeadLetterService)

	// Routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType(mediaTypeJSON))
		r.Post("/metric-updates", errorHandlingAdapter(metricUpdateHandler))
		r.Post("/metric-updates/batch", errorHandlingAdapter(batchIngestHandler))
	})
	router.Get("/metric-count", errorHandlingAdapter(metricCountHandler))
	router.Get("/dead-letters", errorHandlingAdapter(deadLetterListHandler))
	router.Post("/dead-letters/replay", errorHandlingAdapter(deadLetterReplayHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
