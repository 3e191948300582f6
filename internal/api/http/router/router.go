package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/juansean527/persona-service/internal/api/http/handler"
	"github.com/juansean527/persona-service/internal/api/http/middleware"
	"github.com/juansean527/persona-service/internal/logger"
	"github.com/juansean527/persona-service/internal/metrics"
	"github.com/juansean527/persona-service/internal/model"
)

// Services groups the application services exposed over HTTP.
// Export may be nil when object storage is not configured.
type Services struct {
	Personas   handler.PersonaService
	Population handler.PopulationService
	Reports    handler.ReportService
	Export     handler.ExportService
}

// Router builds the public HTTP API.
type Router struct {
	services Services
	pinger   model.Pinger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *logger.Logger
}

func New(services Services, pinger model.Pinger, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *logger.Logger) *Router {
	return &Router{
		services: services,
		pinger:   pinger,
		metrics:  m,
		gatherer: gatherer,
		logger:   logger,
	}
}

// Register returns the handler serving all routes.
func (rt *Router) Register() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(rt.logger))
	if rt.metrics != nil {
		r.Use(middleware.Metrics(rt.metrics))
	}

	r.Get("/health", handler.Health(rt.pinger))
	if rt.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{}))
	}

	personas := handler.NewPersona(rt.services.Personas, rt.logger)
	population := handler.NewPopulation(rt.services.Population, rt.logger)
	reports := handler.NewReport(rt.services.Reports, rt.logger)
	exports := handler.NewExport(rt.services.Export, rt.logger)

	r.Route("/personas", func(r chi.Router) {
		population.Register(r)
		reports.Register(r)
		exports.Register(r)
		personas.Register(r)
	})

	return r
}
