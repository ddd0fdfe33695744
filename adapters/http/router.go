// Package http provides the HTTP interface of thermogate: key issuance and
// revocation, the guarded conversion API, subscriptions, and the operational
// endpoints.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"

	"github.com/artpar/thermogate/adapters/metrics"
	"github.com/artpar/thermogate/app"
	_ "github.com/artpar/thermogate/docs/swagger" // swagger docs
	"github.com/artpar/thermogate/ports"
)

// RouterConfig holds the router's dependencies.
type RouterConfig struct {
	Keys        *app.KeyService
	Conversions *app.ConversionService
	Subscribers *app.SubscriberService
	Usage       ports.UsageCounters
	Health      HealthChecker // optional readiness dependency

	Metrics        *metrics.Collector
	MetricsHandler http.Handler // default: promhttp.Handler()
	MetricsPath    string       // default: /metrics
	EnableOpenAPI  bool
	Version        string
	Timeout        time.Duration // default: 60s
}

// NewRouter creates the main HTTP router. The /api subtree and key
// revocation are guarded by RequireAPIKey.
func NewRouter(cfg RouterConfig, logger zerolog.Logger) chi.Router {
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(logger, cfg.MetricsPath))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Timeout))
	if cfg.Metrics != nil {
		r.Use(NewMetricsMiddleware(cfg.Metrics, cfg.MetricsPath))
	}

	health := NewHealthHandler(cfg.Health, logger)
	keys := NewKeyHandler(cfg.Keys, logger)
	conversions := NewConversionHandler(cfg.Conversions)
	subscribers := NewSubscriberHandler(cfg.Subscribers, logger)
	usage := NewUsageHandler(cfg.Usage)
	guard := RequireAPIKey(cfg.Keys, logger)

	// Public endpoints
	r.Get("/", subscribers.Index)
	r.Get("/healthz", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Get("/version", VersionHandler(cfg.Version))
	r.Post("/subscribe", subscribers.Subscribe)
	r.Get("/api-key", keys.Issue)

	// Key revocation
	r.With(guard).Delete("/api-key", keys.RevokeSelf)
	r.With(guard).Delete("/api-key/{token}", keys.RevokeOther)

	// Guarded API
	r.Route("/api", func(api chi.Router) {
		api.Use(guard)
		api.Get("/to-celsius/{value}", conversions.ToCelsius)
		api.Get("/to-fahrenheit/{value}", conversions.ToFahrenheit)
		api.Get("/usage", usage.Get)
		api.Get("/subscribers", subscribers.List)
	})

	if cfg.Metrics != nil {
		handler := cfg.MetricsHandler
		if handler == nil {
			handler = promhttp.Handler()
		}
		r.Handle(cfg.MetricsPath, handler)
	}

	if cfg.EnableOpenAPI {
		r.Get("/.well-known/openapi.json", serveOpenAPI)
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/.well-known/openapi.json"),
		))
	}

	return r
}

func serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "openapi document unavailable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write([]byte(doc))
}
