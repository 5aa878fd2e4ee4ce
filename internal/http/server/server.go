package server

import (
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notesapi/docs"
	handlers "notesapi/internal/http/handler"
	"notesapi/internal/http/middleware"
	"notesapi/internal/service"
)

// MetricsPath is where the Prometheus exposition is served.
const MetricsPath = "/metrics"

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	DB      *sql.DB
	Logger  *slog.Logger
	Notes   service.NoteService
	Uploads service.UploadService
	// Registry receives the HTTP metrics. A fresh registry is created when nil.
	Registry *prometheus.Registry
	// BodyLimit caps request bodies in bytes; zero keeps Fiber's default.
	BodyLimit int
	// PublicHost is advertised in the Swagger document when the request
	// carries no usable host.
	PublicHost string
}

// New builds the Fiber application with the full middleware chain and every route.
func New(d Deps) (*fiber.App, error) {
	if d.DB == nil {
		return nil, errors.New("server: database handle is required")
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Notes == nil || d.Uploads == nil {
		return nil, errors.New("server: services are required")
	}

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      "notesapi",
		ErrorHandler: handlers.ErrorHandler(d.Logger),
		BodyLimit:    d.BodyLimit,
	})

	// ProcessTime wraps everything else so error responses carry the header too.
	app.Use(middleware.ProcessTime())
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(prom.Handler())
	app.Use(middleware.Logger(d.Logger))

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = resolveHost(c.Get("X-Forwarded-Host"), c.Hostname(), d.PublicHost)
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, d.DB, d.Logger, d.Notes, d.Uploads)

	return app, nil
}

// resolveHost prefers the proxy-supplied host, then the request host, then fallback.
func resolveHost(forwarded, host, fallback string) string {
	if forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if host != "" {
		return host
	}
	return fallback
}
