package server

import (
	"context"
	"fmt"
	"sort"

	"order-portal/internal/core/config"
	"order-portal/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "order-portal/docs/swagger"
)

// Pinger is a dependency probed by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
	// checks are the named dependencies reported by /healthz.
	checks map[string]Pinger
}

// New creates a new Server instance with configured middleware.
// When gatherer is non-nil its metrics are exposed on /metrics.
func New(cfg *config.AppConfig, gatherer prometheus.Gatherer) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "order-portal",
		ErrorHandler:          ErrorHandler,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.IsProduction(),
	}))

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	s := &Server{
		App:    app,
		cfg:    cfg,
		checks: map[string]Pinger{},
	}

	app.Get("/healthz", s.health)
	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	return s
}

// AddHealthCheck registers a dependency reported by /healthz.
func (s *Server) AddHealthCheck(name string, p Pinger) {
	s.checks[name] = p
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// health handles GET /healthz.
// @Summary Health check
// @Description Pings the database and Redis.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) health(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "ok", Checks: map[string]string{}}

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.checks[name].Ping(c.UserContext()); err != nil {
			logger.Get().Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			resp.Status = "degraded"
			resp.Checks[name] = "down"
			continue
		}
		resp.Checks[name] = "up"
	}

	if resp.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}
