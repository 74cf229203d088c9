package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/facematch/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/facematch/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/facematch/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/facematch/internal/service"
)

type Dependencies struct {
	CompareService *service.CompareService
	// BodyLimit in bytes, zero keeps the Fiber default
	BodyLimit int
	// SwaggerHost is the host advertised in the OpenAPI document
	SwaggerHost string
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	cfg := fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Face Match API",
	}
	if deps != nil && deps.BodyLimit > 0 {
		cfg.BodyLimit = deps.BodyLimit
	}

	return &Router{
		app:    fiber.New(cfg),
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	host := "localhost:8000"
	if r.deps != nil && r.deps.SwaggerHost != "" {
		host = r.deps.SwaggerHost
	}
	sw := docs.NewSwagger(host)
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Without a service there is nothing to be ready for
	var readiness handler.ReadinessChecker
	if r.deps != nil && r.deps.CompareService != nil {
		readiness = r.deps.CompareService
	}
	healthHandler := handler.NewHealthHandler(readiness)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	if r.deps == nil || r.deps.CompareService == nil {
		return
	}

	compareHandler := handler.NewCompareHandler(r.deps.CompareService, r.logger)
	// Routing is not strict, so /compare-faces matches as well
	r.app.Post("/compare-faces/", compareHandler.Compare)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight comparisons
// until ctx is done.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.app.ShutdownWithContext(ctx)
}
