package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/basedfin/quotecast/internal/adapters/http/middleware"
	"github.com/basedfin/quotecast/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouteRegistrar attaches a handler's routes to a router group. Handlers
// implement this so the router does not need to know their concrete types.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// EngineRegistrar attaches routes directly on the engine, outside the
// /api/v1 group. Used by the health handler for the /-/ endpoints.
type EngineRegistrar interface {
	RegisterHealthRoutesOnEngine(engine *gin.Engine)
}

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName is used for OpenTelemetry middleware instrumentation.
	ServiceName string

	// Health registers the /-/ operational endpoints.
	Health EngineRegistrar

	// API registers business routes under /api/v1.
	API []RouteRegistrar

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. OpenTelemetry - tracing and metrics
//  4. Logging - request logging (skips health endpoints)
//  5. Timeout - request deadline on /api/v1
//
// Route groups:
//   - /-/ (internal): health endpoints, no auth, no timeout for probes
//   - /api/v1/ (public API): quote display, cast, and admin panel
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(cfg.ServiceName),
		middleware.Logging(cfg.Logger),
	)

	if cfg.Health != nil {
		cfg.Health.RegisterHealthRoutesOnEngine(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.SimpleTimeout(timeout))

	for _, registrar := range cfg.API {
		registrar.RegisterRoutes(apiV1)
	}
}
