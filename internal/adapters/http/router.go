package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/samirrijal/pluscodes/internal/pkg/metrics"
)

// requestTimeout bounds every codec request, cache round-trips included.
const requestTimeout = 5 * time.Second

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID, then a request-scoped logger carrying it
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	rateLimit := deps.RateLimit
	if rateLimit <= 0 {
		rateLimit = 600
	}
	app.Use(limiter.New(limiter.Config{
		Max:        rateLimit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")
	v1.Get("/encode", timeout.NewWithContext(EncodeHandler(deps), requestTimeout))
	v1.Post("/encode/batch", timeout.NewWithContext(BatchEncodeHandler(deps), requestTimeout))
	v1.Get("/decode", timeout.NewWithContext(DecodeHandler(deps), requestTimeout))
	v1.Get("/shorten", timeout.NewWithContext(ShortenHandler(deps), requestTimeout))
	v1.Get("/recover", timeout.NewWithContext(RecoverHandler(deps), requestTimeout))
	v1.Get("/validate", timeout.NewWithContext(ValidateHandler(deps), requestTimeout))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps)))
}
