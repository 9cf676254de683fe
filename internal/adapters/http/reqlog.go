package http

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/pluscodes/internal/pkg/logging"
)

// RequestIDLogMiddleware builds a request-scoped logger carrying the Fiber
// request ID and stores it in the user context, where the code service and
// handlers pick it up through logging.FromContext.
func RequestIDLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ridStr, ok := c.Locals("requestid").(string)
		if !ok || ridStr == "" {
			return c.Next()
		}

		reqLogger := slog.Default().With("request_id", ridStr)
		c.SetUserContext(logging.WithLogger(c.UserContext(), reqLogger))

		return c.Next()
	}
}

// LoggerFromCtx extracts the per-request slog.Logger from a context.
// Falls back to the default logger if none is set.
func LoggerFromCtx(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
