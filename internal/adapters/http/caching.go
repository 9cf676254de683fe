package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Codec answers depend only on the query string, so successful ones are
// cacheable for a long time. Handlers may set their own header first.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		status := c.Response().StatusCode()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "no-store"

		case path == "/metrics":
			ttl = "no-cache"

		case strings.HasPrefix(path, "/docs"):
			ttl = "public, max-age=3600"

		case strings.HasPrefix(path, "/v1/") && status >= 400:
			ttl = "public, max-age=60" // errors may come from a transient limit

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=86400, immutable"
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
