package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/pluscodes/internal/core/ports"
	"github.com/samirrijal/pluscodes/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Codes     *usecases.CodeService
	NATS      *nats.Conn
	Cache     ports.HealthChecker
	RateLimit int // requests per minute per IP; 0 uses the default
	Version   string
}
