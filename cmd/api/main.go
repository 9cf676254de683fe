package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/pluscodes/internal/adapters/http"
	natsadapter "github.com/samirrijal/pluscodes/internal/adapters/nats"
	"github.com/samirrijal/pluscodes/internal/adapters/valkey"
	"github.com/samirrijal/pluscodes/internal/core/ports"
	"github.com/samirrijal/pluscodes/internal/core/usecases"
	"github.com/samirrijal/pluscodes/internal/pkg/config"
	"github.com/samirrijal/pluscodes/internal/pkg/logging"
	"github.com/samirrijal/pluscodes/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load("pluscodes-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	deps := &http.Dependencies{
		RateLimit: cfg.Server.RateLimit,
		Version:   version,
	}

	// Cache (optional). Assign the interfaces only on success so a failed
	// connection leaves them nil rather than holding a nil *Cache.
	var cache ports.CacheService
	if cfg.Valkey.Enabled {
		vc, err := valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable, caching disabled", "error", err)
		} else {
			defer vc.Close()
			cache = vc
			deps.Cache = vc
		}
	}

	// NATS (optional, readiness only)
	nc, err := natsadapter.Connect(cfg.NATS.URL, cfg.Telemetry.ServiceName)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer nc.Drain()
		deps.NATS = nc
	}

	deps.Codes = usecases.NewCodeService(cache, cfg.Codec.DefaultLength, cfg.Codec.CacheTTL, cfg.Codec.MaxBatch)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Plus Codes API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, If-None-Match",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "version", version)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
