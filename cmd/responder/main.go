package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	natsadapter "github.com/samirrijal/pluscodes/internal/adapters/nats"
	"github.com/samirrijal/pluscodes/internal/adapters/valkey"
	"github.com/samirrijal/pluscodes/internal/core/ports"
	"github.com/samirrijal/pluscodes/internal/core/usecases"
	"github.com/samirrijal/pluscodes/internal/pkg/config"
	"github.com/samirrijal/pluscodes/internal/pkg/logging"
	"github.com/samirrijal/pluscodes/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("pluscodes-responder")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	var cache ports.CacheService
	if cfg.Valkey.Enabled {
		vc, err := valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable, caching disabled", "error", err)
		} else {
			defer vc.Close()
			cache = vc
		}
	}

	nc, err := natsadapter.Connect(cfg.NATS.URL, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}

	codes := usecases.NewCodeService(cache, cfg.Codec.DefaultLength, cfg.Codec.CacheTTL, cfg.Codec.MaxBatch)
	responder := natsadapter.NewResponder(nc, codes, cfg.NATS.QueueGroup)
	if err := responder.Start(ctx); err != nil {
		log.Fatalf("responder: %v", err)
	}
	defer responder.Close()

	slog.Info("responder running", "nats", cfg.NATS.URL, "queue", cfg.NATS.QueueGroup)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining subscriptions...", "signal", sig.String())
}
