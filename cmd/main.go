package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecosync/backend/internal/api/handler"
	"ecosync/backend/internal/config"
	"ecosync/backend/internal/events"
	"ecosync/backend/internal/logger"
	"ecosync/backend/internal/storage/backend"
	"ecosync/backend/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "ecosync-api"

// setupEvents starts the local feed hub and, when Redis is configured, the
// broker that shares complaint changes between instances. The returned
// publisher is what services announce changes on.
func setupEvents(ctx context.Context, cfg config.Config) (*events.Hub, events.Publisher, func()) {
	log := logger.Default()
	hub := events.NewHub()
	go hub.Run(ctx)

	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, complaint feed is local to this instance")
		return hub, hub, func() {}
	}

	broker, err := events.NewRedisBroker(ctx, cfg.RedisURL, config.ChangeFeedChannel)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, complaint feed is local to this instance")
		return hub, hub, func() {}
	}
	go func() {
		if err := broker.Listen(ctx, hub); err != nil {
			log.WithError(err).Error("complaint feed listener stopped")
		}
	}()
	log.WithField("channel", broker.Channel).Info("complaint feed shared through redis")
	return hub, broker, func() { broker.Close() }
}

func main() {
	cfg, err := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.Default()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)
	log.Info("Starting EcoSync API...")

	shutdownTracing := telemetry.Setup(serviceName, cfg.OTelEndpoint, cfg.OTelInsecure)

	// 1. Store handle shared by every handler
	store, closeStore, err := backend.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}

	// 2. Complaint change feed
	ctx, cancel := context.WithCancel(context.Background())
	hub, publisher, closeEvents := setupEvents(ctx, cfg)

	// 3. Routes
	h := handler.NewHandler(store, publisher, hub)
	router := handler.NewRouter(h, cfg.CORSOrigins)

	server := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        otelhttp.NewHandler(router, serviceName),
		ReadTimeout:    10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	cancel()
	<-hub.Done()
	closeEvents()
	if err := closeStore(); err != nil {
		log.WithError(err).Error("close store")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.WithError(err).Error("tracing shutdown")
	}
}
