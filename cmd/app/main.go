package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/mohtashimnawaz/satoshiflow/pkg/clock"
	"github.com/mohtashimnawaz/satoshiflow/pkg/config"
	"github.com/mohtashimnawaz/satoshiflow/pkg/events"
	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers"
	wshandler "github.com/mohtashimnawaz/satoshiflow/pkg/handlers/websockets"
	"github.com/mohtashimnawaz/satoshiflow/pkg/scheduler"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage/memory"
	dydbstore "github.com/mohtashimnawaz/satoshiflow/pkg/storage/dynamodb"
	"github.com/mohtashimnawaz/satoshiflow/pkg/streams"
	"github.com/mohtashimnawaz/satoshiflow/pkg/websockets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store storage.Storage
		sink  events.Sink
	)
	switch cfg.StorageBackend {
	case config.BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
		store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.Tables)
		if cfg.SQSQueueURL != "" {
			sink = events.NewSQSSink(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
		}
	default:
		store = memory.New()
	}
	if sink == nil {
		sink = events.NewNotificationSink(store)
	}

	// Local websocket clients are fed directly; API Gateway clients are fed by
	// the notification lambda when events go through SQS.
	hub := websockets.NewHub()
	sink = events.Multi{sink, websockets.NewEventSink(hub)}

	svc := streams.New(store, clock.System{}, sink, cfg.Engine())

	if cfg.TickInterval > 0 {
		go scheduler.NewHeartbeat(svc, cfg.TickInterval).Run(ctx)
	}

	router := handlers.NewRouter(svc, logger, wshandler.NewHandler(store, hub))
	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", cfg.HTTPPort, "storage", cfg.StorageBackend)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	slog.Info("server stopped")
}
