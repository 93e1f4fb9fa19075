package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ordermate/backend/internal/application/handler"
	"github.com/ordermate/backend/internal/application/service"
	"github.com/ordermate/backend/internal/cache"
	"github.com/ordermate/backend/internal/config"
	"github.com/ordermate/backend/internal/database"
	"github.com/ordermate/backend/internal/httpapi"
	"github.com/ordermate/backend/internal/identity"
	"github.com/ordermate/backend/internal/kafka"
	"github.com/ordermate/backend/internal/notify"
	"github.com/ordermate/backend/internal/observability"
	"github.com/ordermate/backend/internal/order"
	"github.com/ordermate/backend/internal/pkg/breaker"
	"github.com/ordermate/backend/internal/pkg/voice"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := database.Connect(ctx, cfg.DSN())
	defer pool.Close()
	repo := database.New(pool, cfg.Tables)

	storeCache, err := cache.New(cfg.CacheCap)
	if err != nil {
		logger.Fatal("cache init failed", zap.Error(err))
	}
	storeCache.Warm(ctx, repo)

	metrics := observability.NewProm()

	resolver := identity.NewResolver(repo, storeCache, identity.NewPrefixPolicy(cfg.PlaceID), logger, metrics)
	builder := order.NewBuilder(voice.New(cfg.Voice))
	dispatcher := notify.NewDispatcher(
		notify.LogMessenger{Logger: logger},
		notify.NoopSynthesizer{},
		cfg.Voice.OperatorLang,
		logger,
		metrics,
	)
	svc := service.NewService(resolver, repo, builder, dispatcher, logger, metrics)

	if err := kafka.EnsureTopic(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, 3, 1, logger); err != nil {
		logger.Fatal("kafka topic bootstrap failed", zap.Error(err))
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.Group,
		Topic:   cfg.Kafka.Topic,
	})
	defer reader.Close()

	h := handler.NewHandler(svc, breaker.New(cfg.Breaker), cfg.Retry, logger)
	consumer := kafka.NewConsumer(h, reader, cfg.Kafka.Workers, logger, metrics)
	go consumer.Start(ctx)

	server := httpapi.New(svc, promhttp.Handler(), logger, metrics)
	logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server failed", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
