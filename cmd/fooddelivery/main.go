package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fooddelivery/internal/cache"
	"fooddelivery/internal/config"
	"fooddelivery/internal/handler"
	"fooddelivery/internal/notify"
	"fooddelivery/internal/order"
	"fooddelivery/internal/service"
	"fooddelivery/internal/session"
	"fooddelivery/internal/worker"
)

func main() {
	cfg := config.New()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if len(cfg.Restaurants) == 0 {
		slog.Error("restaurant catalog is empty")
		os.Exit(1)
	}

	// Backend client
	opts := []service.Option{service.WithTimeout(cfg.BackendTimeout)}
	if cfg.RedisAddr != "" {
		opts = append(opts, service.WithSearchCache(cache.NewRedisCache(cfg.RedisAddr, "fooddelivery"), cfg.SearchCacheTTL))
		slog.Info("search cache enabled", "redis", cfg.RedisAddr, "ttl", cfg.SearchCacheTTL)
	}
	backend := service.NewClient(cfg.BackendAddress, opts...)

	// Notifications
	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.AMQPURL != "" {
		mq, err := notify.Dial(cfg.AMQPURL, notify.DefaultExchange)
		if err != nil {
			slog.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer mq.Close()
		notifier = notify.NewAMQPNotifier(mq, notify.DefaultExchange)
	}

	// Sessions
	registry := session.NewRegistry(backend, order.NewComposer(cfg.Restaurants, nil))

	// Worker
	tracker := worker.NewDeliveryTracker(backend, notifier, cfg.PollInterval)

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      handler.NewRouter(registry, cfg.JWTSecret),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * cfg.BackendTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go tracker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress, "backend", cfg.BackendAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop tracker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
