// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/config"
	"github.com/purpleworks/workshop/internal/health"
	"github.com/purpleworks/workshop/internal/scoreboard"
	"github.com/purpleworks/workshop/internal/team/service"
	"github.com/purpleworks/workshop/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Errorw("server stopped with error", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.SugaredLogger) error {
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("failed to open team store: %w", err)
	}
	defer func() {
		if err := store.close(context.Background()); err != nil {
			log.Warnw("failed to close team store", "error", err)
		}
	}()

	checks := map[string]health.Check{"store": store.check}
	feed := scoreboard.NewFeed(log)
	var notifier service.Notifier = feed

	if cfg.Feed.RelayEnabled() {
		client, err := scoreboard.NewRedisClient(ctx, cfg.Feed.RedisAddr, cfg.Feed.RedisPassword, cfg.Feed.RedisDB)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		relay := scoreboard.NewRedisRelay(client, cfg.Feed.Channel, feed, log)
		notifier = relay
		checks["relay"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		go func() {
			if err := relay.Run(ctx); err != nil {
				log.Errorw("store change relay stopped", "error", err)
			}
		}()
	}

	router, err := newRouter(cfg.Web, deps{
		repo:      store.repo,
		feed:      feed,
		notifier:  notifier,
		clipboard: newClipboard(cfg.Web.ClipboardSource),
		checks:    checks,
	}, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,

		// Event streams and pending dialogs end with the signal context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("starting server", "address", srv.Addr, "store", cfg.Store.Driver, "relay", cfg.Feed.RelayEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Infow("shutting down server")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Infow("server stopped gracefully")
	return nil
}
