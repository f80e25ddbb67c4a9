package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/eventfeed-backend/internal/adapter/kafka"
	"github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres"
	eventrepo "github.com/heartmarshall/eventfeed-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/eventfeed-backend/internal/config"
	"github.com/heartmarshall/eventfeed-backend/internal/service/ingest"
	"github.com/heartmarshall/eventfeed-backend/internal/transport/middleware"
)

// Run is the application entry point. It loads configuration, connects to
// the database, serves the HTTP API and, when enabled, consumes the events
// topic. It returns once ctx is cancelled and everything has shut down.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewRouter(logger, cfg, pool, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if cfg.Kafka.Enabled {
		recorder := ingest.NewService(logger, eventrepo.New(pool))
		consumer, err := kafka.NewConsumer(logger, cfg.Kafka, recorder)
		if err != nil {
			return err
		}

		g.Go(func() error {
			return consumer.Run(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			return consumer.Close()
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("application stopped")
	return nil
}
