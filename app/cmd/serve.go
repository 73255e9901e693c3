package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farsishop/storefront/app/configs"
	"github.com/farsishop/storefront/app/routes"
	"github.com/farsishop/storefront/app/services"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the API until SIGINT or SIGTERM, then drains in-flight requests
// and closes the database, bucket and notifier.
func Serve(ctx context.Context, env configs.ENV, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := configs.OpenConnection(env, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := configs.CloseConnection(db); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}()

	bucket, err := configs.OpenBucket(ctx, env)
	if err != nil {
		return err
	}
	defer bucket.Close()

	next, err := services.NewOrderNotifier(env, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("order notifications disabled")
		next = services.NewNoopNotifier()
	}
	notifier := services.NewAsyncNotifier(next, 0, logger)
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close order notifier")
		}
	}()

	handler, err := routes.NewRouter(db, routes.Options{
		Env:      env,
		Logger:   logger,
		Bucket:   bucket,
		Notifier: notifier,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              env.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Str("env", env.AppEnv).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
