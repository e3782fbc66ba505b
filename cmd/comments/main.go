package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	commenthttp "github.com/MyNameIsWhaaat/comments/internal/comment/handler/http"
	"github.com/MyNameIsWhaaat/comments/internal/comment/service"
	"github.com/MyNameIsWhaaat/comments/internal/comment/storage"
	"github.com/MyNameIsWhaaat/comments/internal/comment/storage/inmemory"
	"github.com/MyNameIsWhaaat/comments/internal/comment/storage/postgres"
	"github.com/MyNameIsWhaaat/comments/internal/comment/storage/redis"
	"github.com/MyNameIsWhaaat/comments/internal/config"
	"github.com/MyNameIsWhaaat/comments/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env, cfg.LogLevel)

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open storage")
	}
	defer closeRepo()

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Storage.OperationTimeout)
	if err := repo.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("driver", cfg.Storage.Driver).Msg("storage not reachable yet")
	}
	cancel()

	svc := service.New(repo, cfg.Storage.OperationTimeout)
	h := commenthttp.New(svc, repo, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      h.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if err := run(srv, cfg.Server, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		closeRepo()
		os.Exit(1)
	}
}

func run(srv *http.Server, cfg config.ServerConfig, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func openRepository(cfg *config.Config) (storage.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.Postgres.DSN, postgres.Options{
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		return postgres.New(db), func() { _ = db.Close() }, nil
	case config.DriverRedis:
		rdb := redis.NewClient(redis.Options{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redis.New(rdb, cfg.Redis.Key), func() { _ = rdb.Close() }, nil
	default:
		return inmemory.New(), func() {}, nil
	}
}
