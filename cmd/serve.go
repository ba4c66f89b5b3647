package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/oksasatya/car-collection/config"
	"github.com/oksasatya/car-collection/internal/container"
	pginfra "github.com/oksasatya/car-collection/internal/infrastructure/postgres"
	"github.com/oksasatya/car-collection/internal/interface/middleware"
	"github.com/oksasatya/car-collection/internal/router"
	"github.com/oksasatya/car-collection/pkg/helpers"
)

func newServeCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			gin.SetMode(cfg.GinMode)

			ctx := cmd.Context()

			if migrateFirst {
				if err := migrateUp(cfg, logger); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
			}

			pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), poolOptions(cfg))
			if err != nil {
				return fmt.Errorf("failed to connect to postgres: %w", err)
			}
			defer pool.Close()

			var rdb *redis.Client
			if cfg.RateLimitEnabled() {
				rdb, err = helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
				if err != nil {
					logger.WithError(err).Warn("redis unavailable, signup rate limiting disabled")
					rdb = nil
				} else {
					defer func() { _ = rdb.Close() }()
				}
			}

			if cfg.PasswordHashing == config.PasswordHashingNone {
				logger.Warn("passwords are stored as submitted, set PASSWORD_HASHING=bcrypt to hash them")
			}

			c := &container.Container{
				Config: cfg,
				Logger: logger,
				Users:  pginfra.NewUserRepository(pool),
				DB:     pool,
				Redis:  rdb,
				CSRF:   middleware.CSRF(cfg.SecretKey, cfg.CookieSecure, logger),
			}
			engine, err := router.NewEngine(c)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           engine,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Infof("server starting on :%s", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			// Graceful shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return fmt.Errorf("listen: %w", err)
			case <-quit:
			}
			logger.Info("shutting down server")

			ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctxShutdown); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			logger.Info("server exited properly")
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func poolOptions(cfg *config.Config) pginfra.PoolOptions {
	return pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	}
}
