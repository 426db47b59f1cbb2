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

	"choosecare-bff/internal/config"
	"choosecare-bff/internal/database"
	"choosecare-bff/internal/handler"
	"choosecare-bff/internal/imagecache"
	"choosecare-bff/internal/kvstore"
	"choosecare-bff/internal/repository"
	"choosecare-bff/internal/service"
	"choosecare-bff/internal/telemetry"
	"choosecare-bff/internal/upstream"
	"choosecare-bff/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "choosecare-bff",
		Short: "ChooseCare backend-for-frontend",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(cacheCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the store table used by CACHE_BACKEND=mysql",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			logger := utils.NewLogger(cfg.LogLevel, cfg.Server.GinMode)

			db, err := database.Connect(cfg, logger)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the image cache",
	}

	// cache get
	cmd.AddCommand(&cobra.Command{
		Use:   "get <entityType> <id>",
		Short: "Print the cached picture of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, closeStore, err := openCache(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			res := cache.Lookup(cmd.Context(), args[0], args[1])
			switch res.Status {
			case imagecache.Hit:
				fmt.Fprintln(cmd.OutOrStdout(), res.Value)
				return nil
			case imagecache.Miss:
				return fmt.Errorf("no cached picture for %s", imagecache.Key(args[0], args[1]))
			default:
				return res.Err
			}
		},
	})

	// cache rm
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <entityType> <id>",
		Short: "Drop the cached picture of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, closeStore, err := openCache(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			cache.Remove(cmd.Context(), args[0], args[1])
			return nil
		},
	})

	return cmd
}

func openCache(ctx context.Context) (*imagecache.Cache, func(), error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := utils.NewLogger(cfg.LogLevel, cfg.Server.GinMode)
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return imagecache.New(store, logger), closeStore, nil
}

// openStore builds the key-value store selected by CACHE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (kvstore.Store, func(), error) {
	switch cfg.Cache.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := kvstore.NewRedis(rdb, "choosecare:")
		if err := store.Ping(ctx); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis store")
		return store, func() { _ = rdb.Close() }, nil
	case "mysql":
		db, err := database.Connect(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewStoreEntryRepo(db), closeDB, nil
	default:
		logger.Warn().Msg("using in-memory store, cached pictures and tokens are lost on restart")
		return kvstore.NewMemory(), func() {}, nil
	}
}

func runServer() error {
	// 1. Load configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := utils.NewLogger(cfg.LogLevel, cfg.Server.GinMode)
	logger.Info().Str("api_base_url", cfg.Upstream.BaseURL).Str("cache_backend", cfg.Cache.Backend).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Tracing
	otelShutdown, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(shutdownCtx)
	}()

	// 3. Store
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// 4. Initialize services
	api := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logger)
	cache := imagecache.New(store, logger)
	authService := service.NewAuthService(api, repository.NewTokenRepo(store), cfg.JWT.Secret, logger)
	directoryService := service.NewDirectoryService(api, cache, logger)

	// 5. Setup Gin
	gin.SetMode(cfg.Server.GinMode)
	r := handler.NewRouter(cfg, handler.Services{
		Auth:         authService,
		Directory:    directoryService,
		Admin:        service.NewAdminService(api, cache, authService, logger),
		Appointments: service.NewAppointmentService(api, directoryService, authService, logger),
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. Setup graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server exited")
	return nil
}
