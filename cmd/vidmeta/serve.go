package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/vidmeta/internal/adapter/memory"
	redis_adapter "github.com/user/vidmeta/internal/adapter/redis"
	"github.com/user/vidmeta/internal/adapter/scrapeservice"
	"github.com/user/vidmeta/internal/delivery/http/handler"
	"github.com/user/vidmeta/internal/delivery/http/router"
	"github.com/user/vidmeta/internal/delivery/http/server"
	"github.com/user/vidmeta/internal/repository"
	"github.com/user/vidmeta/pkg/utils"
)

const janitorInterval = time.Minute

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the submission form and JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP port (overrides SERVER_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// --- Configuration ---
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.ServerPort = servePort
	}

	// --- Logger ---
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger.Info("logger initialized", zap.String("level", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Scrape service ---
	endpoint, err := utils.ResolveEndpoint(cfg.ScrapeServiceBaseURL, cfg.ScrapeServicePath)
	if err != nil {
		return fmt.Errorf("scrape service endpoint: %w", err)
	}
	client, err := scrapeservice.NewClient(endpoint, cfg.ScrapeTimeout(), logger)
	if err != nil {
		return err
	}
	logger.Info("scrape service configured",
		zap.String("endpoint", client.Endpoint()),
		zap.Duration("timeout", cfg.ScrapeTimeout()))

	// --- Sessions ---
	var sessions repository.SessionRepository
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("redis session store connected", zap.String("addr", cfg.RedisAddr))
		sessions = redis_adapter.NewSessionRepo(rdb)
	} else {
		store := memory.NewSessionRepo()
		go store.RunJanitor(ctx, janitorInterval)
		logger.Info("in-memory session store enabled")
		sessions = store
	}

	// --- HTTP Server ---
	h := handler.NewHandler(client, sessions, cfg.SessionTTL(), logger)
	srv := server.New(cfg.ServerPort, router.New(h, logger))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", srv.Addr()))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr(), err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exiting")
	return nil
}
