package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/z-timer/backend/internal/config"
	"github.com/zhouzirui/z-timer/backend/internal/handler"
	applog "github.com/zhouzirui/z-timer/backend/internal/log"
	"github.com/zhouzirui/z-timer/backend/internal/model/session"
	sessionService "github.com/zhouzirui/z-timer/backend/internal/service/session"
	"github.com/zhouzirui/z-timer/backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger := applog.Base()
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	applog.Reconfigure(applog.Config{Level: cfg.Log.Level, Service: "z-timer-api"})
	logger := applog.WithComponent("main")
	if envErr != nil {
		logger.Warn().Err(envErr).Msg("no .env file, continuing with system environment variables only")
	}

	store, closeStore, err := openStore(cfg.Sessions)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open session store")
	}
	defer closeStore()

	sessionSvc := sessionService.NewService(store)

	router := handler.NewRouter(sessionSvc, handler.Options{
		Collection:     cfg.Sessions.Collection,
		AllowedOrigin:  cfg.Server.AllowedOrigin,
		WriteRateLimit: cfg.Server.WriteRateLimit,
		MetricsEnabled: cfg.Server.MetricsEnabled,
	})

	startServer(ctx, cfg.Server, router)
}

func openStore(cfg config.SessionsConfig) (session.Store, func(), error) {
	logger := applog.WithComponent("main")
	if cfg.StorePath == "" {
		logger.Info().Msg("using in-memory session store")
		return session.NewMemoryStore(session.UUIDGenerator), func() {}, nil
	}

	store, err := storage.NewSQLiteStore(cfg.StorePath, session.UUIDGenerator)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("path", cfg.StorePath).Msg("using sqlite session store")
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close session store")
		}
	}, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	logger := applog.WithComponent("main")
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info().Str("addr", serverCfg.Addr).Msg("session timer backend listening")
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
