package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authService "filehub/internal/application/auth"
	fileService "filehub/internal/application/file"
	"filehub/internal/delivery/http/handler"
	"filehub/internal/delivery/http/router"
	"filehub/internal/domain/user"
	"filehub/internal/infrastructure/config"
	"filehub/internal/infrastructure/database"
	"filehub/internal/infrastructure/repository"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg)

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := db.Migrate()
	if err != nil {
		return err
	}
	logger.Info("database ready",
		slog.String("path", cfg.DatabasePath),
		slog.Uint64("schema_version", uint64(version)),
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	resolver := repository.NewNamespaceResolver(cfg.StoragePath)
	fileRepo := repository.NewFilesystemRepository()

	if err := os.MkdirAll(cfg.StoragePath, 0755); err != nil {
		return err
	}

	// Services
	sessionCache := authService.NewSessionCache(cfg.SessionCache, cfg.SessionTTL)
	authSvc := authService.NewService(userRepo, sessionRepo, sessionCache, time.Duration(cfg.TokenExpiry)*time.Hour, user.Role(cfg.DefaultRole))
	fileSvc := fileService.NewService(resolver, fileRepo, cfg.MaxPreviewSize)

	if purged, err := authSvc.PurgeExpiredSessions(); err != nil {
		logger.Warn("purging expired sessions failed", slog.String("error", err.Error()))
	} else if purged > 0 {
		logger.Info("purged expired sessions", slog.Int64("count", purged))
	}

	// Handlers
	handlers := router.Handlers{
		File:   handler.NewFileHandler(fileSvc, cfg.MaxFileSize, logger),
		Auth:   handler.NewAuthHandler(authSvc, logger),
		User:   handler.NewUserHandler(authSvc),
		Health: handler.NewHealthHandler(db, cfg.StoragePath),
	}
	if cfg.GoogleEnabled() {
		handlers.OAuth = handler.NewOAuthHandler(cfg, authSvc, userRepo, logger)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(handlers, authSvc, logger),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("filehub server started",
			slog.String("addr", srv.Addr),
			slog.String("storage", cfg.StoragePath),
			slog.Bool("google_oauth", cfg.GoogleEnabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownAfter)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
