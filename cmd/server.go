package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tour-booking/internal/wire"
	"tour-booking/pkg/database"
	"tour-booking/pkg/notify"
	"tour-booking/pkg/payments"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// RunServer boots the whole application: config, logger, database, external
// clients, router, then serves until interrupted.
func RunServer() error {
	cfg, err := utils.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := utils.InitLogger(cfg.App.LogPath, cfg.App.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	processorOpts := []payments.Option{
		payments.WithTimeout(time.Duration(cfg.Payments.TimeoutSeconds) * time.Second),
	}
	if cfg.Payments.BaseURL != "" {
		processorOpts = append(processorOpts, payments.WithBaseURL(cfg.Payments.BaseURL))
	}
	processor := payments.NewClient(cfg.Payments.SecretKey, cfg.Payments.WebhookSecret, processorOpts...)
	notifier := notify.NewClient(cfg.Email.BaseURL, cfg.Email.APIKey, cfg.Email.From)

	router := wire.SetupRouter(db, cfg, logger, processor, notifier)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("app", cfg.App.Name),
			zap.String("port", cfg.App.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("Server failed", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server stopped")
	return nil
}
