package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"runway/internal/amqp"
	"runway/internal/classify"
	"runway/internal/config"
	apphttp "runway/internal/http"
	"runway/internal/remote"
	"runway/internal/storage"
	"runway/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Local persistence
	kv, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer kv.Close()

	// Remote backend
	remoteClient, cleanup, err := remote.New(ctx, remote.Config{
		Type:          remote.BackendType(cfg.RemoteBackend),
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDatabase,
		SpreadsheetID: cfg.GoogleSpreadsheetID,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize remote backend", "error", err, "backend", cfg.RemoteBackend)
		os.Exit(1)
	}
	if cleanup != nil {
		defer func() {
			cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cleanupCancel()
			if err := cleanup(cleanupCtx); err != nil {
				logger.Error("Remote backend cleanup failed", "error", err)
			}
		}()
	}

	// With AMQP configured the store hands sync off to the worker via the
	// broker; otherwise it pushes to the remote backend directly.
	var syncer store.Syncer
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		syncer = amqp.NewSyncPublisher(amqpClient, cfg.UserID)
		logger.Info("Sync hand-off via AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		syncer = remote.NewPusher(remoteClient, cfg.UserID)
		logger.Info("Sync pushes directly to remote backend", "backend", cfg.RemoteBackend)
	}

	st, err := store.New(ctx, kv,
		store.WithSyncer(syncer),
		store.WithQuietPeriod(cfg.SyncQuietPeriod),
	)
	if err != nil {
		logger.Error("Failed to load store", "error", err)
		os.Exit(1)
	}

	classifier := classify.NewFromEnv(ctx)

	srv := apphttp.NewServer(":"+cfg.Port, st, classifier, remoteClient, cfg.UserID)
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}

		// Run any debounced sync that was still pending.
		if err := st.Flush(shutdownCtx); err != nil {
			logger.Error("Final sync flush failed", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting runway server", "port", cfg.Port, "backend", cfg.RemoteBackend, "user_id", cfg.UserID)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
