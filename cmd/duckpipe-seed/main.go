package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/duckpipe/duckpipe/internal/config"
	"github.com/duckpipe/duckpipe/internal/observability"
	"github.com/duckpipe/duckpipe/internal/seed"
	s3store "github.com/duckpipe/duckpipe/internal/storage/s3"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv("duckpipe-seed")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := s3store.New(ctx, s3store.Config{
		Endpoint:         cfg.ObjectStore.Endpoint,
		Region:           cfg.ObjectStore.Region,
		Bucket:           cfg.ObjectStore.Bucket,
		AccessKeyID:      cfg.ObjectStore.AccessKeyID,
		SecretAccessKey:  cfg.ObjectStore.SecretAccessKey,
		UseSSL:           cfg.ObjectStore.UseSSL,
		Prefix:           cfg.ObjectStore.Prefix,
		AutoCreateBucket: cfg.ObjectStore.AutoCreateBucket,
	})
	if err != nil {
		logger.Error("failed to initialize object store", slog.Any("error", err))
		os.Exit(1)
	}

	svc := &seed.Service{
		Store: store,
		Config: seed.Config{
			Dataset:  cfg.Seed.Dataset,
			Year:     cfg.Seed.Year,
			Month:    cfg.Seed.Month,
			RowCount: cfg.Seed.RowCount,
			RandSeed: cfg.Seed.RandSeed,
		},
		Logger: logger,
	}

	logger.Info(
		"seeder started",
		slog.String("dataset", cfg.Seed.Dataset),
		slog.Int("rows", cfg.Seed.RowCount),
	)
	if err := svc.Run(ctx); err != nil {
		logger.Error("seeder failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("seeder completed")
}
