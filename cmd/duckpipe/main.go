package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/duckpipe/duckpipe/internal/config"
	"github.com/duckpipe/duckpipe/internal/fetch"
	"github.com/duckpipe/duckpipe/internal/observability"
	"github.com/duckpipe/duckpipe/internal/pipeline"
	"github.com/duckpipe/duckpipe/internal/query/duckdb"
	"github.com/duckpipe/duckpipe/internal/storage"
	s3store "github.com/duckpipe/duckpipe/internal/storage/s3"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv("duckpipe")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store storage.ObjectStore
	if !fetch.IsHTTP(cfg.Source.Location) {
		store, err = s3store.New(ctx, s3store.Config{
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
	}

	svc := &pipeline.Service{
		Fetcher: &fetch.Fetcher{Store: store},
		Engine:  duckdb.NewEngine(),
		Config: pipeline.Config{
			SourceLocation: cfg.Source.Location,
			TableName:      cfg.Source.TableName,
			CachePath:      cfg.Source.CachePath,
			OutputDir:      cfg.Export.OutputDir,
			Reports:        pipeline.DefaultReports(),
		},
		Logger: logger,
	}

	logger.Info(
		"pipeline started",
		slog.String("source", cfg.Source.Location),
		slog.String("output_dir", cfg.Export.OutputDir),
	)
	if err := svc.Run(ctx); err != nil {
		logger.Error("pipeline failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("pipeline completed")
}
