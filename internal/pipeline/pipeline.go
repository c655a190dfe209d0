package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/duckpipe/duckpipe/internal/export"
	"github.com/duckpipe/duckpipe/internal/observability"
	"github.com/duckpipe/duckpipe/internal/query"
)

type Fetcher interface {
	Fetch(ctx context.Context, source, localPath string) (int64, error)
}

type Config struct {
	SourceLocation string
	TableName      string
	CachePath      string
	OutputDir      string
	Reports        []Report
}

// Service runs the tabular export pipeline: fetch the source dataset to the
// local cache path, then for each report evaluate its statement and write the
// result set to CSV. The three steps are strictly sequential; any failure
// aborts the run with no retry, no rollback, and no cleanup of the cache
// file. A stale cache file is unconditionally overwritten by the next run.
type Service struct {
	Fetcher Fetcher
	Engine  query.Engine
	Config  Config
	Logger  *slog.Logger
}

func (s *Service) Run(ctx context.Context) error {
	err := s.run(ctx)
	observability.ObserveRun(err)
	return err
}

func (s *Service) run(ctx context.Context) error {
	if s.Fetcher == nil {
		return fmt.Errorf("fetcher is required")
	}
	if s.Engine == nil {
		return fmt.Errorf("query engine is required")
	}
	if strings.TrimSpace(s.Config.SourceLocation) == "" {
		return fmt.Errorf("source location is required")
	}
	if strings.TrimSpace(s.Config.TableName) == "" {
		return fmt.Errorf("table name is required")
	}
	if strings.TrimSpace(s.Config.CachePath) == "" {
		return fmt.Errorf("cache path is required")
	}
	if len(s.Config.Reports) == 0 {
		return fmt.Errorf("at least one report is required")
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fetchStart := time.Now()
	written, err := s.Fetcher.Fetch(ctx, s.Config.SourceLocation, s.Config.CachePath)
	if err != nil {
		return fmt.Errorf("%w: fetch %q: %w", ErrDownload, s.Config.SourceLocation, err)
	}
	fetchElapsed := time.Since(fetchStart)
	observability.ObserveFetch(written, fetchElapsed)
	logger.Info(
		"source dataset fetched",
		slog.String("source", s.Config.SourceLocation),
		slog.String("cache_path", s.Config.CachePath),
		slog.Int64("bytes", written),
		slog.Duration("elapsed", fetchElapsed),
	)

	for _, report := range s.Config.Reports {
		result, err := s.Engine.Execute(ctx, query.Request{
			SQL: report.SQL,
			Files: []query.TableFile{{
				TableName: s.Config.TableName,
				LocalPath: s.Config.CachePath,
			}},
		})
		if err != nil {
			return fmt.Errorf("%w: report %q: %w", ErrQuery, report.Name, err)
		}
		observability.ObserveQuery(report.Name, result.Duration)

		outputPath := filepath.Join(s.Config.OutputDir, report.OutputFile)
		if err := export.WriteCSV(result, outputPath); err != nil {
			return fmt.Errorf("%w: report %q: %w", ErrWrite, report.Name, err)
		}
		observability.ObserveExport(report.Name, len(result.Rows))
		logger.Info(
			"report exported",
			slog.String("report", report.Name),
			slog.String("output_path", outputPath),
			slog.Int("rows", len(result.Rows)),
			slog.Duration("query_elapsed", result.Duration),
		)
	}

	return nil
}
