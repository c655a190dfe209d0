package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/duckpipe/duckpipe/internal/storage"
)

type Config struct {
	Dataset  string
	Year     int
	Month    int
	RowCount int
	RandSeed int64
}

// Service uploads a synthetic monthly ridership parquet file to the object
// store under the raw-data key layout, so the pipeline can run against a
// local store instead of the public mirror.
type Service struct {
	Store  storage.ObjectStore
	Config Config
	Logger *slog.Logger
}

func (s *Service) Run(ctx context.Context) error {
	if s.Store == nil {
		return fmt.Errorf("object store is required")
	}
	if strings.TrimSpace(s.Config.Dataset) == "" {
		return fmt.Errorf("dataset is required")
	}
	if s.Config.RowCount <= 0 {
		return fmt.Errorf("row count must be > 0")
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	key, err := storage.BuildRawDataKey(s.Config.Dataset, s.Config.Year, s.Config.Month)
	if err != nil {
		return fmt.Errorf("build object key: %w", err)
	}

	generator := NewGenerator(s.Config.RandSeed, s.Config.Year, s.Config.Month)
	rows := make([]Row, 0, s.Config.RowCount)
	for range s.Config.RowCount {
		rows = append(rows, generator.NextRow())
	}

	data, err := EncodeRowsToParquet(rows)
	if err != nil {
		return fmt.Errorf("encode parquet: %w", err)
	}

	info, err := s.Store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), storage.PutOptions{
		ContentType: "application/vnd.apache.parquet",
	})
	if err != nil {
		return fmt.Errorf("upload seed file: %w", err)
	}

	logger.Info(
		"seed dataset uploaded",
		slog.String("key", info.Key),
		slog.Int("rows", len(rows)),
		slog.Int("bytes", len(data)),
	)
	return nil
}

func EncodeRowsToParquet(rows []Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("rows are required")
	}
	buf := bytes.NewBuffer(nil)
	writer := parquet.NewGenericWriter[Row](buf)
	if _, err := writer.Write(rows); err != nil {
		return nil, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}
