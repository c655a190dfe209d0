package seed

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/duckpipe/duckpipe/internal/storage"
)

func TestRunUploadsParquetUnderRawDataKey(t *testing.T) {
	store := &captureStore{}
	svc := &Service{
		Store: store,
		Config: Config{
			Dataset:  "hourly_subway",
			Year:     2024,
			Month:    9,
			RowCount: 50,
			RandSeed: 42,
		},
	}

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if store.lastKey != "mta/raw/hourly_subway/year=2024/month=09/2024_09.parquet" {
		t.Fatalf("key = %q", store.lastKey)
	}

	rows, err := parquet.Read[Row](bytes.NewReader(store.lastData), int64(len(store.lastData)))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(rows) != 50 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].StationComplex == "" || rows[0].Borough == "" {
		t.Fatalf("row[0] = %+v", rows[0])
	}
}

func TestRunValidatesConfig(t *testing.T) {
	svc := &Service{Config: Config{Dataset: "hourly_subway", Year: 2024, Month: 9, RowCount: 1}}
	if err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error when store is missing")
	}

	svc = &Service{Store: &captureStore{}, Config: Config{Dataset: "hourly_subway", Year: 2024, Month: 9}}
	if err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error for zero row count")
	}

	svc = &Service{Store: &captureStore{}, Config: Config{Dataset: "hourly_subway", Year: 2024, Month: 13, RowCount: 1}}
	if err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error for invalid month")
	}
}

func TestEncodeRowsToParquetRequiresRows(t *testing.T) {
	if _, err := EncodeRowsToParquet(nil); err == nil {
		t.Fatal("expected error for empty rows")
	}
}

type captureStore struct {
	lastKey  string
	lastData []byte
}

func (c *captureStore) Put(_ context.Context, key string, body io.Reader, size int64, _ storage.PutOptions) (storage.ObjectInfo, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	c.lastKey = key
	c.lastData = data
	return storage.ObjectInfo{Key: key, Size: size}, nil
}

func (c *captureStore) Get(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(c.lastData)), nil
}

func (c *captureStore) Stat(context.Context, string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{Key: c.lastKey, Size: int64(len(c.lastData))}, nil
}
