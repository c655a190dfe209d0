package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/duckpipe/duckpipe/internal/query"
)

type row struct {
	StationComplex string  `parquet:"station_complex"`
	Borough        string  `parquet:"borough"`
	Ridership      float64 `parquet:"ridership"`
}

func TestExecuteAggregatesParquetFile(t *testing.T) {
	localPath := writeParquet(t, []row{
		{StationComplex: "Times Sq", Borough: "Manhattan", Ridership: 10},
		{StationComplex: "Times Sq", Borough: "Manhattan", Ridership: 20},
		{StationComplex: "Atlantic Av", Borough: "Brooklyn", Ridership: 5},
	})

	engine := NewEngine()
	result, err := engine.Execute(context.Background(), query.Request{
		SQL: `SELECT borough, SUM(ridership) AS total_ridership
		      FROM ridership
		      GROUP BY borough
		      ORDER BY total_ridership DESC, borough`,
		Files: []query.TableFile{{TableName: "ridership", LocalPath: localPath}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Columns) != 2 || result.Columns[0] != "borough" || result.Columns[1] != "total_ridership" {
		t.Fatalf("columns = %v", result.Columns)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("rows = %d", len(result.Rows))
	}
	if result.Rows[0][0] != "Manhattan" || result.Rows[0][1] != float64(30) {
		t.Fatalf("row[0] = %#v", result.Rows[0])
	}
	if result.Rows[1][0] != "Brooklyn" || result.Rows[1][1] != float64(5) {
		t.Fatalf("row[1] = %#v", result.Rows[1])
	}
}

func TestExecuteSupportsTrailingSemicolon(t *testing.T) {
	localPath := writeParquet(t, []row{
		{StationComplex: "Times Sq", Borough: "Manhattan", Ridership: 1},
	})

	engine := NewEngine()
	result, err := engine.Execute(context.Background(), query.Request{
		SQL:   "SELECT COUNT(*) AS c FROM ridership;",
		Files: []query.TableFile{{TableName: "ridership", LocalPath: localPath}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("rows = %d", len(result.Rows))
	}
	if result.Rows[0][0] != int64(1) {
		t.Fatalf("count = %#v", result.Rows[0][0])
	}
}

func TestExecuteReportsColumnTypes(t *testing.T) {
	localPath := writeParquet(t, []row{
		{StationComplex: "Times Sq", Borough: "Manhattan", Ridership: 1},
	})

	engine := NewEngine()
	result, err := engine.Execute(context.Background(), query.Request{
		SQL: `SELECT borough, CAST('2024-09-02' AS DATE) AS day, SUM(ridership) AS total
		      FROM ridership GROUP BY borough, day ORDER BY borough`,
		Files: []query.TableFile{{TableName: "ridership", LocalPath: localPath}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Types) != 3 {
		t.Fatalf("types = %v", result.Types)
	}
	if result.Types[0] != "VARCHAR" || result.Types[1] != "DATE" || result.Types[2] != "DOUBLE" {
		t.Fatalf("types = %v", result.Types)
	}
}

func TestExecuteEmptyDatasetYieldsZeroGroups(t *testing.T) {
	localPath := writeParquet(t, []row{})

	engine := NewEngine()
	result, err := engine.Execute(context.Background(), query.Request{
		SQL: `SELECT borough, SUM(ridership) AS total_ridership
		      FROM ridership GROUP BY borough ORDER BY borough`,
		Files: []query.TableFile{{TableName: "ridership", LocalPath: localPath}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Columns) != 2 {
		t.Fatalf("columns = %v", result.Columns)
	}
	if len(result.Rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(result.Rows))
	}
}

func TestExecuteFailsOnUnknownColumn(t *testing.T) {
	localPath := writeParquet(t, []row{
		{StationComplex: "Times Sq", Borough: "Manhattan", Ridership: 1},
	})

	engine := NewEngine()
	_, err := engine.Execute(context.Background(), query.Request{
		SQL:   "SELECT no_such_column FROM ridership",
		Files: []query.TableFile{{TableName: "ridership", LocalPath: localPath}},
	})
	if err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestExecuteFailsOnMalformedFile(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "garbage.parquet")
	if err := os.WriteFile(localPath, []byte("not a parquet file"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	engine := NewEngine()
	_, err := engine.Execute(context.Background(), query.Request{
		SQL:   "SELECT COUNT(*) FROM ridership",
		Files: []query.TableFile{{TableName: "ridership", LocalPath: localPath}},
	})
	if err == nil {
		t.Fatal("expected error for malformed parquet file")
	}
}

func TestExecuteRequiresSQLAndFiles(t *testing.T) {
	engine := NewEngine()
	if _, err := engine.Execute(context.Background(), query.Request{SQL: "  "}); err == nil {
		t.Fatal("expected error for blank sql")
	}
	if _, err := engine.Execute(context.Background(), query.Request{SQL: "SELECT 1"}); err == nil {
		t.Fatal("expected error for missing files")
	}
}

func writeParquet(t *testing.T, rows []row) string {
	t.Helper()
	localPath := filepath.Join(t.TempDir(), "ridership.parquet")
	file, err := os.Create(localPath)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	writer := parquet.NewGenericWriter[row](file)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close file error = %v", err)
	}
	return localPath
}
