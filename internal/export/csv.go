package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/duckpipe/duckpipe/internal/query"
)

// WriteCSV serializes a result set to outputPath: a header row with the
// column names followed by every row in result order. The file is written to
// a temporary sibling and renamed into place, so the destination is either
// fully written or untouched.
func WriteCSV(result query.Result, outputPath string) error {
	if len(result.Columns) == 0 {
		return fmt.Errorf("result has no columns")
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %q: %w", dir, err)
		}
	}

	tmpPath := outputPath + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", tmpPath, err)
	}
	discard := func() {
		_ = file.Close()
		_ = os.Remove(tmpPath)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(result.Columns); err != nil {
		discard()
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		if len(row) != len(result.Columns) {
			discard()
			return fmt.Errorf("row has %d values, want %d", len(row), len(result.Columns))
		}
		for i, value := range row {
			record[i] = formatValue(value, columnType(result.Types, i))
		}
		if err := writer.Write(record); err != nil {
			discard()
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		discard()
		return fmt.Errorf("flush output file %q: %w", tmpPath, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close output file %q: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename output file to %q: %w", outputPath, err)
	}
	return nil
}

func columnType(types []string, index int) string {
	if index < len(types) {
		return types[index]
	}
	return ""
}

func formatValue(value any, sqlType string) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.FormatInt(int64(typed), 10)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float32:
		return strconv.FormatFloat(float64(typed), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(typed, 'g', -1, 64)
	case time.Time:
		// DATE columns render as bare dates; anything else keeps the full
		// timestamp so one column never mixes formats.
		if sqlType == "DATE" {
			return typed.Format("2006-01-02")
		}
		return typed.Format(time.RFC3339Nano)
	case []byte:
		return string(typed)
	default:
		return fmt.Sprint(typed)
	}
}
