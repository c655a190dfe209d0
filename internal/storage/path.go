package storage

import (
	"fmt"
	"path"
	"regexp"
)

var datasetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,127}$`)

// BuildRawDataKey returns the object key for a monthly raw dataset file,
// following the mta/raw/<dataset>/year=YYYY/month=MM layout of the upstream
// open-data mirror.
func BuildRawDataKey(dataset string, year, month int) (string, error) {
	if !datasetNamePattern.MatchString(dataset) {
		return "", fmt.Errorf("invalid dataset name: %q", dataset)
	}
	if year < 2000 || year > 9999 {
		return "", fmt.Errorf("invalid year: %d", year)
	}
	if month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month: %d", month)
	}
	return path.Join(
		"mta", "raw", dataset,
		fmt.Sprintf("year=%04d", year),
		fmt.Sprintf("month=%02d", month),
		fmt.Sprintf("%04d_%02d.parquet", year, month),
	), nil
}
