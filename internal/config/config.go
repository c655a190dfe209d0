package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type LookupFunc func(string) (string, bool)

type Profile string

const (
	ProfileDev  Profile = "dev"
	ProfileTest Profile = "test"
	ProfileProd Profile = "prod"
)

type Config struct {
	Profile       Profile
	Service       ServiceConfig
	Source        SourceConfig
	Export        ExportConfig
	ObjectStore   ObjectStoreConfig
	Seed          SeedConfig
	Observability ObservabilityConfig
}

type ServiceConfig struct {
	Name string
}

type SourceConfig struct {
	// Location is either an http(s) URL or an object key within the
	// configured bucket.
	Location  string
	TableName string
	CachePath string
}

type ExportConfig struct {
	OutputDir string
}

type ObjectStoreConfig struct {
	Endpoint         string
	Region           string
	Bucket           string
	AccessKeyID      string
	SecretAccessKey  string
	UseSSL           bool
	Prefix           string
	AutoCreateBucket bool
}

type SeedConfig struct {
	Dataset  string
	Year     int
	Month    int
	RowCount int
	RandSeed int64
}

type ObservabilityConfig struct {
	LogLevel slog.Level
	LogJSON  bool
}

func LoadFromEnv(serviceName string) (Config, error) {
	return Load(serviceName, os.LookupEnv)
}

func Load(serviceName string, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	profile := ProfileDev
	if raw, ok := lookup("DUCKPIPE_PROFILE"); ok {
		profile = Profile(strings.ToLower(strings.TrimSpace(raw)))
	}
	if !isValidProfile(profile) {
		return Config{}, fmt.Errorf("invalid DUCKPIPE_PROFILE: %q", profile)
	}

	cfg := defaultsForProfile(profile)
	if serviceName != "" {
		cfg.Service.Name = serviceName
	}

	if err := applyString(lookup, "DUCKPIPE_SERVICE_NAME", &cfg.Service.Name); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_SOURCE_LOCATION", &cfg.Source.Location); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_SOURCE_TABLE_NAME", &cfg.Source.TableName); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_SOURCE_CACHE_PATH", &cfg.Source.CachePath); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_EXPORT_OUTPUT_DIR", &cfg.Export.OutputDir); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_OBJECTSTORE_ENDPOINT", &cfg.ObjectStore.Endpoint); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_OBJECTSTORE_REGION", &cfg.ObjectStore.Region); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_OBJECTSTORE_BUCKET", &cfg.ObjectStore.Bucket); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_OBJECTSTORE_ACCESS_KEY", &cfg.ObjectStore.AccessKeyID); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_OBJECTSTORE_SECRET_KEY", &cfg.ObjectStore.SecretAccessKey); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "DUCKPIPE_OBJECTSTORE_USE_SSL", &cfg.ObjectStore.UseSSL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_OBJECTSTORE_PREFIX", &cfg.ObjectStore.Prefix); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "DUCKPIPE_OBJECTSTORE_AUTO_CREATE_BUCKET", &cfg.ObjectStore.AutoCreateBucket); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "DUCKPIPE_SEED_DATASET", &cfg.Seed.Dataset); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "DUCKPIPE_SEED_YEAR", &cfg.Seed.Year); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "DUCKPIPE_SEED_MONTH", &cfg.Seed.Month); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "DUCKPIPE_SEED_ROW_COUNT", &cfg.Seed.RowCount); err != nil {
		return Config{}, err
	}
	if err := applyInt64(lookup, "DUCKPIPE_SEED_RAND_SEED", &cfg.Seed.RandSeed); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "DUCKPIPE_LOG_JSON", &cfg.Observability.LogJSON); err != nil {
		return Config{}, err
	}
	if err := applyLogLevel(lookup, "DUCKPIPE_LOG_LEVEL", &cfg.Observability.LogLevel); err != nil {
		return Config{}, err
	}

	if cfg.Service.Name == "" {
		return Config{}, fmt.Errorf("service name is required")
	}
	if cfg.Source.Location == "" {
		return Config{}, fmt.Errorf("source location is required")
	}
	if cfg.Source.TableName == "" {
		return Config{}, fmt.Errorf("source table name is required")
	}
	if cfg.Source.CachePath == "" {
		return Config{}, fmt.Errorf("source cache path is required")
	}
	if cfg.Export.OutputDir == "" {
		return Config{}, fmt.Errorf("export output dir is required")
	}
	return cfg, nil
}

func defaultsForProfile(profile Profile) Config {
	cfg := Config{
		Profile: profile,
		Service: ServiceConfig{Name: "duckpipe"},
		Source: SourceConfig{
			Location:  "https://fastopendata.org/mta/raw/hourly_subway/year%3D2024/month%3D09/2024_09.parquet",
			TableName: "mta_hourly_subway",
			CachePath: "data/hourly_subway.parquet",
		},
		Export: ExportConfig{
			OutputDir: "data",
		},
		ObjectStore: ObjectStoreConfig{
			Endpoint:         "localhost:9000",
			Region:           "us-east-1",
			Bucket:           "duckpipe",
			AccessKeyID:      "minio",
			SecretAccessKey:  "miniostorage",
			UseSSL:           false,
			Prefix:           "",
			AutoCreateBucket: true,
		},
		Seed: SeedConfig{
			Dataset:  "hourly_subway",
			Year:     2024,
			Month:    9,
			RowCount: 5000,
			RandSeed: 1,
		},
		Observability: ObservabilityConfig{
			LogLevel: slog.LevelDebug,
			LogJSON:  true,
		},
	}

	switch profile {
	case ProfileTest:
		cfg.Observability.LogLevel = slog.LevelWarn
	case ProfileProd:
		cfg.Observability.LogLevel = slog.LevelInfo
		cfg.ObjectStore.UseSSL = true
		cfg.ObjectStore.AutoCreateBucket = false
	}

	return cfg
}

func isValidProfile(profile Profile) bool {
	switch profile {
	case ProfileDev, ProfileTest, ProfileProd:
		return true
	default:
		return false
	}
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyBool(lookup LookupFunc, key string, dst *bool) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyInt64(lookup LookupFunc, key string, dst *int64) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyLogLevel(lookup LookupFunc, key string, dst *slog.Level) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	level := strings.ToLower(strings.TrimSpace(raw))
	switch level {
	case "debug":
		*dst = slog.LevelDebug
	case "info":
		*dst = slog.LevelInfo
	case "warn", "warning":
		*dst = slog.LevelWarn
	case "error":
		*dst = slog.LevelError
	default:
		return fmt.Errorf("invalid %s: %q", key, raw)
	}
	return nil
}
