package storage

import "testing"

func TestBuildRawDataKey(t *testing.T) {
	key, err := BuildRawDataKey("hourly_subway", 2024, 9)
	if err != nil {
		t.Fatalf("BuildRawDataKey() error = %v", err)
	}
	want := "mta/raw/hourly_subway/year=2024/month=09/2024_09.parquet"
	if key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}
}

func TestBuildRawDataKeyRejectsInvalidDataset(t *testing.T) {
	if _, err := BuildRawDataKey("../etc", 2024, 9); err == nil {
		t.Fatal("expected error for traversal in dataset name")
	}
	if _, err := BuildRawDataKey("", 2024, 9); err == nil {
		t.Fatal("expected error for empty dataset name")
	}
}

func TestBuildRawDataKeyRejectsInvalidPartition(t *testing.T) {
	if _, err := BuildRawDataKey("hourly_subway", 1999, 9); err == nil {
		t.Fatal("expected error for out-of-range year")
	}
	if _, err := BuildRawDataKey("hourly_subway", 2024, 13); err == nil {
		t.Fatal("expected error for out-of-range month")
	}
}
