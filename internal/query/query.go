package query

import (
	"context"
	"time"
)

type TableFile struct {
	TableName string
	LocalPath string
}

type Request struct {
	SQL   string
	Files []TableFile
}

type Result struct {
	Columns []string
	// Types holds the engine's type name per column (e.g. DATE, TIMESTAMP,
	// BIGINT), aligned with Columns.
	Types    []string
	Rows     [][]any
	Duration time.Duration
}

type Engine interface {
	Execute(ctx context.Context, request Request) (Result, error)
}
