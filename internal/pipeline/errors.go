package pipeline

import "errors"

// The three failure kinds of a pipeline run. Each is fatal: the run aborts
// at the failing step and the error propagates to the caller.
var (
	ErrDownload = errors.New("download failed")
	ErrQuery    = errors.New("query failed")
	ErrWrite    = errors.New("write failed")
)
