package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/duckpipe/duckpipe/internal/storage"
)

// Fetcher downloads the source dataset to a local cache path. Sources with
// an http(s) scheme are fetched over HTTP; anything else is treated as an
// object key within the configured store.
type Fetcher struct {
	Store      storage.ObjectStore
	HTTPClient *http.Client
}

// Fetch writes the source payload to localPath, unconditionally overwriting
// whatever is there, and returns the number of bytes written.
func (f *Fetcher) Fetch(ctx context.Context, source, localPath string) (int64, error) {
	if strings.TrimSpace(source) == "" {
		return 0, fmt.Errorf("source is required")
	}
	if strings.TrimSpace(localPath) == "" {
		return 0, fmt.Errorf("local path is required")
	}

	reader, err := f.open(ctx, source)
	if err != nil {
		return 0, err
	}
	defer func() { _ = reader.Close() }()

	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create cache dir %q: %w", dir, err)
		}
	}
	file, err := os.Create(localPath)
	if err != nil {
		return 0, fmt.Errorf("create cache file %q: %w", localPath, err)
	}
	written, err := io.Copy(file, reader)
	if err != nil {
		_ = file.Close()
		return 0, fmt.Errorf("write cache file %q: %w", localPath, err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("close cache file %q: %w", localPath, err)
	}
	return written, nil
}

func (f *Fetcher) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if IsHTTP(source) {
		return f.openHTTP(ctx, source)
	}
	if f.Store == nil {
		return nil, fmt.Errorf("object store is required for source %q", source)
	}
	// Stat first so a missing object fails before any download starts.
	if _, err := f.Store.Stat(ctx, source); err != nil {
		return nil, fmt.Errorf("stat object %q: %w", source, err)
	}
	reader, err := f.Store.Get(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", source, err)
	}
	return reader, nil
}

func (f *Fetcher) openHTTP(ctx context.Context, source string) (io.ReadCloser, error) {
	client := f.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", source, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %q: %w", source, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("download %q: unexpected status %d", source, resp.StatusCode)
	}
	return resp.Body, nil
}

// IsHTTP reports whether a source string is a plain URL rather than an
// object key.
func IsHTTP(source string) bool {
	parsed, err := url.Parse(source)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}
