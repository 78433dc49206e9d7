// Package loader retrieves the storm events dataset and parses it into raw
// records. It owns file retrieval, bzip2 decompression, CSV parsing, and
// numeric/date coercion; the domain and analysis packages only ever see
// structured records.
package loader

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// Dataset is the parsed dataset plus parse bookkeeping.
type Dataset struct {
	Records []domain.RawRecord

	// SkippedRows counts source rows dropped because they were shorter
	// than the header. Coercion failures on individual fields do not skip
	// the row; they fall back to zero values.
	SkippedRows int
}

// FileLoader reads the dataset from a local CSV file, optionally
// bzip2-compressed.
type FileLoader struct {
	path   string
	logger *slog.Logger
}

// NewFileLoader creates a loader for a local dataset file.
func NewFileLoader(path string, logger *slog.Logger) *FileLoader {
	return &FileLoader{path: path, logger: logger}
}

// LoadRecords parses the configured file into raw records.
func (l *FileLoader) LoadRecords(_ context.Context) (Dataset, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	ds, err := decodeCSV(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("parse %s: %w", l.path, err)
	}

	l.logger.Info("dataset loaded",
		"path", l.path,
		"records", len(ds.Records),
		"skipped_rows", ds.SkippedRows,
	)
	return ds, nil
}

// HTTPLoader downloads the dataset over HTTP and parses it. The NOAA
// archive serves the file bzip2-compressed; decompression is detected from
// the stream itself, so plain CSV URLs work too.
type HTTPLoader struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPLoader creates a loader that fetches the dataset from url.
func NewHTTPLoader(url string, timeout time.Duration, logger *slog.Logger) *HTTPLoader {
	return &HTTPLoader{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// LoadRecords downloads and parses the dataset.
func (l *HTTPLoader) LoadRecords(ctx context.Context) (Dataset, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Dataset{}, fmt.Errorf("build dataset request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Dataset{}, fmt.Errorf("download dataset: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode != http.StatusOK {
		return Dataset{}, fmt.Errorf("download dataset: unexpected status %d", resp.StatusCode)
	}

	ds, err := decodeCSV(resp.Body)
	if err != nil {
		return Dataset{}, fmt.Errorf("parse %s: %w", l.url, err)
	}

	l.logger.Info("dataset downloaded",
		"url", l.url,
		"records", len(ds.Records),
		"skipped_rows", ds.SkippedRows,
		"duration", time.Since(start),
	)
	return ds, nil
}

// bzip2Magic is the stream header of a bzip2 file.
var bzip2Magic = []byte("BZh")

// maybeDecompress wraps r in a bzip2 reader when the stream carries the
// bzip2 magic bytes, and passes plain streams through untouched.
func maybeDecompress(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(bzip2Magic))
	if err == nil && bytes.Equal(head, bzip2Magic) {
		return bzip2.NewReader(br)
	}
	return br
}
