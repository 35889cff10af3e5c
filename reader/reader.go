// Package reader loads document text from local paths or HTTP URLs for
// indexing.
package reader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hupe1980/symgo/core"
)

// FileReader resolves a source string into document text. Sources starting
// with http:// or https:// are fetched; everything else is treated as a
// local file path.
type FileReader struct {
	client *http.Client
}

// FileReaderOptions configures a FileReader.
type FileReaderOptions struct {
	HTTPClient *http.Client
}

// NewFileReader creates a reader using http.DefaultClient for URL sources.
func NewFileReader(optFns ...func(o *FileReaderOptions)) *FileReader {
	opts := FileReaderOptions{HTTPClient: http.DefaultClient}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &FileReader{client: opts.HTTPClient}
}

// Read returns the text behind source. A missing file or a 404 reply yields
// ErrNotFound.
func (r *FileReader) Read(ctx context.Context, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return r.readURL(ctx, source)
	}
	return r.readFile(source)
}

func (r *FileReader) readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file '%s': %w", path, core.ErrNotFound)
		}
		return "", fmt.Errorf("read file '%s': %w", path, err)
	}
	return string(data), nil
}

func (r *FileReader) readURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for '%s': %w", url, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch '%s': %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("url '%s': %w", url, core.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch '%s': unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of '%s': %w", url, err)
	}
	return string(data), nil
}
