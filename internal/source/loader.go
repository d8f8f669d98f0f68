package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	pkgsource "github.com/goliatone/go-scriptgen/pkg/source"
)

// Loader implements pkgsource.Loader by delegating to literal, file, fs.FS,
// or HTTP strategies. Construction helpers live in the top-level scriptgen
// package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ pkgsource.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgsource.LoaderOptions) pkgsource.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches template text from the provided source.
func (l *Loader) Load(ctx context.Context, src pkgsource.Source) (string, error) {
	if src == nil {
		return "", errors.New("source loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch src.Kind() {
	case pkgsource.SourceKindLiteral:
		return src.Location(), nil
	case pkgsource.SourceKindFile:
		return l.loadFile(src.Location())
	case pkgsource.SourceKindFS:
		return l.loadFS(src.Location())
	case pkgsource.SourceKindURL:
		if !l.allowHTTP {
			return "", errors.New("source loader: http support disabled")
		}
		return l.loadHTTP(ctx, src.Location())
	default:
		return "", errors.New("source loader: unsupported source kind")
	}
}

func (l *Loader) loadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("source loader: read %s: %w", path, err)
	}
	return string(data), nil
}

func (l *Loader) loadFS(name string) (string, error) {
	if l.fs == nil {
		return "", errors.New("source loader: no filesystem configured")
	}
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return "", fmt.Errorf("source loader: read %s: %w", name, err)
	}
	return string(data), nil
}

func (l *Loader) loadHTTP(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("source loader: build request for %s: %w", rawURL, err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("source loader: fetch %s: %w", rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("source loader: fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("source loader: read body of %s: %w", rawURL, err)
	}
	return string(data), nil
}
