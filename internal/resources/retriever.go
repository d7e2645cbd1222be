package resources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// Retriever fetches the bytes behind a remote address.
type Retriever interface {
	Retrieve(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// ContentRetriever performs every byte-level read needed to embed assets.
type ContentRetriever interface {
	Retriever
	// Download populates the cache destination of a remote asset.
	// It does nothing for local assets or when the file is already cached.
	Download(ctx context.Context, a *Asset) error
	// Read returns the content of the file at path.
	Read(path string) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ ContentRetriever = (*Handler)(nil)
	_ Retriever        = (*HTTPRetriever)(nil)
)

// Handler layers caching downloads and file reads on top of a Retriever.
type Handler struct {
	Retriever
	logger *zap.Logger
}

// NewHandler returns a Handler fetching through r. A nil logger is replaced
// by a no-op logger.
func NewHandler(r Retriever, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Retriever: r, logger: logger}
}

// Download fetches a remote asset into its cache location.
func (h *Handler) Download(ctx context.Context, a *Asset) error {
	if !a.IsRemote() {
		return nil
	}
	if fileutil.FileExists(a.LocationOnDisk) {
		h.logger.Debug("asset already cached",
			zap.String("url", a.URL.String()),
			zap.String("path", a.LocationOnDisk))
		return nil
	}

	h.logger.Debug("downloading asset",
		zap.String("url", a.URL.String()),
		zap.String("path", a.LocationOnDisk))

	body, err := h.Retrieve(ctx, a.URL.String())
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	if err := os.MkdirAll(filepath.Dir(a.LocationOnDisk), 0o750); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	err = fileutil.WriteAtomic(a.LocationOnDisk, fileutil.FilePermissions, func(w io.Writer) error {
		_, err := io.Copy(w, body)
		return err
	})
	if err != nil {
		return fmt.Errorf("caching %s: %w", a.URL, err)
	}
	return nil
}

// Read returns the bytes of the file at path.
func (h *Handler) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the resolved asset table
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return data, nil
}

// DefaultTimeout bounds a single remote fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the client to remote servers.
const DefaultUserAgent = "md2epub"

// HTTPRetriever fetches remote assets over HTTP(S).
type HTTPRetriever struct {
	client    *http.Client
	userAgent string
}

// HTTPOption configures an HTTPRetriever.
type HTTPOption func(*HTTPRetriever)

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(r *HTTPRetriever) {
		if c != nil {
			r.client = c
		}
	}
}

// WithTimeout sets the per-request timeout.
// Panics if d is not positive.
func WithTimeout(d time.Duration) HTTPOption {
	if d <= 0 {
		panic("resources: timeout must be positive")
	}
	return func(r *HTTPRetriever) {
		r.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(r *HTTPRetriever) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// NewHTTPRetriever returns an HTTPRetriever with a 30s timeout.
func NewHTTPRetriever(opts ...HTTPOption) *HTTPRetriever {
	r := &HTTPRetriever{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve issues a GET for rawURL. Only 200 yields a body; 404 maps to
// ErrRemoteNotFound and any other status to ErrUnexpectedStatus.
func (r *HTTPRetriever) Retrieve(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrRemoteNotFound, rawURL)
	default:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, rawURL, resp.StatusCode)
	}
}
