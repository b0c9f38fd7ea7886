package binary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "sprint-install/1.0"
	// maxRedirects bounds redirect chains (release assets redirect to a CDN)
	maxRedirects = 10
)

// ErrNotFound is returned when the server answers 404.
var ErrNotFound = errors.New("not found")

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.Code, e.URL)
}

// Is makes a 404 StatusError match ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// NewHTTPClient returns the client used for every outbound request.
// A non-positive timeout selects DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

// Downloader handles HTTP downloads. It makes a single attempt per call.
type Downloader struct {
	client    *http.Client
	tokens    oauth2.TokenSource
	userAgent string
}

// NewDownloader creates a new downloader. When tokens is non-nil its token
// is sent as a bearer Authorization header on every request; net/http drops
// the header when a redirect leaves the original host.
func NewDownloader(client *http.Client, tokens oauth2.TokenSource) *Downloader {
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}
	return &Downloader{
		client:    client,
		tokens:    tokens,
		userAgent: DefaultUserAgent,
	}
}

// SetUserAgent overrides the User-Agent header.
func (d *Downloader) SetUserAgent(ua string) {
	if ua != "" {
		d.userAgent = ua
	}
}

// DownloadToFile downloads a URL to a specific file path.
// The body is written to destPath+".tmp" and renamed into place, so destPath
// never holds a partial download.
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)
	if d.tokens != nil {
		tok, err := d.tokens.Token()
		if err != nil {
			return fmt.Errorf("get access token: %w", err)
		}
		tok.SetAuthHeader(req)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: url, Code: resp.StatusCode}
	}

	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("copy response body: %w", err)
	}

	// Close temp file before rename
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}

// StaticToken returns a token source for a fixed access token, or nil when
// token is empty.
func StaticToken(token string) oauth2.TokenSource {
	if token == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}
