// Package fetcher downloads filter-list sources and splits them into lines.
package fetcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"golang.org/x/time/rate"

	"rulesets/config"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxBodySize = 50 * datasize.MB
	initialLineBuffer  = 64 * 1024
)

// ErrBodyTooLarge is returned when a source exceeds the configured size limit.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// Fetcher retrieves one source and returns its lines.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]string, error)
}

// FetchError wraps every failure of a single source.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return "bad status: " + e.Status
}

// HTTPFetcher reads http(s) sources over the network and everything else
// from the local filesystem.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	limiter   *rate.Limiter
}

func New(cfg *config.FetchConfig) *HTTPFetcher {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxBody := cfg.MaxBodySize
	if maxBody == 0 {
		maxBody = defaultMaxBodySize
	}

	f := &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: cfg.UserAgent,
		maxBody:   int64(min(maxBody, config.MaxBodySizeLimit).Bytes()),
	}

	if cfg.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return f
}

// Fetch returns the lines of url. Any failure is returned as *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]string, error) {
	var (
		lines []string
		err   error
	)

	if isLocal(url) {
		lines, err = f.readLocal(strings.TrimPrefix(url, "file://"))
	} else {
		lines, err = f.download(ctx, url)
	}
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return lines, nil
}

func isLocal(url string) bool {
	return strings.HasPrefix(url, "file://") || !strings.HasPrefix(url, "http")
}

func (f *HTTPFetcher) download(ctx context.Context, url string) ([]string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return f.readLines(resp.Body)
}

func (f *HTTPFetcher) readLocal(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return f.readLines(file)
}

// readLines splits r on '\n', dropping a trailing '\r'. One byte past the
// limit is read so a body of exactly maxBody bytes is still accepted.
func (f *HTTPFetcher) readLines(r io.Reader) ([]string, error) {
	limited := &io.LimitedReader{R: r, N: f.maxBody + 1}

	var lines []string
	scanner := bufio.NewScanner(limited)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), int(f.maxBody)+1)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, ErrBodyTooLarge
		}
		return nil, err
	}
	if limited.N == 0 {
		return nil, ErrBodyTooLarge
	}

	return lines, nil
}
