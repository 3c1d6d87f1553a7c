// Package fetch defines the content-fetcher contract used by the exploration
// engine and provides the default HTTP implementation.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/codeGROOVE-dev/gumshoe/auth"
)

// UserAgent is sent with every page request.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:146.0) Gecko/20100101 Firefox/146.0"

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 1 << 20

// Status classifies the outcome of a fetch.
type Status string

// Fetch outcomes.
const (
	StatusOK      Status = "ok"
	StatusTimeout Status = "timeout"
	StatusError   Status = "error"
)

// Result is the outcome of one page fetch.
type Result struct {
	Status Status
	Text   string
}

// Fetcher retrieves page content. The engine depends only on this contract;
// transport and rendering are implementation concerns.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Result, error)
}

// Client is the default HTTP fetcher: retrying, optionally caching, optionally
// authenticated via cookie sources, with an SSRF guard on every URL.
type Client struct {
	httpClient *http.Client
	cache      Cacher
	cookies    auth.Source
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*config)

//nolint:govet // fieldalignment: intentional layout for readability
type config struct {
	cache   Cacher
	cookies auth.Source
	logger  *slog.Logger
}

// WithCache sets the response cache.
func WithCache(cache Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithCookieSource sets a cookie source for authenticated pages.
func WithCookieSource(src auth.Source) Option {
	return func(c *config) { c.cookies = src }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New creates the default HTTP fetcher. The per-request deadline comes from
// the caller's context; the transport itself only caps connection setup.
func New(opts ...Option) *Client {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		cache:   cfg.cache,
		cookies: cfg.cookies,
		logger:  cfg.logger,
	}
}

// Fetch retrieves a page. Timeouts and transport errors are reported in the
// Result status as well as the error, so callers can record the gap without
// inspecting error types.
func (c *Client) Fetch(ctx context.Context, rawURL string) (Result, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	if err := validateURL(rawURL); err != nil {
		return Result{Status: StatusError}, err
	}

	c.logger.DebugContext(ctx, "fetching page", "url", rawURL)

	if c.cache != nil {
		return c.fetchCached(ctx, rawURL)
	}

	body, err := c.doFetch(ctx, rawURL)
	if err != nil {
		return Result{Status: classify(err)}, err
	}
	return Result{Status: StatusOK, Text: string(body)}, nil
}

func (c *Client) fetchCached(ctx context.Context, rawURL string) (Result, error) {
	data, err := c.cache.GetSet(ctx, URLToKey(rawURL), func(ctx context.Context) ([]byte, error) {
		c.logger.DebugContext(ctx, "cache miss", "url", rawURL)
		return c.doFetch(ctx, rawURL)
	}, c.cache.TTL())
	if err != nil {
		return Result{Status: classify(err)}, err
	}
	return Result{Status: StatusOK, Text: string(data)}, nil
}

func (c *Client) doFetch(ctx context.Context, rawURL string) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
			if err != nil {
				return nil, err
			}
			req.Header.Set("User-Agent", UserAgent)
			req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
			req.Header.Set("Accept-Language", "en-US,en;q=0.5")
			c.attachCookies(ctx, req)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, err
			}
			defer func() { _ = resp.Body.Close() }() //nolint:errcheck // error ignored intentionally

			if resp.StatusCode != http.StatusOK {
				return nil, &HTTPError{StatusCode: resp.StatusCode, URL: rawURL}
			}
			return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.DebugContext(ctx, "retrying fetch", "attempt", n+1, "url", rawURL, "error", err)
		}),
	)
}

func (c *Client) attachCookies(ctx context.Context, req *http.Request) {
	if c.cookies == nil {
		return
	}
	cookies, err := c.cookies.Cookies(ctx, req.URL.Hostname())
	if err != nil {
		c.logger.DebugContext(ctx, "cookie source failed", "host", req.URL.Hostname(), "error", err)
		return
	}
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

// HTTPError is a non-200 response.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}

// isRetryable returns true for transient failures. 4xx responses other than
// 429 are permanent.
func isRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

func classify(err error) Status {
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StatusTimeout
	}
	return StatusError
}

// validateURL rejects URLs that would let a crafted profile point the fetcher
// at internal infrastructure.
func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return errors.New("blocked: empty host")
	}
	if host == "localhost" || strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return errors.New("blocked: local host")
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return errors.New("blocked: private IP")
		}
	}
	if host == "169.254.169.254" || host == "metadata.google.internal" || host == "metadata.azure.com" {
		return errors.New("blocked: metadata service")
	}

	return nil
}
