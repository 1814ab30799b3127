// Package fetcher downloads source pages and files over HTTP with retry,
// politeness rate limiting, and block-page detection.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	// RequestsPerSecond caps the outbound request rate across all hosts.
	// The sources are small public sites; one global limiter is enough.
	RequestsPerSecond float64
	// DebugDir, when set, receives a snapshot of every fetched body.
	DebugDir string
}

// HTTPFetcher implements Client using net/http with bounded retries and
// linear backoff.
type HTTPFetcher struct {
	client  *http.Client
	opts    HTTPOptions
	limiter *rate.Limiter
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "companymaps/1.0"
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 2
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
	}
}

// GetString fetches the URL and returns the body as a string. Retries
// transport errors, 429s, and 5xx responses with linear backoff.
func (f *HTTPFetcher) GetString(ctx context.Context, rawURL string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < f.opts.MaxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "fetcher: rate limiter wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return "", eris.Wrap(err, "fetcher: create request")
		}
		req.Header.Set("User-Agent", f.opts.UserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			zap.L().Warn("http request failed, retrying",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			f.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("fetcher: http %d from %s", resp.StatusCode, rawURL)
			zap.L().Warn("retryable status, backing off",
				zap.String("url", rawURL),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			f.backoff(ctx, attempt)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			f.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return "", eris.Errorf("fetcher: unexpected status %d from %s", resp.StatusCode, rawURL)
		}

		f.snapshot(rawURL, body)
		return string(body), nil
	}

	return "", eris.Wrapf(lastErr, "fetcher: all %d attempts failed for %s", f.opts.MaxRetries, rawURL)
}

// backoff sleeps linearly in the attempt number, honoring cancellation.
func (f *HTTPFetcher) backoff(ctx context.Context, attempt int) {
	t := time.NewTimer(time.Duration(attempt+1) * time.Second)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

var unsafePathRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// snapshot writes the fetched body to the debug directory, if configured.
func (f *HTTPFetcher) snapshot(rawURL string, body []byte) {
	if f.opts.DebugDir == "" {
		return
	}
	if err := os.MkdirAll(f.opts.DebugDir, 0o755); err != nil {
		zap.L().Warn("debug snapshot: mkdir failed", zap.Error(err))
		return
	}
	name := unsafePathRe.ReplaceAllString(rawURL, "_")
	if len(name) > 180 {
		name = name[:180]
	}
	if err := os.WriteFile(filepath.Join(f.opts.DebugDir, name), body, 0o644); err != nil {
		zap.L().Warn("debug snapshot: write failed", zap.Error(err))
	}
}

// LooksLikeHTML reports whether the body is an HTML document. Used to
// detect sources returning an error page instead of the expected CSV.
func LooksLikeHTML(body string) bool {
	t := strings.ToLower(strings.TrimSpace(body))
	if strings.HasPrefix(t, "<!doctype") || strings.HasPrefix(t, "<html") {
		return true
	}
	head := t
	if len(head) > 800 {
		head = head[:800]
	}
	return strings.Contains(head, "<html")
}

// LooksLikeBlockPage reports whether the body is a bot-mitigation
// interstitial rather than real content.
func LooksLikeBlockPage(body string) bool {
	t := strings.ToLower(body)
	return strings.Contains(t, "cloudflare") ||
		strings.Contains(t, "just a moment") ||
		strings.Contains(t, "attention required")
}
