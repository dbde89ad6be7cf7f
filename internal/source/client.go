// SPDX-License-Identifier: MIT

// Package source fetches provider payloads, preferring local snapshot
// files and falling back to remote feed URLs.
package source

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ManuGH/sportfeed/internal/metrics"
)

// maxFeedSize caps a single feed payload. The real feeds are a few hundred
// kilobytes; anything near this limit is a broken or hostile upstream.
const maxFeedSize = 20 << 20

// Client is a rate-limited HTTP fetcher for feed payloads.
type Client struct {
	http       *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
	backoff    time.Duration
	maxBackoff time.Duration
	rnd        *rand.Rand
	mu         sync.Mutex
}

// Options configures the fetch client behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	MaxRetries int
	Backoff    time.Duration
	MaxBackoff time.Duration
	Rate       rate.Limit
	Burst      int
}

const (
	defaultTimeout    = 12 * time.Second
	defaultRetries    = 2
	defaultBackoff    = 200 * time.Millisecond
	defaultMaxBackoff = 2 * time.Second
	defaultRate       = 2
	defaultBurst      = 4
)

// NewClient creates a new feed fetch client.
func NewClient(opts Options) *Client {
	nopts := normalizeOptions(opts)
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &Client{
		http: &http.Client{
			Timeout:   nopts.Timeout,
			Transport: transport,
		},
		limiter:    rate.NewLimiter(nopts.Rate, nopts.Burst),
		userAgent:  nopts.UserAgent,
		maxRetries: nopts.MaxRetries,
		backoff:    nopts.Backoff,
		maxBackoff: nopts.MaxBackoff,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- jitter only
	}
}

func normalizeOptions(opts Options) Options {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultRetries
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaultBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = defaultMaxBackoff
	}
	if opts.Rate <= 0 {
		opts.Rate = rate.Limit(defaultRate)
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = "Mozilla/5.0"
	}
	return opts
}

// Get fetches rawURL and returns the response body. Transport errors and
// 5xx responses are retried with exponential backoff and jitter; 4xx
// responses fail immediately.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	maxAttempts := c.maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if c.limiter != nil {
			waitStart := time.Now()
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
			metrics.ObserveRatelimitWait(time.Since(waitStart))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)

		retry := (err != nil || resp.StatusCode != http.StatusOK) &&
			attempt < maxAttempts && shouldRetry(resp, err)

		if err == nil && resp.StatusCode == http.StatusOK {
			body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
			_ = resp.Body.Close()
			if readErr != nil {
				return nil, fmt.Errorf("read response: %w", readErr)
			}
			return body, nil
		}

		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("feed returned status %d", resp.StatusCode)
		}

		if !retry {
			break
		}

		wait := c.backoffFor(attempt - 1)
		if err := sleepWithContext(ctx, wait); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return true
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return true
	}
	return false
}

func (c *Client) backoffFor(attempt int) time.Duration {
	wait := c.backoff * time.Duration(1<<attempt)
	if wait > c.maxBackoff {
		wait = c.maxBackoff
	}
	jitter := time.Duration(c.randInt63n(int64(wait/5 + 1)))
	return wait + jitter
}

func (c *Client) randInt63n(n int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rnd.Int63n(n)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
