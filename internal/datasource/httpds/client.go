// Package httpds implements an HTTP data source with retry/backoff, used when
// the layoffs CSV is fetched from a published URL rather than a local file.
//
// Transient failures (network errors, 5xx, 429) are retried with exponential
// backoff; context cancellation is respected during both requests and waits.
// The sleep function is injectable so tests stay fast and deterministic.
package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config configures the HTTP data source. Zero values get defaults:
// Timeout 30s, InitialBackoff 200ms, MaxBackoff 5s. MaxRetries 0 means a
// single attempt.
type Config struct {
	URL            string
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Transport is an optional custom RoundTripper for tests.
	Transport http.RoundTripper
}

// Remote fetches the dataset over HTTP(S).
type Remote struct {
	url            string
	client         *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration

	// sleep is injectable to make tests fast and deterministic.
	sleep func(time.Duration)
}

// NewRemote constructs a Remote source from Config, applying defaults for
// zero values.
func NewRemote(cfg Config) *Remote {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	return &Remote{
		url:            cfg.URL,
		client:         &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		sleep:          time.Sleep,
	}
}

// Open performs the GET, retrying retryable failures, and returns the response
// body for streaming. The caller owns closing it.
func (r *Remote) Open(ctx context.Context) (io.ReadCloser, error) {
	backoff := r.initialBackoff
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			r.sleep(backoff)
			backoff *= 2
			if backoff > r.maxBackoff {
				backoff = r.maxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
		if err != nil {
			return nil, fmt.Errorf("httpds: build request: %w", err)
		}
		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode == http.StatusOK {
			return resp.Body, nil
		}
		lastErr = fmt.Errorf("httpds: GET %s: %s", r.url, resp.Status)
		resp.Body.Close()
		if !retryable(resp.StatusCode) {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("httpds: giving up after %d attempts: %w", r.maxRetries+1, lastErr)
}

// retryable reports whether a status code is worth another attempt.
func retryable(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}
