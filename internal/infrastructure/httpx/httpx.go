package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	infraconfig "fxrates-watch/internal/infrastructure/config"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// StatusError is returned for an unexpected HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

// Retryable reports whether the status is worth another attempt (429 or 5xx).
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

type Client struct {
	HTTP      *http.Client
	Log       *zap.Logger
	UserAgent string
	// BackoffUnit is the wait before the first retry; each further retry doubles it.
	BackoffUnit time.Duration
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

func (c *Client) newBackOff(ctx context.Context, retries int) backoff.BackOff {
	unit := c.BackoffUnit
	if unit <= 0 {
		unit = infraconfig.DefaultBackoffUnit
	}
	if retries < 0 {
		retries = 0
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = unit
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = unit << uint(retries)
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// GetJSON issues a GET and decodes a 200 response into out, making up to
// retries additional attempts on network errors, 429 and 5xx. Other statuses
// and undecodable bodies fail on the spot.
func (c *Client) GetJSON(ctx context.Context, url string, retries int, out any) error {
	log := c.logger().With(zap.String("url", url))
	attempts, permanent := 0, false
	fail := func(err error) error {
		permanent = true
		return backoff.Permanent(err)
	}
	op := func() error {
		attempts++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fail(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		c.setUserAgent(req)

		resp, err := c.httpClient().Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, resp.Body)
			se := &StatusError{Code: resp.StatusCode}
			if se.Retryable() {
				return se
			}
			return fail(se)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fail(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("http_retry", zap.Int("attempt", attempts), zap.Duration("wait", wait), zap.Error(err))
	}

	err := backoff.RetryNotify(op, c.newBackOff(ctx, retries), notify)
	if err == nil || permanent {
		return err
	}
	return fmt.Errorf("gave up after %d attempts: %w", attempts, err)
}

// PostJSON sends body as JSON once. Any non-2xx status is an error.
func (c *Client) PostJSON(ctx context.Context, url string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setUserAgent(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func (c *Client) setUserAgent(req *http.Request) {
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
}
