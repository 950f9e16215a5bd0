// Package corrector sends photo captions to an external spelling-correction
// webhook in one batch. Any failure falls back to the original captions.
package corrector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// Batch maps service name to photo ID to caption.
type Batch = map[string]map[string]string

const (
	DefaultTimeout      = 120 * time.Second
	DefaultRetryMax     = 2
	DefaultRetryWaitMin = time.Second
	DefaultRetryWaitMax = 10 * time.Second

	maxResponseSize = 32 << 20
)

// Config configures a Client. An empty URL disables correction.
type Config struct {
	URL          string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client corrects caption batches.
type Client struct {
	url     string
	timeout time.Duration
	http    *retryablehttp.Client
	breaker Transport
	logger  zerolog.Logger
}

// New returns a Client with a retrying, circuit-breaked transport.
func New(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = DefaultRetryWaitMin
	}
	if cfg.RetryWaitMax < cfg.RetryWaitMin {
		cfg.RetryWaitMax = max(DefaultRetryWaitMax, cfg.RetryWaitMin)
	}

	tr := TransportWithCircuitBreaker(gobreaker.Settings{
		Name:    "corrector",
		Timeout: cfg.Timeout,
	}, nil)

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Transport: tr}
	rc.Logger = leveledLogger{logger}
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return false, err
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return &Client{url: cfg.URL, timeout: cfg.Timeout, http: rc, breaker: tr, logger: logger}
}

// Correct returns the corrected batch. The whole exchange, retries included,
// is bounded by the configured timeout. On any failure the input batch is
// returned unchanged.
func (c *Client) Correct(ctx context.Context, batch Batch) Batch {
	if c.url == "" {
		c.logger.Warn().Msg("correction webhook not configured, keeping original captions")
		return batch
	}
	if len(batch) == 0 {
		return batch
	}

	out, err := c.correct(ctx, batch)
	if err != nil {
		c.logger.Warn().Err(err).Str("state", c.breaker.State().String()).Msg("caption correction failed, keeping original captions")
		return batch
	}
	c.logger.Info().Int("services", len(out)).Msg("captions corrected")
	return out
}

func (c *Client) correct(ctx context.Context, batch Batch) (Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info().Int("services", len(batch)).Msg("sending captions for correction")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("post %s: %s", c.url, resp.Status)
	}
	return decode(io.LimitReader(resp.Body, maxResponseSize))
}

// decode accepts only a JSON object of objects of strings.
func decode(r io.Reader) (Batch, error) {
	var out Batch
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out == nil {
		return nil, errors.New("decode response: empty document")
	}
	for svc, captions := range out {
		if captions == nil {
			return nil, fmt.Errorf("decode response: service %q has no captions object", svc)
		}
	}
	return out, nil
}
