package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quantfra/stockhub/internal/config"
	"github.com/quantfra/stockhub/internal/metrics"
)

// Client talks to the market data provider service over HTTP. Requests
// that fail with a 5xx or a transport error are retried up to
// MaxRetries times with a fixed delay.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

func NewClient(cfg config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.ProviderURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		maxRetries: cfg.MaxRetries,
		retryDelay: time.Duration(cfg.RetryDelaySeconds * float64(time.Second)),
	}
}

// GetHistory fetches daily bars for symbol over [start, end].
func (c *Client) GetHistory(ctx context.Context, symbol string, start, end time.Time) (*HistoryResponse, error) {
	path := fmt.Sprintf("/api/history/%s?start=%s&end=%s",
		url.PathEscape(strings.ToUpper(symbol)),
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	var result HistoryResponse
	if err := c.getJSON(ctx, "history", path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProfile fetches the company profile for symbol.
func (c *Client) GetProfile(ctx context.Context, symbol string) (*ProfileResponse, error) {
	path := "/api/profile/" + url.PathEscape(strings.ToUpper(symbol))

	var result ProfileResponse
	if err := c.getJSON(ctx, "profile", path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HealthCheck probes the provider's health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	var result HealthResponse
	return c.getJSON(ctx, "health", "/health", &result)
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, result any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		retryable, err := c.doOnce(ctx, endpoint, path, result)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return lastErr
}

// doOnce performs a single request. retryable reports whether the
// failure is worth another attempt.
func (c *Client) doOnce(ctx context.Context, endpoint, path string, result any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordProviderRequest(endpoint, "transport_error")
		return true, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordProviderRequest(endpoint, "read_error")
		return true, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode >= 400 {
		outcome := fmt.Sprintf("http_%d", resp.StatusCode)
		metrics.RecordProviderRequest(endpoint, outcome)

		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			err = fmt.Errorf("provider error (%d): %s", resp.StatusCode, errResp.Error)
		} else {
			err = fmt.Errorf("provider error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return resp.StatusCode >= 500, err
	}

	if err := json.Unmarshal(body, result); err != nil {
		metrics.RecordProviderRequest(endpoint, "decode_error")
		return false, fmt.Errorf("failed to decode provider response: %w", err)
	}
	metrics.RecordProviderRequest(endpoint, "success")
	return false, nil
}
