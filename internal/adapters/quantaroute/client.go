// Package quantaroute is the HTTP adapter for the QuantaRoute routing API.
package quantaroute

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"quantaroute-demo/internal/config"
	"quantaroute-demo/internal/domain"
	"quantaroute-demo/internal/platform/metrics"
	"quantaroute-demo/internal/platform/obs"
	"quantaroute-demo/internal/wire"
)

const maxResponseBytes = 32 << 20

// Client implements ports.RoutingBackend. It is safe for concurrent use.
type Client struct {
	session  *http.Client
	settings config.Backend
	backoff  time.Duration
}

func NewClient(settings config.Backend) (*Client, error) {
	if settings.BaseURL == "" {
		return nil, errors.New("quantaroute base URL is empty")
	}
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		session:  &http.Client{Timeout: timeout},
		settings: settings,
		backoff:  200 * time.Millisecond,
	}, nil
}

func (c *Client) Route(ctx context.Context, req wire.RouteRequest) ([]byte, error) {
	return c.post(ctx, "route", "/routing", req)
}

func (c *Client) Alternatives(ctx context.Context, req wire.AlternativesRequest) ([]byte, error) {
	return c.post(ctx, "alternatives", "/routing/alternatives", req)
}

func (c *Client) Optimized(ctx context.Context, req wire.OptimizedRequest) ([]byte, error) {
	return c.post(ctx, "optimized", "/routing/optimized", req)
}

// post sends one routing request. A 404 means the backend found no route
// for the profile and comes back as *domain.NoRouteError with the
// backend's message.
func (c *Client) post(ctx context.Context, endpoint, path string, payload any) (_ []byte, err error) {
	defer obs.Time(ctx, "quantaroute."+endpoint)(&err)
	start := time.Now()
	defer func() {
		metrics.BackendDurationMs.WithLabelValues(endpoint).Observe(float64(time.Since(start).Milliseconds()))
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, outcome(err)).Inc()
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", endpoint, err)
	}

	url := c.settings.BaseURL + path
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("quantaroute %s: %w", endpoint, &domain.NoRouteError{Detail: se.Detail})
		}
		return nil, fmt.Errorf("quantaroute %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("quantaroute %s: read body: %w", endpoint, err)
	}
	return b, nil
}

// Health queries the unversioned /health endpoint once, without retries.
func (c *Client) Health(ctx context.Context) (_ wire.HealthResponse, err error) {
	defer obs.Time(ctx, "quantaroute.health")(&err)

	req, err := c.newRequest(ctx, http.MethodGet, c.settings.HealthURL(), nil)
	if err != nil {
		return wire.HealthResponse{}, err
	}
	resp, err := c.do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues("health", outcome(err)).Inc()
		return wire.HealthResponse{}, fmt.Errorf("quantaroute health: %w", err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestsTotal.WithLabelValues("health", "ok").Inc()

	var h wire.HealthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&h); err != nil {
		return wire.HealthResponse{}, fmt.Errorf("quantaroute health: decode: %w", err)
	}
	return h, nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var se *StatusError
	if errors.As(err, &se) {
		return strconv.Itoa(se.Code)
	}
	if errors.Is(err, domain.ErrNoRouteForProfile) {
		return "404"
	}
	return "error"
}
