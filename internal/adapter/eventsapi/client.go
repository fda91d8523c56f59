// Package eventsapi loads events from the companion events API. The API is
// optional: Load turns every failure into an empty result so callers can fall
// through to the next source.
package eventsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
	"github.com/couchcryptid/nyc-live-events/internal/ingest"
	"github.com/couchcryptid/nyc-live-events/internal/observability"
)

// Source labels this loader in metrics and snapshots.
const Source = "api"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 3 * time.Second

// Client fetches events from GET <baseURL>/events.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	mapper     *ingest.Mapper
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an events API client. A non-positive timeout uses
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, mapper *ingest.Mapper, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		mapper:     mapper,
		logger:     logger,
		metrics:    metrics,
	}
}

// Fetch performs one request and maps the payload. It fails on transport
// errors, timeouts, non-2xx statuses, and malformed bodies. Events with a
// repeated id keep their first occurrence.
func (c *Client) Fetch(ctx context.Context) ([]domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("events request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("events API error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	records, err := decode(body)
	if err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		e := c.mapper.FromAPI(r)
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		events = append(events, e)
	}
	return events, nil
}

// decode accepts either a bare array of records or {"events": [...]}.
func decode(body []byte) ([]ingest.Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("decode response: empty body")
	}
	switch trimmed[0] {
	case '[':
		var records []ingest.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return records, nil
	case '{':
		var wrapped struct {
			Events []ingest.Record `json:"events"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return wrapped.Events, nil
	default:
		return nil, fmt.Errorf("decode response: unexpected body starting with %q", trimmed[0])
	}
}

// Load fetches events, returning an empty slice on any failure. Failures are
// logged at debug level only.
func (c *Client) Load(ctx context.Context) []domain.Event {
	start := time.Now()
	events, err := c.Fetch(ctx)
	c.metrics.LoaderDuration.WithLabelValues(Source).Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.LoaderRequests.WithLabelValues(Source, "error").Inc()
		c.logger.Debug("events API unavailable", "url", c.baseURL, "error", err)
		return []domain.Event{}
	}
	if len(events) == 0 {
		c.metrics.LoaderRequests.WithLabelValues(Source, "empty").Inc()
		return events
	}
	c.metrics.LoaderRequests.WithLabelValues(Source, "success").Inc()
	c.logger.Info("loaded events from API", "count", len(events))
	return events
}
