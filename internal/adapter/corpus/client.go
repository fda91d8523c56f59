// Package corpus loads the public NYC events corpus, a static JSON array of
// scraped listings, and carries a small embedded dataset used when the corpus
// cannot be reached.
package corpus

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
	"github.com/couchcryptid/nyc-live-events/internal/ingest"
	"github.com/couchcryptid/nyc-live-events/internal/observability"
)

// Source labels this loader in metrics and snapshots.
const Source = "corpus"

// DefaultURL is the published corpus file.
const DefaultURL = "https://raw.githubusercontent.com/ek4536/Nycliveevents/main/all_events_complete_cleaned.json"

// DefaultTimeout bounds a corpus download.
const DefaultTimeout = 10 * time.Second

//go:embed seed_events.json
var seedJSON []byte

// Client downloads and maps the corpus.
type Client struct {
	url        string
	httpClient *http.Client
	mapper     *ingest.Mapper
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a corpus client. An empty url uses DefaultURL and a
// non-positive timeout uses DefaultTimeout.
func NewClient(url string, timeout time.Duration, mapper *ingest.Mapper, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		mapper:     mapper,
		logger:     logger,
		metrics:    metrics,
	}
}

// Fetch downloads the corpus and maps every record. It returns the events
// newest first and the number of records skipped for lacking a location.
func (c *Client) Fetch(ctx context.Context) ([]domain.Event, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("corpus request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, 0, fmt.Errorf("corpus fetch error: status %d: %s", resp.StatusCode, body)
	}

	var records []ingest.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, 0, fmt.Errorf("decode corpus: %w", err)
	}

	events := make([]domain.Event, 0, len(records))
	skipped := 0
	for i, r := range records {
		e, ok := c.mapper.FromCorpus(i, r)
		if !ok {
			skipped++
			continue
		}
		events = append(events, e)
	}
	domain.SortByTime(events, false)
	return events, skipped, nil
}

// Seed maps the embedded dataset, newest first.
func (c *Client) Seed() []domain.Event {
	var records []ingest.Record
	if err := json.Unmarshal(seedJSON, &records); err != nil {
		// The dataset is compiled in; a decode failure is a build defect.
		panic(fmt.Sprintf("decode embedded seed events: %v", err))
	}
	events := make([]domain.Event, 0, len(records))
	for _, r := range records {
		if e, ok := c.mapper.FromSeed(r); ok {
			events = append(events, e)
		}
	}
	domain.SortByTime(events, false)
	return events
}

// Load fetches the corpus, falling back to the embedded dataset when the
// download fails or yields nothing.
func (c *Client) Load(ctx context.Context) []domain.Event {
	start := time.Now()
	events, skipped, err := c.Fetch(ctx)
	c.metrics.LoaderDuration.WithLabelValues(Source).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.LoaderRequests.WithLabelValues(Source, "error").Inc()
		c.logger.Warn("corpus unavailable, using embedded seed events", "url", c.url, "error", err)
		return c.Seed()
	case len(events) == 0:
		c.metrics.LoaderRequests.WithLabelValues(Source, "empty").Inc()
		c.metrics.CorpusSkipped.Add(float64(skipped))
		c.logger.Warn("corpus empty, using embedded seed events", "skipped", skipped)
		return c.Seed()
	}

	c.metrics.LoaderRequests.WithLabelValues(Source, "success").Inc()
	c.metrics.CorpusSkipped.Add(float64(skipped))
	c.logger.Info("loaded events from corpus", "count", len(events), "skipped", skipped)
	return events
}
