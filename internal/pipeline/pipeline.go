// Package pipeline runs the live feed: a ticker-driven loop that draws one
// event per tick from a source and publishes it to every sink.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
	"github.com/couchcryptid/nyc-live-events/internal/observability"
)

const (
	initialBackoff  = 200 * time.Millisecond
	maxBackoff      = 5 * time.Second
	maxSinkAttempts = 4
)

// Source produces the next live event.
type Source interface {
	Next(now time.Time) domain.Event
}

// BatchLoader writes multiple events to a destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.Event) error
}

// Sink is a named destination. Sinks are published to in order, so the
// in-memory ring goes first.
type Sink struct {
	Name   string
	Loader BatchLoader
}

// Config tunes the feed loop.
type Config struct {
	Interval time.Duration // time between live events
	Initial  int           // events published before the first tick
}

// Feed orchestrates the generate-publish loop.
type Feed struct {
	source  Source
	sinks   []Sink
	cfg     Config
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Feed with the given source, sinks and observability.
func New(source Source, sinks []Sink, cfg Config, logger *slog.Logger, metrics *observability.Metrics) *Feed {
	return &Feed{
		source:  source,
		sinks:   sinks,
		cfg:     cfg,
		clock:   domain.Clock(),
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once the feed has published its first events.
func (f *Feed) CheckReadiness(_ context.Context) error {
	if !f.ready.Load() {
		return errors.New("feed has not published any events yet")
	}
	return nil
}

// Run seeds the sinks and then publishes one event per interval until the
// context is cancelled.
func (f *Feed) Run(ctx context.Context) error {
	f.logger.Info("feed started", "interval", f.cfg.Interval, "initial", f.cfg.Initial, "sinks", len(f.sinks))
	f.metrics.FeedRunning.Set(1)
	defer f.metrics.FeedRunning.Set(0)

	if f.cfg.Interval <= 0 {
		return errors.New("feed interval must be positive")
	}

	if !f.publish(ctx, f.seed()) {
		return nil
	}

	ticker := f.clock.NewTicker(f.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("feed stopping", "reason", ctx.Err())
			return nil
		case now := <-ticker.Chan():
			start := f.clock.Now()
			if !f.publish(ctx, []domain.Event{f.source.Next(now)}) {
				return nil
			}
			f.metrics.FeedTickDuration.Observe(f.clock.Since(start).Seconds())
		}
	}
}

// seed generates the initial backlog, spaced one interval apart and ending
// at the current time.
func (f *Feed) seed() []domain.Event {
	now := f.clock.Now()
	events := make([]domain.Event, f.cfg.Initial)
	for i := range events {
		back := time.Duration(f.cfg.Initial-1-i) * f.cfg.Interval
		events[i] = f.source.Next(now.Add(-back))
	}
	return events
}

// publish hands events to every sink. A sink that keeps failing is skipped
// for this batch so the others keep flowing. Returns false if the feed
// should stop.
func (f *Feed) publish(ctx context.Context, events []domain.Event) bool {
	if len(events) == 0 {
		f.ready.Store(true)
		return ctx.Err() == nil
	}
	for _, s := range f.sinks {
		if !f.loadWithRetry(ctx, s, events) {
			return false
		}
	}
	f.metrics.FeedEvents.Add(float64(len(events)))
	f.ready.Store(true)
	return true
}

// loadWithRetry retries a sink with exponential backoff. Returns false only
// when the context was cancelled.
func (f *Feed) loadWithRetry(ctx context.Context, s Sink, events []domain.Event) bool {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		err := s.Loader.LoadBatch(ctx, events)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		f.metrics.FeedSinkErrors.WithLabelValues(s.Name).Inc()
		if attempt >= maxSinkAttempts {
			f.logger.Error("sink failed, dropping events", "sink", s.Name, "error", err, "events", len(events), "attempts", attempt)
			return true
		}
		f.logger.Warn("sink write failed, retrying", "sink", s.Name, "error", err, "backoff", backoff)
		if !sleepWithContext(ctx, f.clock, backoff) {
			return false
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
}

// sleepWithContext waits on the feed clock so fake clocks can drive retries.
func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
