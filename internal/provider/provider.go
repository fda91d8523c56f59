// Package provider owns the event snapshot served by the API. A refresh walks
// the loader chain (remote API, optional corpus, synthesizer) and swaps the
// result in atomically.
package provider

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
	"github.com/couchcryptid/nyc-live-events/internal/observability"
)

// Origin names the loader that produced a snapshot.
type Origin string

const (
	OriginAPI       Origin = "api"
	OriginCorpus    Origin = "corpus"
	OriginSynthetic Origin = "synthetic"
)

// Loader returns events from a remote source, or an empty slice when the
// source is unavailable. It never fails.
type Loader interface {
	Load(ctx context.Context) []domain.Event
}

// History generates synthetic events for the trailing hours before now.
type History interface {
	Historical(now time.Time, hours int) []domain.Event
}

// Snapshot is an immutable set of events, newest first.
type Snapshot struct {
	Events      []domain.Event
	Origin      Origin
	GeneratedAt time.Time
}

// Options configures a Provider. API and Synth are required.
type Options struct {
	API            Loader
	Corpus         Loader // nil skips the corpus step
	Synth          History
	HistoryHours   int
	MergeSynthetic bool            // merge remote results with synthetic history
	Geocoder       domain.Geocoder // nil disables enrichment
	Interval       time.Duration   // zero disables periodic refresh
}

// Provider serves the most recent snapshot and refreshes it in the background.
type Provider struct {
	opts    Options
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	current atomic.Pointer[Snapshot]
}

// New creates a Provider. No snapshot exists until the first Refresh.
func New(opts Options, logger *slog.Logger, metrics *observability.Metrics) *Provider {
	return &Provider{
		opts:    opts,
		clock:   domain.Clock(),
		logger:  logger,
		metrics: metrics,
	}
}

// Current returns the latest snapshot, or false before the first refresh.
func (p *Provider) Current() (*Snapshot, bool) {
	s := p.current.Load()
	return s, s != nil
}

// CheckReadiness returns nil once a snapshot has been published.
func (p *Provider) CheckReadiness(_ context.Context) error {
	if p.current.Load() == nil {
		return errors.New("no event snapshot loaded yet")
	}
	return nil
}

// Refresh runs the loader chain and publishes the first non-empty result.
// The synthesizer always produces something, so Refresh cannot fail.
func (p *Provider) Refresh(ctx context.Context) *Snapshot {
	now := p.clock.Now()

	events, origin := p.load(ctx, now)
	if origin != OriginSynthetic {
		events = p.enrich(ctx, events)
		if p.opts.MergeSynthetic {
			events = domain.MergeByID(events, p.opts.Synth.Historical(now, p.opts.HistoryHours))
		}
	}
	events = slices.Clone(events)
	domain.SortByTime(events, false)

	snap := &Snapshot{Events: events, Origin: origin, GeneratedAt: now}
	p.current.Store(snap)

	for _, o := range []Origin{OriginAPI, OriginCorpus, OriginSynthetic} {
		n := 0
		if o == origin {
			n = len(events)
		}
		p.metrics.SnapshotEvents.WithLabelValues(string(o)).Set(float64(n))
	}
	p.metrics.Refreshes.WithLabelValues(string(origin)).Inc()
	p.logger.Info("event snapshot refreshed", "origin", origin, "count", len(events))
	return snap
}

func (p *Provider) load(ctx context.Context, now time.Time) ([]domain.Event, Origin) {
	if events := p.opts.API.Load(ctx); len(events) > 0 {
		return events, OriginAPI
	}
	if p.opts.Corpus != nil {
		if events := p.opts.Corpus.Load(ctx); len(events) > 0 {
			return events, OriginCorpus
		}
	}
	return p.opts.Synth.Historical(now, p.opts.HistoryHours), OriginSynthetic
}

func (p *Provider) enrich(ctx context.Context, events []domain.Event) []domain.Event {
	if p.opts.Geocoder == nil {
		return events
	}
	out := make([]domain.Event, len(events))
	for i, e := range events {
		out[i] = domain.EnrichWithGeocoding(ctx, e, p.opts.Geocoder, p.logger)
	}
	return out
}

// Run refreshes immediately, then on every interval tick until ctx is done.
func (p *Provider) Run(ctx context.Context) error {
	p.Refresh(ctx)
	if p.opts.Interval <= 0 {
		p.logger.Info("periodic refresh disabled")
		<-ctx.Done()
		return nil
	}

	ticker := p.clock.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("provider stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.Refresh(ctx)
		}
	}
}
