// Command eventsd serves the NYC live events API: a refreshed event snapshot
// (remote API, corpus, or synthetic history), a ticking live feed, and
// analytics over both.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	_ "time/tzdata"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/nyc-live-events/internal/adapter/corpus"
	"github.com/couchcryptid/nyc-live-events/internal/adapter/eventsapi"
	httpadapter "github.com/couchcryptid/nyc-live-events/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/nyc-live-events/internal/adapter/kafka"
	"github.com/couchcryptid/nyc-live-events/internal/adapter/mapbox"
	"github.com/couchcryptid/nyc-live-events/internal/config"
	"github.com/couchcryptid/nyc-live-events/internal/domain"
	"github.com/couchcryptid/nyc-live-events/internal/feed"
	"github.com/couchcryptid/nyc-live-events/internal/ingest"
	"github.com/couchcryptid/nyc-live-events/internal/observability"
	"github.com/couchcryptid/nyc-live-events/internal/pipeline"
	"github.com/couchcryptid/nyc-live-events/internal/provider"
	"github.com/couchcryptid/nyc-live-events/internal/synth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	loc := synth.LoadLocation(cfg.SynthTimezone)
	generator := synth.New(synth.Config{Seed: cfg.SynthSeed, Location: loc})
	mapper := ingest.NewMapper(domain.NewRand(0), loc)

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	opts := provider.Options{
		API:            eventsapi.NewClient(cfg.EventsAPIURL, cfg.EventsAPITimeout, mapper, logger, metrics),
		Synth:          generator,
		HistoryHours:   cfg.SynthHistoryHours,
		MergeSynthetic: cfg.SynthMerge,
		Geocoder:       geocoder,
		Interval:       cfg.RefreshInterval,
	}
	if cfg.CorpusEnabled {
		opts.Corpus = corpus.NewClient(cfg.CorpusURL, cfg.CorpusTimeout, mapper, logger, metrics)
	}
	events := provider.New(opts, logger, metrics)

	ring := feed.NewRing(cfg.FeedCapacity)
	sinks := []pipeline.Sink{{Name: "ring", Loader: ring}}
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, pipeline.Sink{Name: kafkaadapter.SinkName, Loader: writer})
		logger.Info("kafka feed sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaFeedTopic)
	}
	live := pipeline.New(generator, sinks, pipeline.Config{Interval: cfg.FeedInterval, Initial: cfg.FeedInitial}, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Snapshots: events,
		Feed:      ring,
		Synth:     generator,
		Ready:     httpadapter.AllReady(events, live),
		Location:  loc,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	var wg sync.WaitGroup
	wg.Add(2)

	// Start snapshot refresh.
	go func() {
		defer wg.Done()
		if err := events.Run(ctx); err != nil {
			logger.Error("provider error", "error", err)
		}
	}()

	// Start live feed.
	go func() {
		defer wg.Done()
		if err := live.Run(ctx); err != nil {
			logger.Error("feed error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	wg.Wait()
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
