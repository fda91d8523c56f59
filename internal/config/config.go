package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Remote loaders.
	EventsAPIURL     string
	EventsAPITimeout time.Duration
	CorpusEnabled    bool
	CorpusURL        string // empty selects the corpus client's default
	CorpusTimeout    time.Duration

	// Synthesizer.
	SynthSeed         uint64
	SynthHistoryHours int
	SynthTimezone     string
	SynthMerge        bool

	// Snapshot refresh; zero disables the periodic refresh.
	RefreshInterval time.Duration

	// Live feed.
	FeedInterval time.Duration
	FeedCapacity int
	FeedInitial  int

	// Kafka feed sink; no brokers means the sink is disabled.
	KafkaBrokers   []string
	KafkaFeedTopic string

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// KafkaEnabled reports whether a feed sink should be started.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		EventsAPIURL:    sharedcfg.EnvOrDefault("EVENTS_API_URL", "http://localhost:8000"),
		CorpusURL:       os.Getenv("CORPUS_URL"),
		SynthTimezone:   sharedcfg.EnvOrDefault("SYNTH_TIMEZONE", "America/New_York"),
		KafkaFeedTopic:  sharedcfg.EnvOrDefault("KAFKA_FEED_TOPIC", "nyc-live-events"),
		MapboxToken:     os.Getenv("MAPBOX_TOKEN"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}

	durations := []struct {
		key  string
		def  string
		zero bool
		dst  *time.Duration
	}{
		{"EVENTS_API_TIMEOUT", "3s", false, &cfg.EventsAPITimeout},
		{"CORPUS_TIMEOUT", "10s", false, &cfg.CorpusTimeout},
		{"REFRESH_INTERVAL", "5m", true, &cfg.RefreshInterval},
		{"FEED_INTERVAL", "3s", false, &cfg.FeedInterval},
		{"MAPBOX_TIMEOUT", "5s", false, &cfg.MapboxTimeout},
	}
	for _, d := range durations {
		if *d.dst, err = parseDuration(d.key, d.def, d.zero); err != nil {
			return nil, err
		}
	}

	ints := []struct {
		key string
		def int
		min int
		dst *int
	}{
		{"SYNTH_HISTORY_HOURS", 24, 0, &cfg.SynthHistoryHours},
		{"FEED_CAPACITY", 50, 1, &cfg.FeedCapacity},
		{"FEED_INITIAL", 10, 0, &cfg.FeedInitial},
		{"MAPBOX_CACHE_SIZE", 1000, 1, &cfg.MapboxCacheSize},
	}
	for _, n := range ints {
		if *n.dst, err = parseInt(n.key, n.def, n.min); err != nil {
			return nil, err
		}
	}

	if cfg.SynthSeed, err = parseSeed(); err != nil {
		return nil, err
	}
	if cfg.CorpusEnabled, err = parseBool("CORPUS_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.SynthMerge, err = parseBool("SYNTH_MERGE", false); err != nil {
		return nil, err
	}
	if cfg.MapboxEnabled, err = parseBool("MAPBOX_ENABLED", cfg.MapboxToken != ""); err != nil {
		return nil, err
	}

	if cfg.EventsAPIURL == "" {
		return nil, errors.New("EVENTS_API_URL is required")
	}
	if _, err := time.LoadLocation(cfg.SynthTimezone); err != nil {
		return nil, fmt.Errorf("invalid SYNTH_TIMEZONE: %w", err)
	}
	if cfg.FeedInitial > cfg.FeedCapacity {
		return nil, errors.New("FEED_INITIAL must not exceed FEED_CAPACITY")
	}
	if cfg.KafkaEnabled() && cfg.KafkaFeedTopic == "" {
		return nil, errors.New("KAFKA_FEED_TOPIC is required when KAFKA_BROKERS is set")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func parseDuration(key, def string, allowZero bool) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, def, minimum int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < minimum {
		return 0, fmt.Errorf("invalid %s: must be an integer >= %d", key, minimum)
	}
	return n, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return b, nil
}

func parseSeed() (uint64, error) {
	s := os.Getenv("SYNTH_SEED")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.New("invalid SYNTH_SEED")
	}
	return n, nil
}
