//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/nyc-live-events/internal/adapter/kafka"
	"github.com/couchcryptid/nyc-live-events/internal/config"
	"github.com/couchcryptid/nyc-live-events/internal/domain"
	"github.com/couchcryptid/nyc-live-events/internal/feed"
	"github.com/couchcryptid/nyc-live-events/internal/observability"
	"github.com/couchcryptid/nyc-live-events/internal/pipeline"
	"github.com/couchcryptid/nyc-live-events/internal/synth"
)

const testFeedTopic = "test-live-events"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("nyc-live-events"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}))
}

// feedMessage holds a deserialized message read from the feed topic.
type feedMessage struct {
	Event   domain.Event
	Key     string
	Headers map[string]string
}

func readFeed(ctx context.Context, t *testing.T, consumer *kafkago.Reader) feedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from feed topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var event domain.Event
	require.NoError(t, json.Unmarshal(msg.Value, &event), "unmarshal feed message")
	return feedMessage{Event: event, Key: string(msg.Key), Headers: headers}
}

// TestFeedPublishesToKafka wires the live feed (synthesizer -> ring -> Kafka)
// against a real broker and checks every seeded and ticked event arrives.
func TestFeedPublishesToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testFeedTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaFeedTopic: testFeedTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	ring := feed.NewRing(1000)
	src := synth.New(synth.Config{Seed: 11, Location: time.UTC})
	f := pipeline.New(src,
		[]pipeline.Sink{{Name: "ring", Loader: ring}, {Name: kafka.SinkName, Loader: writer}},
		pipeline.Config{Interval: 200 * time.Millisecond, Initial: 5},
		discardLogger(), observability.NewMetricsForTesting())

	feedCtx, feedCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- f.Run(feedCtx) }()

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testFeedTopic,
		GroupID:     fmt.Sprintf("test-feed-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	const want = 8
	received := make([]feedMessage, 0, want)
	for len(received) < want {
		received = append(received, readFeed(ctx, t, consumer))
	}

	feedCancel()
	require.NoError(t, <-errCh)

	inRing := map[string]bool{}
	for _, e := range ring.Snapshot() {
		inRing[e.ID] = true
	}
	for _, fm := range received {
		assert.Equal(t, fm.Event.ID, fm.Key)
		assert.Equal(t, string(fm.Event.Category), fm.Headers["category"])
		assert.Equal(t, string(fm.Event.Borough), fm.Headers["borough"])
		_, err := time.Parse(time.RFC3339, fm.Headers["published_at"])
		assert.NoError(t, err, "published_at should be valid RFC3339")

		assert.True(t, fm.Event.Category.Valid())
		c, ok := fm.Event.Coordinates()
		require.True(t, ok)
		assert.True(t, domain.BoundsOf(fm.Event.Borough).Contains(c, 0))
		assert.True(t, inRing[fm.Event.ID], "kafka event %s missing from ring", fm.Event.ID)
	}
}
