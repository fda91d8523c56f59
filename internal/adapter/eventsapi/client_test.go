package eventsapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
	"github.com/couchcryptid/nyc-live-events/internal/ingest"
	"github.com/couchcryptid/nyc-live-events/internal/observability"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(
		baseURL,
		timeout,
		ingest.NewMapper(domain.NewRand(5), time.UTC),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting(),
	)
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set(headerContentType, contentTypeJSON)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Fetch_BareArray(t *testing.T) {
	srv := serve(t, http.StatusOK, `[
		{"id": "a", "title": "Jazz at Smalls", "category": "Music", "borough": "Manhattan", "timestamp": "2025-11-28T20:00:00Z"},
		{"id": "b", "name": "Night Market", "location": {"borough": "Queens"}}
	]`)

	events, err := testClient(srv.URL, time.Second).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, domain.CategoryMusic, events[0].Category)
	assert.Equal(t, domain.Queens, events[1].Borough)
}

func TestClient_Fetch_WrappedObject(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"events": [{"id": "x", "title": "Yoga"}]}`)

	events, err := testClient(srv.URL, time.Second).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "x", events[0].ID)
}

func TestClient_Fetch_ObjectWithoutEvents(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"status": "ok"}`)

	events, err := testClient(srv.URL, time.Second).Fetch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestClient_Fetch_DuplicateIDsKeepFirst(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"id": "d", "title": "first"}, {"id": "d", "title": "second"}, {"id": "e"}]`)

	events, err := testClient(srv.URL, time.Second).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].Title)
}

func TestClient_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error": "boom"}`},
		{"not found", http.StatusNotFound, ``},
		{"malformed json", http.StatusOK, `[{"id": `},
		{"scalar body", http.StatusOK, `"events"`},
		{"empty body", http.StatusOK, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)

			_, err := testClient(srv.URL, time.Second).Fetch(context.Background())

			assert.Error(t, err)
		})
	}
}

func TestClient_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := testClient(srv.URL, 50*time.Millisecond).Fetch(context.Background())

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_Load_FailureIsEmpty(t *testing.T) {
	srv := serve(t, http.StatusBadGateway, `bad gateway`)
	c := testClient(srv.URL, time.Second)

	events := c.Load(context.Background())

	assert.NotNil(t, events)
	assert.Empty(t, events)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.LoaderRequests.WithLabelValues(Source, "error")), 0)
}

func TestClient_Load_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	events := testClient(url, time.Second).Load(context.Background())

	assert.Empty(t, events)
}

func TestClient_Load_Success(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"id": "a"}, {"id": "b"}]`)
	c := testClient(srv.URL+"/", time.Second)

	events := c.Load(context.Background())

	assert.Len(t, events, 2)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.LoaderRequests.WithLabelValues(Source, "success")), 0)
}

func TestClient_Load_Empty(t *testing.T) {
	srv := serve(t, http.StatusOK, `[]`)
	c := testClient(srv.URL, time.Second)

	events := c.Load(context.Background())

	assert.Empty(t, events)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.LoaderRequests.WithLabelValues(Source, "empty")), 0)
}
