package nvdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrfylke/vegprofil/internal/config"
	"github.com/mrfylke/vegprofil/internal/log"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := config.NewNVDBConfig().
		WithBaseURL(baseURL).
		WithClientName("vegprofil-test").
		WithMaxRetries(2).
		WithInitialDelay(time.Millisecond)
	logger := log.NewLoggerWithWriter(os.Stderr, config.LogFormatJSON, "error")
	return NewClient(cfg, logger)
}

func TestRoadObjectsPagination(t *testing.T) {
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)
		assert.Equal(t, "vegprofil-test", r.Header.Get("X-Client"))
		assert.Equal(t, acceptHeader, r.Header.Get("Accept"))
		assert.Equal(t, "15", r.URL.Query().Get("fylke"))

		switch r.URL.Query().Get("start") {
		case "":
			fmt.Fprint(w, `{"objekter":[{"id":1},{"id":2}],"metadata":{"returnert":2,"neste":{"start":"abc"}}}`)
		case "abc":
			fmt.Fprint(w, `{"objekter":[{"id":3}],"metadata":{"returnert":1,"neste":{"start":"abc"}}}`)
		default:
			t.Fatalf("unexpected start token %q", r.URL.Query().Get("start"))
		}
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	objs, err := c.RoadObjects(context.Background(), ObjectTypeBridge, 15, "F")

	// The second page repeats its own token, which ends the walk with an error
	// rather than looping.
	require.ErrorIs(t, err, ErrRepeatedPageToken)
	assert.Nil(t, objs)
	assert.Len(t, requests, 2)
}

func TestRoadObjectsCompletePagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("start") {
		case "":
			fmt.Fprint(w, `{"objekter":[{"id":1},{"id":2}],"metadata":{"returnert":2,"neste":{"start":"p2"}}}`)
		case "p2":
			fmt.Fprint(w, `{"objekter":[{"id":3}],"metadata":{"returnert":1}}`)
		}
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	objs, err := c.RoadObjects(context.Background(), ObjectTypeBruksklasse, 15, "F")
	require.NoError(t, err)
	require.Len(t, objs, 3)
	assert.Equal(t, int64(3), objs[2].ID)
}

func TestNextTokenFallsBackToHref(t *testing.T) {
	meta := &PageMetadata{Neste: &NextPage{
		Href: "https://nvdbapiles.atlas.vegvesen.no/vegobjekter/api/v4/vegobjekter/60?start=xyz&fylke=15",
	}}
	assert.Equal(t, "xyz", nextToken(meta))

	meta.Neste.Start = "direct"
	assert.Equal(t, "direct", nextToken(meta))

	assert.Equal(t, "", nextToken(&PageMetadata{}))
}

func TestRetryOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"objekter":[{"veglenkesekvensid":5,"startposisjon":0,"sluttposisjon":1}],"metadata":{"returnert":1}}`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	segs, err := c.NetworkSegments(context.Background(), 15, "F")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, int64(5), segs[0].VeglenkesekvensID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.NetworkSegments(context.Background(), 15, "F")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetriesExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.NetworkSegments(context.Background(), 15, "F")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
}
