package api

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/metrics"
)

func TestCORS(t *testing.T) {
	env := newTestEnv(t, axisEmbedder{}, 0)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, RouteCategorize, nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := env.do(req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("request from other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, RoutePing, nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := env.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	})

	t.Run("wildcard", func(t *testing.T) {
		h := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t, axisEmbedder{}, 0)

	rec := env.do(httptest.NewRequest(http.MethodGet, RoutePing, nil))
	generated := rec.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)

	req := httptest.NewRequest(http.MethodGet, RoutePing, nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec = env.do(req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))

	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "from-client")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "from-client", seen)
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestRecovery(t *testing.T) {
	logger := logging.NewMockLogger()
	h := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rec))
	assert.True(t, logger.HasEntry("ERROR", "Panic recovered"))
}

func TestLogger_RecordsRequest(t *testing.T) {
	env := newTestEnv(t, axisEmbedder{}, 0)

	env.do(httptest.NewRequest(http.MethodGet, RoutePing, nil))
	env.do(httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.HTTPRequests.WithLabelValues(http.MethodGet, RoutePing, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.HTTPRequests.WithLabelValues(http.MethodGet, "other", "404")))

	entries := env.logger.EntriesByLevel("INFO")
	var found bool
	for _, e := range entries {
		if e.Message != "HTTP request" {
			continue
		}
		if path, _ := e.FieldValue(logging.FieldPath); path == RoutePing {
			status, _ := e.FieldValue(logging.FieldStatus)
			assert.Equal(t, http.StatusOK, status)
			duration, ok := e.FieldValue(logging.FieldDuration)
			require.True(t, ok)
			assert.IsType(t, int64(0), duration)
			found = true
		}
	}
	assert.True(t, found)
}

func TestRoutes_MethodMismatch(t *testing.T) {
	env := newTestEnv(t, axisEmbedder{}, 0)

	rec := env.do(httptest.NewRequest(http.MethodGet, RouteCategorize, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodPost, RoutePing, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, axisEmbedder{}, 0)
	env.do(httptest.NewRequest(http.MethodGet, RoutePing, nil))

	rec := env.do(httptest.NewRequest(http.MethodGet, RouteMetrics, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "statementer_http_requests_total")
}

func TestMetricsEndpoint_DisabledWithoutRegistry(t *testing.T) {
	s := New(Options{}, NewHandlers(nil, nil, nil, 0, nil), nil, metrics.Unregistered(), logging.NewMockLogger())
	h, err := s.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, RouteMetrics, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLandingPage(t *testing.T) {
	env := newTestEnv(t, axisEmbedder{}, 0)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Statementer")
	assert.Contains(t, body, RouteTags)
	assert.Contains(t, body, RouteMetrics)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	env := newTestEnv(t, axisEmbedder{}, 0)
	env.server.opts.MaxConnections = 2

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.server.Serve(ctx, ln) }()

	url := fmt.Sprintf("http://%s%s", ln.Addr().String(), RoutePing)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && strings.HasSuffix(string(body), "(up)")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.True(t, env.logger.HasEntry("INFO", "Server exited"))
}

func TestListenAndServe_BadAddress(t *testing.T) {
	s := New(Options{Address: "127.0.0.1:-1"}, NewHandlers(nil, nil, nil, 0, nil), nil, nil, logging.NewMockLogger())
	err := s.ListenAndServe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error listening on 127.0.0.1:-1")
}
