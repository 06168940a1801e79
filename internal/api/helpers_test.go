package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/bank-statementer/statementer/internal/categorizer"
	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/metrics"
	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/statement"
	"github.com/bank-statementer/statementer/internal/store"
)

const statementHeader = "Transaction Date,Reference,Debit Amount,Credit Amount,Transaction Ref1,Transaction Ref2,Transaction Ref3\n"

// axisEmbedder maps known words onto orthogonal axes so matches are exact.
type axisEmbedder struct {
	err error
}

func (axisEmbedder) Name() string { return "axis" }

func (a axisEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if a.err != nil {
		return nil, a.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		switch t {
		case "starbucks":
			out[i] = []float32{1, 0, 0}
		case "netflix":
			out[i] = []float32{0, 1, 0}
		default:
			out[i] = []float32{0, 0, 1}
		}
	}
	return out, nil
}

type testEnv struct {
	server   *Server
	handler  http.Handler
	repo     *store.MemoryTagStore
	logger   *logging.MockLogger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func newTestEnv(t *testing.T, e axisEmbedder, maxUpload int64, tags ...models.Tag) *testEnv {
	t.Helper()

	logger := logging.NewMockLogger()
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	repo := store.NewMemoryTagStore(nil, tags...)

	c := categorizer.NewCategorizer(e, nil, repo, categorizer.DefaultConfig(), logger, m)
	h := NewHandlers(statement.NewParser(logger, m), c, repo, maxUpload, logger)
	s := New(Options{AllowedOrigins: []string{"https://app.example.com"}}, h, registry, m, logger)

	handler, err := s.Handler()
	require.NoError(t, err)

	return &testEnv{server: s, handler: handler, repo: repo, logger: logger, registry: registry, metrics: m}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func multipartUpload(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename == "" {
		fw, err := mw.CreateFormField(field)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	} else {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, RouteTransactions, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
