// Package api exposes statement upload and categorization over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/exporter-toolkit/web"
	"golang.org/x/net/netutil"

	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/metrics"
)

// Routes served by the API.
const (
	RouteTransactions = "/transactions"
	RouteCategorize   = "/categorize"
	RoutePing         = "/ping"
	RouteTags         = "/tags"
	RouteMetrics      = "/metrics"
)

// Options configures the listener and cross-cutting middleware.
type Options struct {
	Address        string
	AllowedOrigins []string
	MaxConnections int // 0 means unlimited
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Server handles HTTP requests for the statement API.
type Server struct {
	opts     Options
	handlers *Handlers
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	logger   logging.Logger
}

// New creates a Server. registry may be nil to disable /metrics.
func New(opts Options, h *Handlers, registry *prometheus.Registry, m *metrics.Metrics, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Server{opts: opts, handlers: h, registry: registry, metrics: m, logger: logger}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+RouteTransactions, s.handlers.UploadTransactions)
	mux.HandleFunc("POST "+RouteCategorize, s.handlers.Categorize)
	mux.HandleFunc("GET "+RouteTags, s.handlers.ListTags)
	mux.HandleFunc("GET "+RoutePing, s.handlers.Ping)

	links := []web.LandingLinks{
		{Address: RoutePing, Text: "Ping"},
		{Address: RouteTags, Text: "Tags"},
	}
	if s.registry != nil {
		mux.Handle("GET "+RouteMetrics, metrics.Handler(s.registry))
		links = append(links, web.LandingLinks{Address: RouteMetrics, Text: "Metrics"})
	}

	landing, err := web.NewLandingPage(web.LandingConfig{
		Name:        "Statementer",
		Description: "Bank statement categorization API",
		Version:     buildVersion(),
		Links:       links,
	})
	if err != nil {
		return nil, fmt.Errorf("error building landing page: %w", err)
	}
	mux.Handle("GET /{$}", landing)

	// Apply middleware
	return Recovery(s.logger)(
		Logger(s.logger, s.metrics, routeLabel)(
			RequestID(
				CORS(s.opts.AllowedOrigins)(mux),
			),
		),
	), nil
}

// routeLabel keeps metric cardinality bounded.
func routeLabel(r *http.Request) string {
	switch r.URL.Path {
	case "/", RouteTransactions, RouteCategorize, RoutePing, RouteTags, RouteMetrics:
		return r.URL.Path
	default:
		return "other"
	}
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.opts.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. With MaxConnections set, at most that many connections are
// handled at once.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.opts.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.opts.MaxConnections)
	}

	handler, err := s.Handler()
	if err != nil {
		ln.Close()
		return err
	}

	server := &http.Server{
		Handler:      handler,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting API server",
			logging.F("address", ln.Addr().String()),
			logging.F("max_connections", s.opts.MaxConnections))
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("Server exited")
	return nil
}
