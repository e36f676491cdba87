// ABOUTME: HTTP server wiring for the docdesk service
// ABOUTME: Builds the resolver, session manager, routes, and graceful shutdown

package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/2389/docdesk/internal/config"
	"github.com/2389/docdesk/internal/conversation"
	"github.com/2389/docdesk/internal/knowledge"
	"github.com/2389/docdesk/internal/webui"
)

// shutdownTimeout bounds how long Serve waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Gateway owns the HTTP surface and the session manager behind it.
type Gateway struct {
	cfg      *config.Config
	sessions *conversation.Manager
	table    *knowledge.Table
	metrics  *metrics
	registry *prometheus.Registry
	logger   *slog.Logger
}

// New builds a gateway from config and a knowledge table. The matcher
// sits behind the resolver abstraction; when metrics are enabled the
// resolver is wrapped so match/fallback outcomes are counted.
func New(cfg *config.Config, table *knowledge.Table, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gateway{
		cfg:    cfg,
		table:  table,
		logger: logger.With("component", "gateway"),
	}

	var resolver conversation.Resolver = conversation.NewMatcherResolver(
		knowledge.NewMatcher(table),
		cfg.Resolver.Delay,
		cfg.Resolver.Jitter,
	)
	if cfg.Metrics.Enabled {
		g.registry = prometheus.NewRegistry()
		g.metrics = newMetrics(g.registry)
		resolver = &instrumentedResolver{next: resolver, metrics: g.metrics}
	}

	g.sessions = conversation.NewManager(resolver, cfg.Sessions.IdleTTL, logger)
	return g
}

// Sessions exposes the session manager (used by tests and the CLI server).
func (g *Gateway) Sessions() *conversation.Manager {
	return g.sessions
}

// Handler returns the complete route table.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ask", g.handleAsk)
	mux.HandleFunc("/api/conversation", g.handleConversation)
	mux.HandleFunc("/api/events", g.handleEvents)
	mux.HandleFunc("/api/examples", g.handleExamples)
	mux.HandleFunc("/healthz", g.handleHealthz)

	if g.cfg.Metrics.Enabled {
		mux.Handle(g.cfg.Metrics.Path, promhttp.HandlerFor(g.registry, promhttp.HandlerOpts{}))
	}

	mux.Handle("/static/", http.StripPrefix("/static/", webui.FileServer()))
	mux.HandleFunc("/", g.handleIndex)

	return mux
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully and retires the session manager.
func (g *Gateway) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              g.cfg.Server.HTTPAddr,
		Handler:           g.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		g.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		g.sessions.Close()
		return err
	case err := <-errCh:
		g.sessions.Close()
		return err
	}
}

// handleIndex serves the embedded single-page UI at the root only; other
// unknown paths 404 instead of all rendering the app shell.
func (g *Gateway) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	webui.ServeIndex(w)
}
