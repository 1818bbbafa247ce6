// Package server provides the HTTP server that serves built assets,
// server-rendered pages and the manifest inspection API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/perch-labs/vitelink/internal/config"
	"github.com/perch-labs/vitelink/internal/manifest"
	"github.com/perch-labs/vitelink/internal/metrics"
	"github.com/perch-labs/vitelink/internal/render"
)

// Server is the HTTP server for the asset frontend.
type Server struct {
	lookup     instrumented
	renderer   *render.Renderer
	metrics    *metrics.Metrics
	logger     *slog.Logger
	assetRoot  string
	devProxy   http.Handler // nil unless dev-server mode
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server for the given resolver and page registry. In
// dev-server mode all asset traffic is proxied to cfg.DevServerURL.
func New(cfg *config.AppConfig, resolver *manifest.Resolver, pages *config.PageRegistry, m *metrics.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		lookup:    instrumented{resolver: resolver, metrics: m},
		metrics:   m,
		logger:    logger,
		assetRoot: cfg.AssetRoot,
	}
	s.renderer = render.New(s.lookup, cfg.DevServerURL)

	if cfg.DevServer {
		target, err := url.Parse(cfg.DevServerURL)
		if err != nil {
			logger.Error("invalid dev server URL, proxy disabled",
				slog.String("url", cfg.DevServerURL), slog.Any("error", err))
		} else {
			s.devProxy = httputil.NewSingleHostReverseProxy(target)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))
	r.Use(s.requestLogger)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	// Manifest inspection API
	r.Route("/api", func(r chi.Router) {
		s.mountAPI(r)
	})

	// Server-rendered pages
	for _, p := range pages.All() {
		r.Get(p.Route, s.pageHandler(p))
	}

	// Static files (or dev proxy)
	r.Get("/*", s.assetHandler())

	s.router = r
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the server's root handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// requestLogger is a chi middleware that logs each request and records its
// latency in the duration histogram.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		s.metrics.HTTPDuration.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Observe(elapsed.Seconds())
		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", elapsed),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// pageHandler returns the handler that renders one registry page.
func (s *Server) pageHandler(p config.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.renderer.Page(w, p.Title, p.Entry); err != nil {
			s.logger.Error("rendering page",
				slog.String("route", p.Route), slog.Any("error", err))
		}
	}
}

// assetHandler returns the handler for built assets: the asset-root file
// server, or the Vite dev server proxy while live-serving is active.
func (s *Server) assetHandler() http.HandlerFunc {
	if s.devProxy != nil {
		return s.devProxy.ServeHTTP
	}
	return http.FileServer(http.Dir(s.assetRoot)).ServeHTTP
}

// instrumented couples resolver lookups with the lookup outcome counter.
type instrumented struct {
	resolver *manifest.Resolver
	metrics  *metrics.Metrics
}

func (i instrumented) DevMode() bool {
	return i.resolver.DevMode()
}

func (i instrumented) Lookup(key string) (manifest.Chunk, bool) {
	chunk, ok := i.resolver.Lookup(key)
	switch {
	case i.resolver.DevMode():
		i.metrics.ObserveLookup(metrics.ResultDev)
	case ok:
		i.metrics.ObserveLookup(metrics.ResultHit)
	default:
		i.metrics.ObserveLookup(metrics.ResultMiss)
	}
	return chunk, ok
}
