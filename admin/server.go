package admin

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/kbukum/jasmine-step/component"
	"github.com/kbukum/jasmine-step/logger"
	"github.com/kbukum/jasmine-step/settings"
)

const componentName = "admin"

// Server is the admin HTTP server. It implements component.Component.
type Server struct {
	cfg     Config
	handler http.Handler
	log     *logger.Logger

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	serveErr error
}

var _ component.Component = (*Server)(nil)

// Option configures a Server.
type Option func(*options)

type options struct {
	health HealthChecker
	log    *logger.Logger
}

// WithHealthChecker reports hc on /health.
func WithHealthChecker(hc HealthChecker) Option {
	return func(o *options) { o.health = hc }
}

// WithLogger sets the request logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// New builds the admin server for store. Nothing listens until Start.
func New(cfg Config, store *settings.Store, opts ...Option) *Server {
	cfg.ApplyDefaults()
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.WithComponent(componentName)
	}

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	m := newMetrics()
	h := &handlers{store: store, health: o.health, metrics: m, log: o.log}

	engine := gin.New()
	engine.Use(requestID(), recovery(o.log), requestLogger(o.log, m))

	engine.GET("/health", h.healthz)
	engine.GET("/version", h.version)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})))

	group := engine.Group("/settings")
	if cfg.JWTSecret != "" {
		group.Use(bearerAuth(NewTokenValidator(cfg.JWTSecret)))
	}
	group.GET("", h.getSettings)
	group.PUT("", h.putSettings)
	group.GET("/check", h.checkExecPath)

	var handler http.Handler = engine
	if len(cfg.CORSOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", headerRequestID},
		}).Handler(engine)
	}

	return &Server{cfg: cfg, handler: handler, log: o.log}
}

// Handler returns the HTTP handler with every middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) Name() string { return componentName }

// Start binds the configured address and serves in the background. It
// returns once the listener is bound.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("admin server failed to bind %s: %w", s.cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
	}

	s.mu.Lock()
	s.srv = srv
	s.listener = ln
	s.serveErr = nil
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.log.Error("Admin server error", logger.ErrorFields("serve", err))
			s.mu.Lock()
			s.serveErr = err
			s.mu.Unlock()
		}
	}()

	s.log.Info("Admin server started", logger.Fields(
		"addr", ln.Addr().String(),
		"auth", s.cfg.JWTSecret != "",
	))
	return nil
}

// Stop shuts the server down gracefully within ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("admin server shutdown: %w", err)
	}
	s.log.Info("Admin server stopped")
	return nil
}

func (s *Server) Health(_ context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.serveErr != nil:
		return component.Unhealthy(componentName, s.serveErr.Error())
	case s.srv == nil:
		return component.Unhealthy(componentName, "not serving")
	}
	return component.Healthy(componentName)
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}
