package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/metrics"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/ratelimit"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"go.uber.org/fx"
)

const readHeaderTimeout = 10 * time.Second

type Opts struct {
	fx.In

	Command command.Client
	Limiter ratelimit.Limiter `optional:"true"`
	Metrics *metrics.Metrics  `optional:"true"`
	Logger  logger.Logger
	Config  *config.Config
	Clock   clockwork.Clock `optional:"true"`
}

// Server exposes the command surface over HTTP.
type Server struct {
	command command.Client
	limiter ratelimit.Limiter
	metrics *metrics.Metrics
	logger  logger.Logger
	clock   clockwork.Clock
	engine  *gin.Engine
	http    *http.Server
}

func New(opts Opts) *Server {
	if opts.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &Server{
		command: opts.Command,
		limiter: opts.Limiter,
		metrics: opts.Metrics,
		logger:  opts.Logger.WithComponent("HTTP"),
		clock:   clock,
		engine:  gin.New(),
	}
	s.routes(opts.Config)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes(cfg *config.Config) {
	s.engine.Use(gin.Recovery(), observe(s.logger, s.metrics), corsMiddleware(cfg.HTTP.AllowedOrigins))

	s.engine.GET("/healthz", s.health)
	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := s.engine.Group("/api/v1")
	api.POST("/extract", s.rateLimit(s.limiter), s.extractPosts)
	api.POST("/prefetch", s.rateLimit(s.limiter), s.prefetch)
	api.POST("/sources/check", s.checkSource)
	api.GET("/sources/:id/posts", s.getCachedData)
	api.POST("/sources/:id/changed", s.contentChanged)
	api.DELETE("/cache", s.clearCache)
	api.GET("/storage", s.storageUsage)
	api.POST("/sessions", s.openOverlay)
	api.POST("/sessions/:key/consume", s.consumeSession)
}

// Start listens on the configured port and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server stopped", "error", err)
		}
	}()

	s.logger.Info("HTTP server started", "addr", ln.Addr().String())
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, s *Server) {
		lc.Append(fx.Hook{
			OnStart: s.Start,
			OnStop:  s.Stop,
		})
	}),
)
