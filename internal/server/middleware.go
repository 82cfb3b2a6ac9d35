package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/metrics"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/ratelimit"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
)

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Content-Length", "Accept", "Origin", "Cache-Control", "X-Requested-With"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// rateLimit throttles per client IP.
func (s *Server) rateLimit(l ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l != nil && !l.Allow(c.ClientIP()) {
			s.fail(c, errors.WrapWithCode(errors.ErrRateLimited, errors.CodeRateLimited, "rate limit exceeded"))
			return
		}
		c.Next()
	}
}

func observe(log logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.Request(route, status)

		if status >= http.StatusInternalServerError {
			log.Warn("Request served with error", "method", c.Request.Method, "route", route, "status", status, "duration", time.Since(start).String())
			return
		}
		log.Debug("Request served", "method", c.Request.Method, "route", route, "status", status, "duration", time.Since(start).String())
	}
}
