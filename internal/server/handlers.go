package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
)

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) extractPosts(c *gin.Context) {
	var body extractRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badRequest(c, err)
		return
	}

	req := command.ExtractRequest{
		URL:         body.URL,
		HTML:        body.HTML,
		ContentType: body.ContentType,
		MaxPosts:    body.MaxPosts,
	}

	extract := s.command.ExtractPosts
	if body.Refresh {
		extract = s.command.RefreshPosts
	}

	res, err := extract(c.Request.Context(), req)
	if err != nil && !(errors.IsStorage(err) && len(res.Posts) > 0) {
		s.fail(c, err)
		return
	}

	resp := newExtractResponse(res, s.clock.Now())
	if err != nil {
		s.logger.Warn("Posts extracted but not cached", "source", res.Source.SourceID, "error", err)
		resp.Warning = "posts could not be cached: " + err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) prefetch(c *gin.Context) {
	var body prefetchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badRequest(c, err)
		return
	}

	results, err := s.command.Prefetch(c.Request.Context(), body.URLs, body.MaxPosts)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

func (s *Server) checkSource(c *gin.Context) {
	var body checkSourceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badRequest(c, err)
		return
	}

	info, err := s.command.CheckSource(c.Request.Context(), command.SourceRequest{
		URL:         body.URL,
		HTML:        body.HTML,
		ContentType: body.ContentType,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "source": info})
}

func (s *Server) getCachedData(c *gin.Context) {
	id := c.Param("id")
	posts, ok, err := s.command.GetCachedData(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !ok {
		s.fail(c, errors.WrapWithCode(errors.ErrNotFound, errors.CodeNotFound, "no cached posts for "+id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": viewPosts(posts, s.clock.Now())})
}

func (s *Server) contentChanged(c *gin.Context) {
	if err := s.command.NotifyContentChanged(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) clearCache(c *gin.Context) {
	n, err := s.command.ClearCache(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": n})
}

func (s *Server) storageUsage(c *gin.Context) {
	usage, err := s.command.GetStorageUsage(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "usage": usage})
}

func (s *Server) openOverlay(c *gin.Context) {
	var body openOverlayRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badRequest(c, err)
		return
	}

	settings := domain.DefaultSettings()
	if body.Settings != nil {
		settings = *body.Settings
	}

	key, err := s.command.OpenOverlay(c.Request.Context(), body.Result, settings)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "sessionKey": key})
}

func (s *Server) consumeSession(c *gin.Context) {
	h, err := s.command.ConsumeSession(c.Request.Context(), c.Param("key"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"posts":    viewPosts(h.Posts, s.clock.Now()),
		"metadata": h.Metadata,
		"settings": h.Settings,
	})
}
