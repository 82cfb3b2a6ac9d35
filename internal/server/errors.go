package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
)

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound, errors.CodeNoContentFound:
		return http.StatusNotFound
	case errors.CodeAlreadyInProgress:
		return http.StatusConflict
	case errors.CodeNotEligibleSource:
		return http.StatusUnprocessableEntity
	case errors.CodeRateLimited:
		return http.StatusTooManyRequests
	case errors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "route", c.FullPath(), "error", err)
	} else {
		s.logger.Debug("Request rejected", "route", c.FullPath(), "status", status, "error", err)
	}
	c.AbortWithStatusJSON(status, errorResponse{
		Success: false,
		Error:   err.Error(),
		Code:    errors.GetCode(err),
	})
}

func (s *Server) badRequest(c *gin.Context, err error) {
	s.fail(c, errors.InvalidInput(err.Error()))
}
