package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps the error taxonomy onto HTTP. The message is safe to show:
// internal failures never leak their cause.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, common.ErrTokenExpired.Error()
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, common.ErrInvalidToken.Error()
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict, "user already exists"
	default:
		return http.StatusInternalServerError, common.ErrInternal.Error()
	}
}

func (h *handler) writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
}
