package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

const authUserKey = "auth_user"

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// corsMiddleware allows the front-end origin to call the API with
// credentials and answers preflight requests.
func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	allowedOrigin = strings.TrimRight(strings.TrimSpace(allowedOrigin), "/")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && origin == allowedOrigin {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// authMiddleware requires a valid access token in the Authorization header.
func authMiddleware(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing token"})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
		user, err := svc.Authenticate(token)
		if err != nil {
			status, msg := statusFor(err)
			c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

func authUser(c *gin.Context) *services.UserInfo {
	if v, ok := c.Get(authUserKey); ok {
		if u, ok := v.(*services.UserInfo); ok {
			return u
		}
	}
	return &services.UserInfo{}
}
