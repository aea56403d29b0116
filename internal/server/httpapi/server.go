// Package httpapi exposes the auth service over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// AuthService is the part of services.AuthService the handlers use.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*services.UserInfo, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*services.Profile, error)
	Authenticate(accessToken string) (*services.UserInfo, error)
}

type Server struct {
	address string
	engine  *gin.Engine
	logger  logging.Logger
}

// NewServer builds the router. frontendURL is the single origin allowed by
// CORS.
func NewServer(address, frontendURL string, svc AuthService, l logging.Logger) *Server {
	logger := l.With("module", "http_server")

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), corsMiddleware(frontendURL))

	h := &handler{svc: svc, logger: logger}

	r.GET(api.RoutePing, h.ping)
	r.POST(api.RouteRegister, h.register)
	r.POST(api.RouteLogin, h.login)
	r.POST(api.RouteRefresh, h.refresh)

	protected := r.Group("/", authMiddleware(svc))
	protected.POST(api.RouteLogout, h.logout)
	protected.GET(api.RouteProfile, h.profile)

	return &Server{address: address, engine: r, logger: logger}
}

// Handler returns the router, for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
