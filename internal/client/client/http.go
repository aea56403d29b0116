package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/client/session"
)

const requestTimeout = 15 * time.Second

type HTTPClient struct {
	baseURL string
	// authed goes through the session transport; bare does not and carries
	// the anonymous calls (register, login, refresh, ping).
	authed *http.Client
	bare   *http.Client
}

func NewHTTPClient(baseURL string, sess *session.Session) *HTTPClient {
	baseURL = strings.TrimRight(baseURL, "/")
	var basePath string
	if u, err := url.Parse(baseURL); err == nil {
		basePath = u.Path
	}

	base := http.DefaultTransport
	return &HTTPClient{
		baseURL: baseURL,
		authed: &http.Client{Timeout: requestTimeout, Transport: &session.Transport{
			Session:  sess,
			Base:     base,
			BasePath: basePath,
		}},
		bare: &http.Client{Timeout: requestTimeout, Transport: base},
	}
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*api.User, error) {
	var resp api.RegisterResponse
	if err := c.do(ctx, c.bare, http.MethodPost, api.RouteRegister, api.RegisterRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.do(ctx, c.bare, http.MethodPost, api.RouteLogin, api.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error) {
	var resp api.TokenPair
	if err := c.do(ctx, c.bare, http.MethodPost, api.RouteRefresh, api.RefreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	var resp api.MessageResponse
	return c.do(ctx, c.authed, http.MethodPost, api.RouteLogout, nil, &resp)
}

func (c *HTTPClient) Profile(ctx context.Context) (*api.ProfileResponse, error) {
	var resp api.ProfileResponse
	if err := c.do(ctx, c.authed, http.MethodGet, api.RouteProfile, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp api.PingResponse
	if err := c.do(ctx, c.bare, http.MethodGet, api.RoutePing, nil, &resp); err != nil {
		return err
	}
	if resp.Status != api.StatusOK {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.bare.CloseIdleConnections()
	c.authed.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, hc *http.Client, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, session.ErrSessionExpired) {
			return fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	var e api.ErrorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&e)
	return statusError(resp.StatusCode, e.Error)
}

func statusError(code int, msg string) error {
	if msg == "" {
		msg = http.StatusText(code)
	}
	switch code {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		return fmt.Errorf("server error %d: %s", code, msg)
	}
}
